package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"engage/cmd"
	httpin "engage/internal/adapters/in/http"
	pgout "engage/internal/adapters/out/postgres"
	"engage/internal/adapters/out/postgres/catalogrepo"
	"engage/internal/adapters/out/postgres/chatrepo"
	"engage/internal/adapters/out/postgres/notificationrepo"
	"engage/internal/adapters/out/postgres/orderrepo"
	"engage/internal/adapters/out/postgres/specialistrepo"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config, err := loadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := connectDB(config)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	root, err := cmd.NewCompositionRoot(ctx, config, db, logger)
	if err != nil {
		logger.Error("Failed to build composition root", "error", err)
		os.Exit(1)
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Recover())
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateAcceptOrderCommandHandler(),
		root.CreateProgressOrderCommandHandler(),
		root.CreateRescheduleOrderCommandHandler(),
		root.CreateFinishOrderCommandHandler(),
		root.CreateReviewOrderCommandHandler(),
		root.CreateExtendAcceptDeadlineCommandHandler(),
		root.CreateCancelByCustomerCommandHandler(),
		root.CreateCancelBySpecialistCommandHandler(),
		root.CreateRateOrderCommandHandler(),
		root.CreateSetAvailabilityCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateListOrdersQueryHandler(),
		root.CreateSearchSpecialistsQueryHandler(),
		root.CreateGetSpecialistQueryHandler(),
		root.DeviceTokenStore(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)))
}

func loadConfig() (cmd.Config, error) {
	// Missing .env is fine in environments that inject variables directly.
	_ = godotenv.Load(".env")

	var config cmd.Config
	if err := env.Parse(&config); err != nil {
		return cmd.Config{}, err
	}
	return config, nil
}

func connectDB(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.EventDTO{},
		&orderrepo.RatingDTO{},
		&specialistrepo.SpecialistDTO{},
		&specialistrepo.CategoryLinkDTO{},
		&specialistrepo.SearchIndexEntryDTO{},
		&catalogrepo.CategoryDTO{},
		&catalogrepo.ServiceEntryDTO{},
		&chatrepo.ChannelDTO{},
		&notificationrepo.NotificationDTO{},
		&pgout.DeviceTokenDTO{},
	)
}
