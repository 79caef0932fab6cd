package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"engage/internal/adapters/out/postgres/catalogrepo"
	"engage/internal/adapters/out/postgres/specialistrepo"
	"engage/internal/core/application/usecases/queries"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/specialist"
	"engage/internal/pkg/errs"
)

type GetSpecialistQueryHandlerTestSuite struct {
	suite.Suite
	container      *pgcontainer.PostgresContainer
	db             *gorm.DB
	handler        queries.GetSpecialistQueryHandler
	specialistRepo *specialistrepo.GormSpecialistRepository
}

func (suite *GetSpecialistQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&specialistrepo.SpecialistDTO{}, &specialistrepo.CategoryLinkDTO{},
		&specialistrepo.SearchIndexEntryDTO{},
		&catalogrepo.CategoryDTO{}, &catalogrepo.ServiceEntryDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetSpecialistQueryHandler(db)
	suite.specialistRepo = specialistrepo.NewGormSpecialistRepository(db, &mockAggregateTracker{})
}

func (suite *GetSpecialistQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE specialists, specialist_categories, search_index_entries," +
			" categories, service_entries").Error)
}

func (suite *GetSpecialistQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetSpecialistQueryHandlerTestSuite) TestHandle_AppliesCertificationGating() {
	ctx := context.Background()

	// Category 3 requires certification, category 7 does not.
	suite.Require().NoError(suite.db.Exec(
		"INSERT INTO categories (id, slug, name, requires_certification) VALUES"+
			" (3, 'electrical', 'Electrical', TRUE), (7, 'cleaning', 'Cleaning', FALSE)").Error)

	center, err := kernel.NewGeoPoint(55.75, 37.62)
	suite.Require().NoError(err)

	price := int64(250000)
	sp, err := specialist.RestoreSpecialist(
		kernel.NewUUID(), "Dr. Anna Petrova",
		false, true, true, true,
		&center, 10, &price, nil,
		[]specialist.CategoryLink{
			{CategoryID: 3, Certification: specialist.CertificationPending},
			{CategoryID: 7, Certification: specialist.CertificationNone},
		},
		specialist.NewUnrestrictedSchedule(),
		4.8, 24, 1,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.specialistRepo.Add(ctx, sp))

	query, err := queries.NewGetSpecialistQuery(sp.ID())
	suite.Require().NoError(err)
	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("Dr. Anna Petrova", response.DisplayName)
	suite.Equal(4.8, response.RatingAvg)
	suite.Equal(24, response.RatingCount)
	suite.Require().NotNil(response.PriceMinor)
	suite.Equal(price, *response.PriceMinor)

	suite.Require().Len(response.Categories, 2)
	suite.Equal(int64(3), response.Categories[0].CategoryID)
	suite.False(response.Categories[0].Enabled, "pending certification must not enable a gated category")
	suite.Equal(int64(7), response.Categories[1].CategoryID)
	suite.True(response.Categories[1].Enabled)
}

func (suite *GetSpecialistQueryHandlerTestSuite) TestHandle_UnknownSpecialist() {
	query, err := queries.NewGetSpecialistQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func TestGetSpecialistQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetSpecialistQueryHandlerTestSuite))
}
