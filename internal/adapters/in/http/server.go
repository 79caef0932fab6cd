// Package http exposes the engagement API over echo. Handlers translate
// wire requests into commands and queries and map domain errors onto HTTP
// status codes. Authentication sits in front of this service; the caller's
// account arrives in the X-Account-ID header.
package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"engage/internal/core/application/usecases/commands"
	"engage/internal/core/application/usecases/queries"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
	"engage/internal/core/domain/services"
)

const accountHeader = "X-Account-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	acceptOrderHandler        commands.AcceptOrderCommandHandler
	progressOrderHandler      commands.ProgressOrderCommandHandler
	rescheduleOrderHandler    commands.RescheduleOrderCommandHandler
	finishOrderHandler        commands.FinishOrderCommandHandler
	reviewOrderHandler        commands.ReviewOrderCommandHandler
	extendDeadlineHandler     commands.ExtendAcceptDeadlineCommandHandler
	cancelByCustomerHandler   commands.CancelByCustomerCommandHandler
	cancelBySpecialistHandler commands.CancelBySpecialistCommandHandler
	rateOrderHandler          commands.RateOrderCommandHandler
	setAvailabilityHandler    commands.SetAvailabilityCommandHandler

	getOrderHandler          queries.GetOrderQueryHandler
	listOrdersHandler        queries.ListOrdersQueryHandler
	searchSpecialistsHandler queries.SearchSpecialistsQueryHandler
	getSpecialistHandler     queries.GetSpecialistQueryHandler

	deviceTokens DeviceTokenRegistrar
}

// DeviceTokenRegistrar stores push tokens reported by client devices.
type DeviceTokenRegistrar interface {
	Register(ctx context.Context, accountID kernel.UUID, token string) error
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	progressOrderHandler commands.ProgressOrderCommandHandler,
	rescheduleOrderHandler commands.RescheduleOrderCommandHandler,
	finishOrderHandler commands.FinishOrderCommandHandler,
	reviewOrderHandler commands.ReviewOrderCommandHandler,
	extendDeadlineHandler commands.ExtendAcceptDeadlineCommandHandler,
	cancelByCustomerHandler commands.CancelByCustomerCommandHandler,
	cancelBySpecialistHandler commands.CancelBySpecialistCommandHandler,
	rateOrderHandler commands.RateOrderCommandHandler,
	setAvailabilityHandler commands.SetAvailabilityCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	searchSpecialistsHandler queries.SearchSpecialistsQueryHandler,
	getSpecialistHandler queries.GetSpecialistQueryHandler,
	deviceTokens DeviceTokenRegistrar,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		acceptOrderHandler:        acceptOrderHandler,
		progressOrderHandler:      progressOrderHandler,
		rescheduleOrderHandler:    rescheduleOrderHandler,
		finishOrderHandler:        finishOrderHandler,
		reviewOrderHandler:        reviewOrderHandler,
		extendDeadlineHandler:     extendDeadlineHandler,
		cancelByCustomerHandler:   cancelByCustomerHandler,
		cancelBySpecialistHandler: cancelBySpecialistHandler,
		rateOrderHandler:          rateOrderHandler,
		setAvailabilityHandler:    setAvailabilityHandler,
		getOrderHandler:           getOrderHandler,
		listOrdersHandler:         listOrdersHandler,
		searchSpecialistsHandler:  searchSpecialistsHandler,
		getSpecialistHandler:      getSpecialistHandler,
		deviceTokens:              deviceTokens,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/progress", s.ProgressOrder)
	api.POST("/orders/:id/reschedule", s.RescheduleOrder)
	api.POST("/orders/:id/finish", s.FinishOrder)
	api.POST("/orders/:id/review", s.ReviewOrder)
	api.POST("/orders/:id/extend-deadline", s.ExtendAcceptDeadline)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/rating", s.RateOrder)

	api.GET("/specialists/search", s.SearchSpecialists)
	api.GET("/specialists/:id", s.GetSpecialist)
	api.PUT("/specialists/availability", s.SetAvailability)

	api.POST("/devices", s.RegisterDevice)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	mode, err := order.ServiceModeFromString(req.Mode)
	if err != nil {
		return errorResponse(ctx, err)
	}

	intent, err := buildIntent(req.Intent, req.IntentAt)
	if err != nil {
		return errorResponse(ctx, err)
	}

	serviceID, err := optionalUUID(req.ServiceID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	preTargetID, err := optionalUUID(req.SpecialistID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actor, mode, req.CategoryID, serviceID,
		req.AddressQuery, intent, preTargetID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	viewerAt, err := optionalPoint(ctx.QueryParam("lat"), ctx.QueryParam("lng"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, actor, viewerAt)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}

	closed := ctx.QueryParam("partition") == "closed"
	limit := intParam(ctx.QueryParam("limit"), 0)
	offset := intParam(ctx.QueryParam("offset"), 0)

	query, err := queries.NewListOrdersQuery(actor, closed, limit, offset)
	if err != nil {
		return errorResponse(ctx, err)
	}

	rows, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderListItem, 0, len(rows))
	for _, row := range rows {
		item := OrderListItem{
			ID:               row.ID.String(),
			Status:           row.Status,
			Mode:             row.Mode,
			CategoryID:       row.CategoryID,
			AcceptDeadlineAt: row.AcceptDeadlineAt,
			CreatedAt:        row.CreatedAt,
		}
		if row.SpecialistID != nil {
			id := row.SpecialistID.String()
			item.SpecialistID = &id
		}
		response = append(response, item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptOrder handles POST /api/v1/orders/:id/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	return s.runOrderCommand(ctx, func(orderID, actor kernel.UUID) error {
		cmd, err := commands.NewAcceptOrderCommand(orderID, actor)
		if err != nil {
			return err
		}
		return s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ProgressOrder handles POST /api/v1/orders/:id/progress.
func (s *Server) ProgressOrder(ctx echo.Context) error {
	var req ProgressRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.runOrderCommand(ctx, func(orderID, actor kernel.UUID) error {
		action, err := commands.ProgressActionFromString(req.Action)
		if err != nil {
			return err
		}
		cmd, err := commands.NewProgressOrderCommand(orderID, actor, action)
		if err != nil {
			return err
		}
		return s.progressOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// RescheduleOrder handles POST /api/v1/orders/:id/reschedule.
func (s *Server) RescheduleOrder(ctx echo.Context) error {
	var req RescheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.runOrderCommand(ctx, func(orderID, actor kernel.UUID) error {
		cmd, err := commands.NewRescheduleOrderCommand(orderID, actor, req.At)
		if err != nil {
			return err
		}
		return s.rescheduleOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// FinishOrder handles POST /api/v1/orders/:id/finish.
func (s *Server) FinishOrder(ctx echo.Context) error {
	return s.runOrderCommand(ctx, func(orderID, actor kernel.UUID) error {
		cmd, err := commands.NewFinishOrderCommand(orderID, actor)
		if err != nil {
			return err
		}
		return s.finishOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ReviewOrder handles POST /api/v1/orders/:id/review.
func (s *Server) ReviewOrder(ctx echo.Context) error {
	var req ReviewRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.runOrderCommand(ctx, func(orderID, actor kernel.UUID) error {
		var cmd commands.ReviewOrderCommand
		var err error
		if req.Confirm {
			cmd, err = commands.NewConfirmOrderCommand(orderID, actor)
		} else {
			cmd, err = commands.NewRejectFinishCommand(orderID, actor, req.Reason)
		}
		if err != nil {
			return err
		}
		return s.reviewOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ExtendAcceptDeadline handles POST /api/v1/orders/:id/extend-deadline.
func (s *Server) ExtendAcceptDeadline(ctx echo.Context) error {
	var req ExtendDeadlineRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.runOrderCommand(ctx, func(orderID, actor kernel.UUID) error {
		cmd, err := commands.NewExtendAcceptDeadlineCommand(orderID, actor, req.Until)
		if err != nil {
			return err
		}
		return s.extendDeadlineHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel. The role selects the
// cancellation branch; the domain still verifies the actor against the
// order's participants.
func (s *Server) CancelOrder(ctx echo.Context) error {
	var req CancelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.runOrderCommand(ctx, func(orderID, actor kernel.UUID) error {
		switch req.Role {
		case "CUSTOMER":
			cmd, err := commands.NewCancelByCustomerCommand(orderID, actor, req.Reason)
			if err != nil {
				return err
			}
			return s.cancelByCustomerHandler.Handle(ctx.Request().Context(), cmd)
		case "SPECIALIST":
			cmd, err := commands.NewCancelBySpecialistCommand(orderID, actor, req.Reason)
			if err != nil {
				return err
			}
			return s.cancelBySpecialistHandler.Handle(ctx.Request().Context(), cmd)
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "role must be CUSTOMER or SPECIALIST")
		}
	})
}

// RateOrder handles POST /api/v1/orders/:id/rating.
func (s *Server) RateOrder(ctx echo.Context) error {
	var req RatingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.runOrderCommand(ctx, func(orderID, actor kernel.UUID) error {
		cmd, err := commands.NewRateOrderCommand(orderID, actor, req.Score, req.Comment)
		if err != nil {
			return err
		}
		return s.rateOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// SearchSpecialists handles GET /api/v1/specialists/search.
func (s *Server) SearchSpecialists(ctx echo.Context) error {
	lat, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	if err != nil {
		return badRequest(ctx, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(ctx.QueryParam("lng"), 64)
	if err != nil {
		return badRequest(ctx, "lng must be a number")
	}
	categoryID, err := strconv.ParseInt(ctx.QueryParam("category_id"), 10, 64)
	if err != nil {
		return badRequest(ctx, "category_id must be a number")
	}

	sortMode, err := sortModeFromString(ctx.QueryParam("sort"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewSearchSpecialistsQuery(
		lat, lng, categoryID, sortMode, intParam(ctx.QueryParam("limit"), 0))
	if err != nil {
		return errorResponse(ctx, err)
	}

	results, err := s.searchSpecialistsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]SearchResult, 0, len(results))
	for _, r := range results {
		response = append(response, SearchResult{
			SpecialistID: r.SpecialistID.String(),
			DisplayName:  r.DisplayName,
			DistanceKm:   r.DistanceKm,
			RatingAvg:    r.RatingAvg,
			RatingCount:  r.RatingCount,
			PriceMinor:   r.PriceMinor,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetSpecialist handles GET /api/v1/specialists/:id.
func (s *Server) GetSpecialist(ctx echo.Context) error {
	specialistID, err := pathUUID(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetSpecialistQuery(specialistID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	profile, err := s.getSpecialistHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := SpecialistProfile{
		ID:          profile.ID.String(),
		DisplayName: profile.DisplayName,
		RadiusKm:    profile.RadiusKm,
		PriceMinor:  profile.PriceMinor,
		RatingAvg:   profile.RatingAvg,
		RatingCount: profile.RatingCount,
	}
	for _, c := range profile.Categories {
		response.Categories = append(response.Categories, SpecialistCategory{
			CategoryID: c.CategoryID,
			Enabled:    c.Enabled,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetAvailability handles PUT /api/v1/specialists/availability.
func (s *Server) SetAvailability(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}

	var req AvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetAvailabilityCommand(actor, req.On)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterDevice handles POST /api/v1/devices.
func (s *Server) RegisterDevice(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}

	var req DeviceRequest
	if err := ctx.Bind(&req); err != nil || req.Token == "" {
		return badRequest(ctx, "token is required")
	}

	if err := s.deviceTokens.Register(ctx.Request().Context(), actor, req.Token); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) runOrderCommand(ctx echo.Context, run func(orderID, actor kernel.UUID) error) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := run(orderID, actor); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func actorID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(accountHeader)
	if raw == "" {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, accountHeader+" header is required")
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, accountHeader+" header is not a UUID")
	}

	return id, nil
}

func pathUUID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalPoint(latRaw, lngRaw string) (*kernel.GeoPoint, error) {
	if latRaw == "" || lngRaw == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func buildIntent(kind string, at *time.Time) (order.SchedulingIntent, error) {
	switch kind {
	case "", "URGENT":
		return order.NewUrgentIntent(), nil
	case "PREFERRED":
		if at == nil {
			return order.SchedulingIntent{}, echo.NewHTTPError(http.StatusBadRequest, "intent_at is required for PREFERRED")
		}
		return order.NewPreferredIntent(*at)
	case "SCHEDULED":
		if at == nil {
			return order.SchedulingIntent{}, echo.NewHTTPError(http.StatusBadRequest, "intent_at is required for SCHEDULED")
		}
		return order.NewScheduledIntent(*at)
	default:
		return order.SchedulingIntent{}, echo.NewHTTPError(http.StatusBadRequest, "intent must be URGENT, PREFERRED or SCHEDULED")
	}
}

func sortModeFromString(s string) (services.SortMode, error) {
	switch s {
	case "", "distance":
		return services.SortByDistance, nil
	case "rating":
		return services.SortByRating, nil
	case "price":
		return services.SortByPrice, nil
	default:
		return services.SortByDistance, echo.NewHTTPError(http.StatusBadRequest, "sort must be distance, rating or price")
	}
}
