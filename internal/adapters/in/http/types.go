package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"engage/internal/core/application/usecases/queries"
	"engage/internal/core/ports"
	"engage/internal/pkg/errs"
)

// Error is the body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse carries the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Mode         string     `json:"mode"`
	CategoryID   int64      `json:"category_id"`
	ServiceID    *string    `json:"service_id,omitempty"`
	AddressQuery string     `json:"address_query,omitempty"`
	Intent       string     `json:"intent,omitempty"`
	IntentAt     *time.Time `json:"intent_at,omitempty"`
	SpecialistID *string    `json:"specialist_id,omitempty"`
}

// ProgressRequest selects a work progress transition.
type ProgressRequest struct {
	Action string `json:"action"`
}

// RescheduleRequest moves the agreed service time.
type RescheduleRequest struct {
	At time.Time `json:"at"`
}

// ReviewRequest is the customer's verdict on a finished order.
type ReviewRequest struct {
	Confirm bool   `json:"confirm"`
	Reason  string `json:"reason,omitempty"`
}

// ExtendDeadlineRequest pushes the acceptance deadline forward.
type ExtendDeadlineRequest struct {
	Until time.Time `json:"until"`
}

// CancelRequest cancels an order on behalf of one of its participants.
type CancelRequest struct {
	Role   string `json:"role"`
	Reason string `json:"reason,omitempty"`
}

// RatingRequest is the customer's rating of a closed order.
type RatingRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

// AvailabilityRequest toggles the caller's availability.
type AvailabilityRequest struct {
	On bool `json:"on"`
}

// DeviceRequest registers a push token for the caller's account.
type DeviceRequest struct {
	Token string `json:"token"`
}

// OrderResponse is the full order snapshot with its event history.
type OrderResponse struct {
	ID               string               `json:"id"`
	CustomerID       string               `json:"customer_id"`
	SpecialistID     *string              `json:"specialist_id,omitempty"`
	Status           string               `json:"status"`
	Mode             string               `json:"mode"`
	CategoryID       int64                `json:"category_id"`
	ServiceID        string               `json:"service_id"`
	Address          *string              `json:"address,omitempty"`
	Intent           string               `json:"intent"`
	IntentAt         *time.Time           `json:"intent_at,omitempty"`
	AcceptDeadlineAt time.Time            `json:"accept_deadline_at"`
	CreatedAt        time.Time            `json:"created_at"`
	DistanceKm       *float64             `json:"distance_km,omitempty"`
	Events           []OrderEventResponse `json:"events"`
}

// OrderEventResponse is one entry of an order's history.
type OrderEventResponse struct {
	Type      string            `json:"type"`
	ActorID   string            `json:"actor_id"`
	Payload   map[string]string `json:"payload,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// OrderListItem is a row of GET /orders.
type OrderListItem struct {
	ID               string    `json:"id"`
	Status           string    `json:"status"`
	Mode             string    `json:"mode"`
	CategoryID       int64     `json:"category_id"`
	SpecialistID     *string   `json:"specialist_id,omitempty"`
	AcceptDeadlineAt time.Time `json:"accept_deadline_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// SearchResult is a ranked candidate returned by the specialist search.
type SearchResult struct {
	SpecialistID string  `json:"specialist_id"`
	DisplayName  string  `json:"display_name"`
	DistanceKm   float64 `json:"distance_km"`
	RatingAvg    float64 `json:"rating_avg"`
	RatingCount  int     `json:"rating_count"`
	PriceMinor   *int64  `json:"price_minor,omitempty"`
}

// SpecialistProfile is the public view of a specialist.
type SpecialistProfile struct {
	ID          string               `json:"id"`
	DisplayName string               `json:"display_name"`
	RadiusKm    float64              `json:"radius_km"`
	PriceMinor  *int64               `json:"price_minor,omitempty"`
	RatingAvg   float64              `json:"rating_avg"`
	RatingCount int                  `json:"rating_count"`
	Categories  []SpecialistCategory `json:"categories"`
}

// SpecialistCategory is one category of a specialist's profile together
// with the visibility verdict for it.
type SpecialistCategory struct {
	CategoryID int64 `json:"category_id"`
	Enabled    bool  `json:"enabled"`
}

func toOrderResponse(r queries.GetOrderQueryResponse) OrderResponse {
	response := OrderResponse{
		ID:               r.ID.String(),
		CustomerID:       r.CustomerID.String(),
		Status:           r.Status,
		Mode:             r.Mode,
		CategoryID:       r.CategoryID,
		ServiceID:        r.ServiceID.String(),
		Address:          r.Address,
		Intent:           r.IntentKind,
		IntentAt:         r.IntentAt,
		AcceptDeadlineAt: r.AcceptDeadlineAt,
		CreatedAt:        r.CreatedAt,
		DistanceKm:       r.DistanceKm,
		Events:           make([]OrderEventResponse, 0, len(r.Events)),
	}
	if r.SpecialistID != nil {
		id := r.SpecialistID.String()
		response.SpecialistID = &id
	}
	for _, e := range r.Events {
		response.Events = append(response.Events, OrderEventResponse{
			Type:      e.Type,
			ActorID:   e.ActorID.String(),
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt,
		})
	}
	return response
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps application and domain errors onto HTTP statuses.
// Validation failures become 400, authorization failures 403, missing
// objects 404, lost optimistic-concurrency races 409 and violated state
// machine preconditions 422.
func errorResponse(ctx echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return ctx.JSON(httpErr.Code, Error{
			Code:    httpErr.Code,
			Message: messageOf(httpErr.Message, err),
		})
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ports.ErrConcurrentModification):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrPreconditionFailed),
		errors.Is(err, errs.ErrNotEligible),
		errors.Is(err, ports.ErrOutOfServiceRegion):
		status = http.StatusUnprocessableEntity
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}

func messageOf(payload any, err error) string {
	if s, ok := payload.(string); ok {
		return s
	}
	return err.Error()
}
