package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
)

// ListOrdersQueryHandler retrieves a participant's order history from the
// database. Reads bypass the aggregate and scan projection rows directly.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders where the participant is the customer or
// the bound specialist qualify; results come newest first.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statusFilter := "NOT IN"
	if query.Closed() {
		statusFilter = "IN"
	}

	orders := make([]ListOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			mode,
			category_id,
			specialist_id,
			accept_deadline_at,
			created_at
		FROM orders
		WHERE (customer_id = @participant OR specialist_id = @participant)
		  AND status `+statusFilter+` @terminal
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset
	`,
		map[string]any{
			"participant": query.ParticipantID().Bytes(),
			"terminal": []int{
				int(order.Closed), int(order.CancelledByCustomer),
				int(order.CancelledBySpecialist), int(order.CancelledAuto),
			},
			"limit":  query.Limit(),
			"offset": query.Offset(),
		},
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListOrdersQueryResponse
		var id uuid.UUID
		var specialistID *uuid.UUID
		var status, mode int

		err = rows.Scan(
			&id,
			&status,
			&mode,
			&resp.CategoryID,
			&specialistID,
			&resp.AcceptDeadlineAt,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		if specialistID != nil {
			spID, spErr := kernel.UUIDFromBytes((*specialistID)[:])
			if spErr != nil {
				return nil, spErr
			}
			resp.SpecialistID = &spID
		}

		resp.Status = order.Status(status).String()
		resp.Mode = order.ServiceMode(mode).String()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
