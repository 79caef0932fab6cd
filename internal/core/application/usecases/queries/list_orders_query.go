package queries

import (
	"errors"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
	"engage/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// listOrdersMaxPageSize caps one page of history.
const listOrdersMaxPageSize = 100

// ListOrdersQuery retrieves a participant's orders, split into the open and
// the closed partition, newest first.
//
// Example:
//
//	query, err := queries.NewListOrdersQuery(accountID, false, 20, 0)
//	if err != nil {
//	    return err
//	}
//
//	open, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	guard guard.ConstructorGuard

	participantID kernel.UUID
	closed        bool
	limit         int
	offset        int
}

// NewListOrdersQuery creates a listing query. closed selects terminal
// orders; otherwise the active ones are returned.
func NewListOrdersQuery(participantID kernel.UUID, closed bool, limit, offset int) (ListOrdersQuery, error) {
	if err := participantID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	if limit <= 0 {
		limit = listOrdersMaxPageSize
	}
	if limit > listOrdersMaxPageSize {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, listOrdersMaxPageSize)
	}
	if offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, nil)
	}

	return ListOrdersQuery{
		guard:         guard.NewConstructorGuard(),
		participantID: participantID,
		closed:        closed,
		limit:         limit,
		offset:        offset,
	}, nil
}

// ParticipantID returns the account whose orders are listed.
func (q ListOrdersQuery) ParticipantID() kernel.UUID { return q.participantID }

// Closed reports whether the terminal partition was requested.
func (q ListOrdersQuery) Closed() bool { return q.closed }

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int { return q.limit }

// Offset returns the page offset.
func (q ListOrdersQuery) Offset() int { return q.offset }

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ListOrdersQueryResponse represents one order row in a listing.
type ListOrdersQueryResponse struct {
	ID               kernel.UUID
	Status           string
	Mode             string
	CategoryID       int64
	SpecialistID     *kernel.UUID
	AcceptDeadlineAt time.Time
	CreatedAt        time.Time
}
