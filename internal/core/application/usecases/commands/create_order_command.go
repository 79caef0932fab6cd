package commands

import (
	"errors"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
	"engage/internal/pkg/errs"
	"engage/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrAddressQueryIsRequired = errors.New("address query is required for home visits")
	ErrPreTargetIsRequired    = errors.New("office visits require a pre-targeted specialist")
)

// CreateOrderCommand represents a customer's request for a new engagement.
// The service entry is optional; when absent the category's default entry is
// used. A pre-targeted specialist is the only account allowed to accept the
// resulting order, and is mandatory for office visits because the meeting
// point is that specialist's registered office.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   kernel.UUID
	mode         order.ServiceMode
	categoryID   int64
	serviceID    *kernel.UUID
	addressQuery string
	intent       order.SchedulingIntent
	preTargetID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Home visits require a non-empty address query; office visits require a
// pre-targeted specialist; online engagements take neither.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	mode order.ServiceMode,
	categoryID int64,
	serviceID *kernel.UUID,
	addressQuery string,
	intent order.SchedulingIntent,
	preTargetID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setMode(mode),
		cmd.setCategoryID(categoryID),
		cmd.setServiceID(serviceID),
		cmd.setIntent(intent),
		cmd.setPreTargetID(preTargetID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	switch {
	case mode == order.ModeHome && addressQuery == "":
		return CreateOrderCommand{}, ErrAddressQueryIsRequired
	case mode == order.ModeOffice && preTargetID == nil:
		return CreateOrderCommand{}, ErrPreTargetIsRequired
	}
	cmd.addressQuery = addressQuery

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// Mode returns the requested service mode.
func (c CreateOrderCommand) Mode() order.ServiceMode { return c.mode }

// CategoryID returns the requested category.
func (c CreateOrderCommand) CategoryID() int64 { return c.categoryID }

// ServiceID returns the explicitly chosen catalog entry, nil for the default.
func (c CreateOrderCommand) ServiceID() *kernel.UUID { return c.serviceID }

// AddressQuery returns the customer's free-form address input.
func (c CreateOrderCommand) AddressQuery() string { return c.addressQuery }

// Intent returns the scheduling intent.
func (c CreateOrderCommand) Intent() order.SchedulingIntent { return c.intent }

// PreTargetID returns the pre-targeted specialist, nil for an open order.
func (c CreateOrderCommand) PreTargetID() *kernel.UUID { return c.preTargetID }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setMode(mode order.ServiceMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	c.mode = mode
	return nil
}

func (c *CreateOrderCommand) setCategoryID(categoryID int64) error {
	if categoryID <= 0 {
		return errs.NewValueIsRequiredError("categoryID")
	}
	c.categoryID = categoryID
	return nil
}

func (c *CreateOrderCommand) setServiceID(serviceID *kernel.UUID) error {
	if serviceID == nil {
		return nil
	}
	if err := serviceID.Validate(); err != nil {
		return err
	}
	id := *serviceID
	c.serviceID = &id
	return nil
}

func (c *CreateOrderCommand) setIntent(intent order.SchedulingIntent) error {
	if err := intent.Validate(); err != nil {
		return err
	}
	c.intent = intent
	return nil
}

func (c *CreateOrderCommand) setPreTargetID(preTargetID *kernel.UUID) error {
	if preTargetID == nil {
		return nil
	}
	if err := preTargetID.Validate(); err != nil {
		return err
	}
	id := *preTargetID
	c.preTargetID = &id
	return nil
}
