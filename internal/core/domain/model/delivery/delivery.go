package delivery

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or NewStub constructor")
	ErrDeliveryAlreadyRouted    = errs.NewValueIsInvalidErrorWithCause("delivery",
		errors.New("order already has a routed delivery"))
)

// Schedule holds the optional timestamps of a delivery.
type Schedule struct {
	EstimatedAt *time.Time
	DeliveredAt *time.Time
}

// Delivery is the aggregate tracking how an order reaches its address.
type Delivery struct { //nolint:recvcheck //using for validation
	id        kernel.UUID
	orderID   kernel.UUID
	addressID kernel.UUID
	status    Status
	route     *Route
	schedule  Schedule

	events []kernel.DomainEvent
	guard  guard.ConstructorGuard
}

// NewStub creates the route-less PENDING delivery written together with an
// order that names an address. It raises no event.
func NewStub(id, orderID, addressID kernel.UUID) (*Delivery, error) {
	return RestoreDelivery(id, orderID, addressID, Pending, nil, Schedule{})
}

// NewDelivery creates a routed delivery.
func NewDelivery(
	id, orderID, addressID kernel.UUID,
	status Status,
	route Route,
	schedule Schedule,
) (*Delivery, error) {
	if err := route.Validate(); err != nil {
		return nil, err
	}

	d, err := RestoreDelivery(id, orderID, addressID, status, &route, schedule)
	if err != nil {
		return nil, err
	}

	d.raiseStatusChanged()
	return d, nil
}

func RestoreDelivery(
	id, orderID, addressID kernel.UUID,
	status Status,
	route *Route,
	schedule Schedule,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		addressID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		id:        id,
		orderID:   orderID,
		addressID: addressID,
		status:    status,
		route:     route,
		schedule:  schedule,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

func (d *Delivery) ID() kernel.UUID        { return d.id }
func (d *Delivery) OrderID() kernel.UUID   { return d.orderID }
func (d *Delivery) AddressID() kernel.UUID { return d.addressID }
func (d *Delivery) Status() Status         { return d.status }
func (d *Delivery) Route() *Route          { return d.route }
func (d *Delivery) Schedule() Schedule     { return d.schedule }

// IsStub reports whether the delivery still lacks a route.
func (d *Delivery) IsStub() bool {
	return d.route == nil
}

// CheckResolvable reports whether the stub may be routed and moved to status.
// A closed stub (delivered or cancelled) is never reopened, and status must be
// reachable from the stub's current status.
func (d *Delivery) CheckResolvable(status Status) error {
	if !d.IsStub() {
		return ErrDeliveryAlreadyRouted
	}
	if err := status.Validate(); err != nil {
		return err
	}
	if d.status.IsTerminal() {
		return errs.NewInvalidTransitionError("delivery", d.status.String(), status.String())
	}
	if _, err := d.status.TransitionTo(status); err != nil {
		return err
	}
	return nil
}

// ResolveRoute turns a stub into a routed delivery in place. The order binding
// never changes; the address may.
func (d *Delivery) ResolveRoute(addressID kernel.UUID, status Status, route Route, schedule Schedule) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := d.CheckResolvable(status); err != nil {
		return err
	}
	if err := errors.Join(addressID.Validate(), route.Validate()); err != nil {
		return err
	}

	d.addressID = addressID
	d.status = status
	d.route = &route
	d.schedule = schedule
	d.raiseStatusChanged()
	return nil
}

// ChangeStatus moves the delivery along its transition table.
func (d *Delivery) ChangeStatus(to Status) error {
	if err := d.Validate(); err != nil {
		return err
	}

	next, err := d.status.TransitionTo(to)
	if err != nil {
		return err
	}

	d.status = next
	d.raiseStatusChanged()
	return nil
}

// Reschedule replaces the timestamps that are set in s.
func (d *Delivery) Reschedule(s Schedule) {
	if s.EstimatedAt != nil {
		d.schedule.EstimatedAt = s.EstimatedAt
	}
	if s.DeliveredAt != nil {
		d.schedule.DeliveredAt = s.DeliveredAt
	}
}

func (d *Delivery) DomainEvents() []kernel.DomainEvent {
	return d.events
}

func (d *Delivery) ClearDomainEvents() {
	d.events = nil
}

func (d *Delivery) raiseStatusChanged() {
	d.events = append(d.events, StatusChanged{DeliveryID: d.id, OrderID: d.orderID, Status: d.status})
}
