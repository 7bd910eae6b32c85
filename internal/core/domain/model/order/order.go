package order

import (
	"errors"
	"fmt"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	ErrOrderHasNoItems       = errs.NewValueIsRequiredErrorWithCause("items", errors.New("order must contain at least one item"))
)

// Order is the aggregate root of the ordering flow. It owns its line items and
// records a StatusChanged event on creation and on every status write.
type Order struct { //nolint:recvcheck //using for validation
	id        kernel.UUID
	userID    kernel.UserID
	items     []Item
	total     decimal.Decimal
	status    Status
	createdAt time.Time

	events []kernel.DomainEvent
	guard  guard.ConstructorGuard
}

// NewOrder creates a PENDING order and computes its total from the items.
// Duplicate pizza ids are rejected instead of merged.
func NewOrder(id kernel.UUID, userID kernel.UserID, items []Item, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.total = sumItems(o.items)
	o.raise(StatusChanged{OrderID: o.id, Status: o.status})

	return o, nil
}

// RestoreOrder rebuilds an order from storage without recomputing its total or
// raising events.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UserID,
	items []Item,
	total decimal.Decimal,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		total:     total,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setItems(items),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID                { return o.id }
func (o *Order) UserID() kernel.UserID          { return o.userID }
func (o *Order) Total() decimal.Decimal         { return o.total }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) IsOwnedBy(u kernel.UserID) bool { return o.userID == u }

// Items returns a copy of the line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// ChangeStatus moves the order along the transition table. A same-status write
// succeeds and still records an event.
func (o *Order) ChangeStatus(to Status) error {
	if err := o.Validate(); err != nil {
		return err
	}

	next, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}

	o.status = next
	o.raise(StatusChanged{OrderID: o.id, Status: next})
	return nil
}

func (o *Order) DomainEvents() []kernel.DomainEvent {
	return o.events
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) raise(e kernel.DomainEvent) {
	o.events = append(o.events, e)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UserID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}

	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.PizzaID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("pizza %d appears more than once", item.PizzaID()))
		}
		seen[item.PizzaID()] = struct{}{}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func sumItems(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
