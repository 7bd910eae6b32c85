package order

import (
	"fmt"
	"slices"

	"pizzeria/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	PENDING ──> PAID ──> DELIVERED
//	   │          │
//	   └──────────┴────> CANCELLED
//
// Writing the current status again is allowed so that redelivered payment
// confirmations stay harmless.
type Status string

const (
	Pending   Status = "PENDING"
	Paid      Status = "PAID"
	Delivered Status = "DELIVERED"
	Cancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	Pending:   {Paid, Cancelled},
	Paid:      {Delivered, Cancelled},
	Delivered: {},
	Cancelled: {},
}

// ParseStatus converts wire input into a Status, rejecting anything outside the closed set.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether to may follow s.
func (s Status) CanTransitionTo(to Status) bool {
	if s == to {
		return true
	}
	return slices.Contains(transitions[s], to)
}

// TransitionTo validates the move and returns the new status.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(to) {
		return "", errs.NewInvalidTransitionError("order", s.String(), to.String())
	}
	return to, nil
}

// AllowedPredecessors lists every status from which to can be written,
// including to itself. Storage adapters use it as the guard of a conditional
// update.
func AllowedPredecessors(to Status) []Status {
	predecessors := []Status{to}
	for _, from := range []Status{Pending, Paid, Delivered, Cancelled} {
		if from != to && slices.Contains(transitions[from], to) {
			predecessors = append(predecessors, from)
		}
	}
	return predecessors
}
