package delivery

import (
	"fmt"
	"slices"

	"pizzeria/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery.
//
//	PENDING ──> PREPARING ──> IN_TRANSIT ──> DELIVERED
//	   │            │              │
//	   │            └──────────────┴──> CANCELLED
//	   ├──────────────────────> IN_TRANSIT
//	   └──────────────────────> CANCELLED
type Status string

const (
	Pending   Status = "PENDING"
	Preparing Status = "PREPARING"
	InTransit Status = "IN_TRANSIT"
	Delivered Status = "DELIVERED"
	Cancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	Pending:   {Preparing, InTransit, Cancelled},
	Preparing: {InTransit, Cancelled},
	InTransit: {Delivered, Cancelled},
	Delivered: {},
	Cancelled: {},
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid delivery status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

func (s Status) CanTransitionTo(to Status) bool {
	return s == to || slices.Contains(transitions[s], to)
}

func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(to) {
		return "", errs.NewInvalidTransitionError("delivery", s.String(), to.String())
	}
	return to, nil
}

// AllowedPredecessors lists every status from which to can be written,
// including to itself.
func AllowedPredecessors(to Status) []Status {
	predecessors := []Status{to}
	for _, from := range []Status{Pending, Preparing, InTransit, Delivered, Cancelled} {
		if from != to && slices.Contains(transitions[from], to) {
			predecessors = append(predecessors, from)
		}
	}
	return predecessors
}
