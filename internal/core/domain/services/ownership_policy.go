package services

import (
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// Requester identifies who performs an operation. A nil requester is the
// admin path; role gating happens at the transport boundary.
type Requester = *kernel.UserID

// OwnershipPolicy is the only place where ownership is decided.
type OwnershipPolicy struct{}

func NewOwnershipPolicy() OwnershipPolicy {
	return OwnershipPolicy{}
}

// Authorize returns an access denied error when requester is set and differs from owner.
func (OwnershipPolicy) Authorize(requester Requester, owner kernel.UserID, resource string, id any) error {
	if requester == nil {
		return nil
	}
	if *requester != owner {
		return errs.NewAccessDeniedError(resource, id)
	}
	return nil
}

// AsRequester is a helper for call sites holding a concrete user id.
func AsRequester(id kernel.UserID) Requester {
	return &id
}
