package errs

import (
	"errors"
	"fmt"
)

var (
	ErrAccessDenied      = errors.New("access denied")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUpstreamFailure   = errors.New("upstream failure")
	ErrWebhook           = errors.New("webhook error")
)

// AccessDeniedError is returned when a requester does not own the resource.
type AccessDeniedError struct {
	Resource string
	ID       any
}

func NewAccessDeniedError(resource string, id any) *AccessDeniedError {
	return &AccessDeniedError{Resource: resource, ID: id}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s %v", ErrAccessDenied, e.Resource, e.ID)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

type UnauthorizedError struct {
	Cause error
}

func NewUnauthorizedError(cause error) *UnauthorizedError {
	return &UnauthorizedError{Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	return withCause(ErrUnauthorized.Error(), e.Cause)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InvalidTransitionError reports a status change the state machine forbids.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func NewInvalidTransitionError(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UpstreamError wraps a failure of an external collaborator. The cause is kept
// for logs and never rendered to clients.
type UpstreamError struct {
	Service string
	Cause   error
}

func NewUpstreamError(service string, cause error) *UpstreamError {
	return &UpstreamError{Service: service, Cause: cause}
}

func (e *UpstreamError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUpstreamFailure, e.Service), e.Cause)
}

func (e *UpstreamError) Unwrap() []error {
	return []error{ErrUpstreamFailure, e.Cause}
}

// WebhookError is a rejected webhook delivery. Its message is returned to the
// gateway verbatim.
type WebhookError struct {
	Cause error
}

func NewWebhookError(cause error) *WebhookError {
	return &WebhookError{Cause: cause}
}

func (e *WebhookError) Error() string {
	msg := "unknown"
	if e.Cause != nil {
		msg = e.Cause.Error()
	}
	return "Webhook Error: " + msg
}

func (e *WebhookError) Unwrap() error {
	return ErrWebhook
}
