package commands

import (
	"errors"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrHandlePaymentWebhookCommandIsNotConstructed = errors.New(
	"HandlePaymentWebhookCommand must be created via NewHandlePaymentWebhookCommand constructor",
)

// HandlePaymentWebhookCommand carries a raw gateway delivery. The payload must
// stay byte-exact for signature verification.
type HandlePaymentWebhookCommand struct { //nolint:recvcheck //using for validation
	payload   []byte
	signature string

	guard guard.ConstructorGuard
}

func NewHandlePaymentWebhookCommand(payload []byte, signature string) (HandlePaymentWebhookCommand, error) {
	if len(payload) == 0 {
		return HandlePaymentWebhookCommand{}, errs.NewWebhookError(errs.NewValueIsRequiredError("payload"))
	}
	if signature == "" {
		return HandlePaymentWebhookCommand{}, errs.NewWebhookError(errs.NewValueIsRequiredError("signature"))
	}

	return HandlePaymentWebhookCommand{
		payload:   payload,
		signature: signature,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c HandlePaymentWebhookCommand) Validate() error {
	return c.guard.Validate(ErrHandlePaymentWebhookCommandIsNotConstructed)
}

func (c HandlePaymentWebhookCommand) Payload() []byte   { return c.payload }
func (c HandlePaymentWebhookCommand) Signature() string { return c.signature }
