package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrCreatePaymentIntentCommandIsNotConstructed = errors.New(
		"CreatePaymentIntentCommand must be created via NewCreatePaymentIntentCommand constructor",
	)
	ErrMissingAmountOrOrderID = errs.NewValueIsRequiredErrorWithCause("payment intent",
		errors.New("missing amount or orderId"))
)

// CreatePaymentIntentCommand asks the gateway for a client secret. Amount is
// in major currency units.
type CreatePaymentIntentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  decimal.Decimal

	guard guard.ConstructorGuard
}

func NewCreatePaymentIntentCommand(orderID string, amount decimal.Decimal) (CreatePaymentIntentCommand, error) {
	if orderID == "" || amount.IsZero() {
		return CreatePaymentIntentCommand{}, ErrMissingAmountOrOrderID
	}
	if amount.IsNegative() {
		return CreatePaymentIntentCommand{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "∞")
	}

	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return CreatePaymentIntentCommand{}, err
	}

	return CreatePaymentIntentCommand{
		orderID: id,
		amount:  amount,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePaymentIntentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentIntentCommandIsNotConstructed)
}

func (c CreatePaymentIntentCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreatePaymentIntentCommand) Amount() decimal.Decimal { return c.amount }
