package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

const PaymentSucceededEvent = "payment_intent.succeeded"

// PaymentIntent is the client-facing part of a created intent.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// WebhookEvent is a verified gateway event reduced to the fields the service reads.
type WebhookEvent struct {
	ID       string
	Type     string
	Metadata map[string]string
}

// PaymentGateway abstracts the card payment provider.
type PaymentGateway interface {
	// CreatePaymentIntent charges amount (major units) in currency.
	CreatePaymentIntent(
		ctx context.Context,
		amount decimal.Decimal,
		currency string,
		metadata map[string]string,
	) (PaymentIntent, error)

	// ConstructWebhookEvent verifies the signature header against the raw
	// payload using the configured signing secret.
	ConstructWebhookEvent(payload []byte, signature string) (WebhookEvent, error)
}
