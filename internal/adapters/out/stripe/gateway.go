// Package stripe implements ports.PaymentGateway with the Stripe API.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	stripeapi "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"

	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

var _ ports.PaymentGateway = (*Gateway)(nil)

var minorUnits = decimal.NewFromInt(100)

type paymentIntentAPI interface {
	New(params *stripeapi.PaymentIntentParams) (*stripeapi.PaymentIntent, error)
}

// Config configures the Gateway. Intents replaces the API client in tests.
type Config struct {
	SecretKey     string
	WebhookSecret string
	// Tolerance bounds the signature timestamp age; zero keeps the library default.
	Tolerance time.Duration
	Backends  *stripeapi.Backends
	Intents   paymentIntentAPI
	Logger    *slog.Logger
}

type Gateway struct {
	intents       paymentIntentAPI
	webhookSecret string
	tolerance     time.Duration
	logger        *slog.Logger
}

func NewGateway(cfg Config) (*Gateway, error) {
	secretKey := strings.TrimSpace(cfg.SecretKey)
	if secretKey == "" && cfg.Intents == nil {
		return nil, errs.NewValueIsRequiredError("stripe secret key")
	}
	if strings.TrimSpace(cfg.WebhookSecret) == "" {
		return nil, errs.NewValueIsRequiredError("stripe webhook secret")
	}
	if cfg.Logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	intents := cfg.Intents
	if intents == nil {
		intents = client.New(secretKey, cfg.Backends).PaymentIntents
	}

	tolerance := cfg.Tolerance
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}

	return &Gateway{
		intents:       intents,
		webhookSecret: cfg.WebhookSecret,
		tolerance:     tolerance,
		logger:        cfg.Logger.With("component", "stripe-gateway"),
	}, nil
}

// CreatePaymentIntent converts amount to minor units, rounding half away from zero.
func (g *Gateway) CreatePaymentIntent(
	ctx context.Context,
	amount decimal.Decimal,
	currency string,
	metadata map[string]string,
) (ports.PaymentIntent, error) {
	params := &stripeapi.PaymentIntentParams{
		Amount:   stripeapi.Int64(amount.Mul(minorUnits).Round(0).IntPart()),
		Currency: stripeapi.String(strings.ToLower(currency)),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := g.intents.New(params)
	if err != nil {
		return ports.PaymentIntent{}, fmt.Errorf("stripe: create payment intent: %w", err)
	}

	g.logger.InfoContext(ctx, "payment intent created",
		"paymentIntent", intent.ID, "amount", intent.Amount, "currency", intent.Currency)

	return ports.PaymentIntent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// ConstructWebhookEvent verifies the Stripe-Signature header. Events signed
// for another API version are accepted; only the type and metadata are read.
func (g *Gateway) ConstructWebhookEvent(payload []byte, signature string) (ports.WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{
			Tolerance:                g.tolerance,
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		return ports.WebhookEvent{}, err
	}

	result := ports.WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return result, nil
	}

	var object struct {
		Metadata map[string]string `json:"metadata"`
	}
	if err = json.Unmarshal(event.Data.Raw, &object); err != nil {
		return ports.WebhookEvent{}, errors.Join(errors.New("malformed event object"), err)
	}
	result.Metadata = object.Metadata

	return result, nil
}
