package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/pkg/errs"
)

const (
	SignatureHeader     = "Stripe-Signature"
	maxWebhookBodyBytes = 64 << 10
)

// HandlePaymentWebhook handles POST /payments/webhook. The body is read raw
// because the signature covers the exact bytes. Once the signature checks out
// the gateway always gets {"received": true}.
func (s *Server) HandlePaymentWebhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBodyBytes))
	if err != nil {
		return errs.NewWebhookError(err)
	}

	cmd, err := commands.NewHandlePaymentWebhookCommand(payload, c.Request().Header.Get(SignatureHeader))
	if err != nil {
		return err
	}

	if err = s.handlers.PaymentWebhook.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, WebhookAck{Received: true})
}

// CreatePaymentIntent handles POST /payments/create-payment-intent.
func (s *Server) CreatePaymentIntent(c echo.Context) error {
	var req CreatePaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewCreatePaymentIntentCommand(req.OrderID, req.Amount)
	if err != nil {
		return err
	}

	intent, err := s.handlers.CreatePaymentIntent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, PaymentIntentResponse{ID: intent.ID, ClientSecret: intent.ClientSecret})
}
