package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"pizzeria/internal/pkg/errs"
)

const (
	KindNotFound       = "NotFound"
	KindForbidden      = "Forbidden"
	KindBadRequest     = "BadRequest"
	KindUnauthorized   = "Unauthorized"
	KindInternalServer = "InternalServerError"

	upstreamMessage = "upstream service unavailable"
	internalMessage = "internal server error"
)

// ErrorResponse is the body of every failed request except the payment webhook.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewErrorHandler maps the errs taxonomy onto status codes. Upstream and
// unknown failures are logged and answered with a generic message.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http-errors")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var webhookErr *errs.WebhookError
		if errors.As(err, &webhookErr) {
			_ = c.String(http.StatusBadRequest, webhookErr.Error())
			return
		}

		resp := toErrorResponse(err)
		if resp.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(resp.Code)
			return
		}
		_ = c.JSON(resp.Code, resp)
	}
}

func toErrorResponse(err error) ErrorResponse {
	var httpErr *echo.HTTPError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, errs.ErrUpstreamFailure):
		return ErrorResponse{Code: http.StatusInternalServerError, Kind: KindInternalServer, Message: upstreamMessage}
	case errors.Is(err, errs.ErrObjectNotFound):
		return ErrorResponse{Code: http.StatusNotFound, Kind: KindNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrAccessDenied):
		return ErrorResponse{Code: http.StatusForbidden, Kind: KindForbidden, Message: err.Error()}
	case errors.Is(err, errs.ErrUnauthorized):
		return ErrorResponse{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.As(err, &validationErrs):
		return ErrorResponse{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: err.Error()}
	case errors.As(err, &httpErr):
		return ErrorResponse{Code: httpErr.Code, Kind: kindForStatus(httpErr.Code), Message: httpMessage(httpErr)}
	default:
		return ErrorResponse{Code: http.StatusInternalServerError, Kind: KindInternalServer, Message: internalMessage}
	}
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusInternalServerError:
		return KindInternalServer
	default:
		if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
			return KindBadRequest
		}
		return http.StatusText(code)
	}
}

func httpMessage(e *echo.HTTPError) string {
	if msg, ok := e.Message.(string); ok {
		return msg
	}
	return http.StatusText(e.Code)
}
