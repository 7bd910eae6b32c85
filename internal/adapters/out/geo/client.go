// Package geo implements ports.GeoClient on top of the Google Distance Matrix API.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/distancematrix/json"
	serviceName    = "geo"
	statusOK       = "OK"
	maxBodyBytes   = 1 << 20
)

var tracer = otel.Tracer("pizzeria/geo")

var _ ports.GeoClient = (*DistanceMatrixClient)(nil)

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type element struct {
	Status   string    `json:"status"`
	Distance textValue `json:"distance"`
	Duration textValue `json:"duration"`
}

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []element `json:"elements"`
	} `json:"rows"`
	ErrorMessage string `json:"error_message"`
}

// DistanceMatrixClient asks the routing provider for the driving distance and
// duration between two coordinates. It never retries; the caller bounds each
// call with its context.
type DistanceMatrixClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func NewDistanceMatrixClient(httpClient *http.Client, baseURL, apiKey string, logger *slog.Logger) (*DistanceMatrixClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	return &DistanceMatrixClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger.With("component", "geo-client"),
	}, nil
}

func (c *DistanceMatrixClient) GetDistanceAndDuration(
	ctx context.Context,
	origin, destination kernel.Location,
) (ports.Route, error) {
	ctx, span := tracer.Start(ctx, "DistanceMatrixClient.GetDistanceAndDuration")
	defer span.End()
	span.SetAttributes(
		attribute.String("geo.origin", origin.String()),
		attribute.String("geo.destination", destination.String()),
	)

	route, err := c.lookup(ctx, origin, destination)
	if err != nil {
		span.SetStatus(codes.Error, "distance lookup failed")
		span.RecordError(err)
		c.logger.ErrorContext(ctx, "distance lookup failed",
			"origin", origin.String(), "destination", destination.String(), "error", err)
		return ports.Route{}, errs.NewUpstreamError(serviceName, err)
	}
	return route, nil
}

func (c *DistanceMatrixClient) lookup(ctx context.Context, origin, destination kernel.Location) (ports.Route, error) {
	query := url.Values{}
	query.Set("origins", origin.String())
	query.Set("destinations", destination.String())
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return ports.Route{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Route{}, fmt.Errorf("call distance matrix: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ports.Route{}, fmt.Errorf("distance matrix responded %d", resp.StatusCode)
	}

	var body distanceMatrixResponse
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return ports.Route{}, fmt.Errorf("decode distance matrix response: %w", err)
	}

	if body.Status != "" && body.Status != statusOK {
		return ports.Route{}, fmt.Errorf("distance matrix status %s: %s", body.Status, body.ErrorMessage)
	}
	if len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return ports.Route{}, errors.New("distance matrix returned no elements")
	}

	el := body.Rows[0].Elements[0]
	if el.Status != statusOK {
		return ports.Route{}, fmt.Errorf("distance matrix element status %s", el.Status)
	}

	return ports.Route{
		DistanceText:  el.Distance.Text,
		DistanceValue: el.Distance.Value,
		DurationText:  el.Duration.Text,
		DurationValue: el.Duration.Value,
	}, nil
}
