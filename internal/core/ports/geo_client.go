package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
)

// Route is what the routing provider reports for an origin/destination pair.
type Route struct {
	DistanceText  string
	DistanceValue int
	DurationText  string
	DurationValue int
}

// GeoClient looks up driving distance and duration. Every failure, including
// a timeout or a non-OK element, is reported as errs.ErrUpstreamFailure.
type GeoClient interface {
	GetDistanceAndDuration(ctx context.Context, origin, destination kernel.Location) (Route, error)
}
