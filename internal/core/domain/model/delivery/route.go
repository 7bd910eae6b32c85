package delivery

import (
	"errors"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

// Route is the distance/duration snapshot returned by the routing provider.
// Text values are kept exactly as the provider rendered them.
type Route struct { //nolint:recvcheck //using for validation
	distanceText   string
	distanceMeters int
	durationText   string
	durationSec    int

	guard guard.ConstructorGuard
}

func NewRoute(distanceText string, distanceMeters int, durationText string, durationSec int) (Route, error) {
	r := Route{
		distanceText:   distanceText,
		distanceMeters: distanceMeters,
		durationText:   durationText,
		durationSec:    durationSec,
		guard:          guard.NewConstructorGuard(),
	}

	var err error
	if distanceText == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("distance"))
	}
	if durationText == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("duration"))
	}
	if distanceMeters < 0 || durationSec < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("route", errors.New("negative distance or duration")))
	}
	if err != nil {
		return Route{}, err
	}

	return r, nil
}

func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r Route) DistanceText() string { return r.distanceText }
func (r Route) DistanceMeters() int  { return r.distanceMeters }
func (r Route) DurationText() string { return r.durationText }
func (r Route) DurationSeconds() int { return r.durationSec }
