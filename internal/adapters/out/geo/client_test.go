package geo_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/adapters/out/geo"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

const okBody = `{
  "status": "OK",
  "rows": [{"elements": [{
    "status": "OK",
    "distance": {"text": "5.2 km", "value": 5200},
    "duration": {"text": "14 mins", "value": 840}
  }]}]
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func locations(t *testing.T) (kernel.Location, kernel.Location) {
	t.Helper()
	origin, err := kernel.NewLocation(-23.5505, -46.6333)
	require.NoError(t, err)
	destination, err := kernel.NewLocation(-23.5613, -46.6565)
	require.NoError(t, err)
	return origin, destination
}

func newClient(t *testing.T, srv *httptest.Server) *geo.DistanceMatrixClient {
	t.Helper()
	c, err := geo.NewDistanceMatrixClient(srv.Client(), srv.URL, "test-key", discardLogger())
	require.NoError(t, err)
	return c
}

func TestNewDistanceMatrixClient_RequiresAPIKey(t *testing.T) {
	_, err := geo.NewDistanceMatrixClient(nil, "", " ", discardLogger())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetDistanceAndDuration_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-23.5505,-46.6333", r.URL.Query().Get("origins"))
		assert.Equal(t, "-23.5613,-46.6565", r.URL.Query().Get("destinations"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	origin, destination := locations(t)
	route, err := newClient(t, srv).GetDistanceAndDuration(context.Background(), origin, destination)

	require.NoError(t, err)
	assert.Equal(t, "5.2 km", route.DistanceText)
	assert.Equal(t, 5200, route.DistanceValue)
	assert.Equal(t, "14 mins", route.DurationText)
	assert.Equal(t, 840, route.DurationValue)
}

func TestGetDistanceAndDuration_Failures(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"non ok element": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"ZERO_RESULTS"}]}]}`))
		},
		"no rows": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"OK","rows":[]}`))
		},
		"request denied": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
		},
		"http error": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"malformed body": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{`))
		},
	}

	origin, destination := locations(t)
	for name, handler := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			_, err := newClient(t, srv).GetDistanceAndDuration(context.Background(), origin, destination)
			require.ErrorIs(t, err, errs.ErrUpstreamFailure)
		})
	}
}

func TestGetDistanceAndDuration_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	origin, destination := locations(t)
	_, err := newClient(t, srv).GetDistanceAndDuration(ctx, origin, destination)

	require.ErrorIs(t, err, errs.ErrUpstreamFailure)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
