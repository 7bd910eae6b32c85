package kernel_test

import (
	"testing"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
	}{
		{name: "sao paulo", latitude: -23.5505, longitude: -46.6333},
		{name: "min bounds", latitude: kernel.MinLatitude, longitude: kernel.MinLongitude},
		{name: "max bounds", latitude: kernel.MaxLatitude, longitude: kernel.MaxLongitude},
		{name: "latitude too small", latitude: -90.0001, longitude: 0, wantErr: true},
		{name: "latitude too large", latitude: 90.5, longitude: 0, wantErr: true},
		{name: "longitude too small", latitude: 0, longitude: -181, wantErr: true},
		{name: "longitude too large", latitude: 0, longitude: 180.1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.latitude, tt.longitude)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				assert.Error(t, loc.Validate())
				return
			}
			require.NoError(t, err)
			require.NoError(t, loc.Validate())
			assert.InDelta(t, tt.latitude, loc.Latitude(), 1e-9)
			assert.InDelta(t, tt.longitude, loc.Longitude(), 1e-9)
		})
	}
}

func TestNewLocation_ReportsBothCoordinates(t *testing.T) {
	_, err := kernel.NewLocation(100, 200)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
	assert.Contains(t, err.Error(), "longitude")
}

func TestLocation_String(t *testing.T) {
	loc, err := kernel.NewLocation(-23.5505, -46.6333)
	require.NoError(t, err)
	assert.Equal(t, "-23.5505,-46.6333", loc.String())
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation(1.5, 2.5)
	b, _ := kernel.NewLocation(1.5, 2.5)
	c, _ := kernel.NewLocation(1.5, 2.6)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestLocation_ZeroValueIsInvalid(t *testing.T) {
	var loc kernel.Location
	assert.Equal(t, kernel.ErrLocationIsNotConstructed, loc.Validate())
}
