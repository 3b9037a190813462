package kernel_test

import (
	"math"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		delta                  float64
	}{
		{name: "same point", lat1: 18.5204, lon1: 73.8567, lat2: 18.5204, lon2: 73.8567, want: 0, delta: 1e-9},
		{name: "one degree of longitude on the equator", lat1: 0, lon1: 0, lat2: 0, lon2: 1, want: 111.195, delta: 0.01},
		{name: "pune to mumbai", lat1: 18.5204, lon1: 73.8567, lat2: 19.0760, lon2: 72.8777, want: 120, delta: 2},
		{name: "antipodes", lat1: 0, lon1: 0, lat2: 0, lon2: 180, want: math.Pi * kernel.EarthRadiusKm, delta: 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kernel.DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)

			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}

	t.Run("is symmetric", func(t *testing.T) {
		a := kernel.DistanceKm(18.5204, 73.8567, 28.6139, 77.2090)
		b := kernel.DistanceKm(28.6139, 77.2090, 18.5204, 73.8567)

		assert.InDelta(t, a, b, 1e-9)
	})
}

func TestDistanceKm_UnknownInputIsInfinite(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	for _, in := range [][4]float64{
		{nan, 0, 0, 0},
		{0, nan, 0, 0},
		{0, 0, nan, 0},
		{0, 0, 0, nan},
		{inf, 0, 0, 0},
		{0, 0, 0, math.Inf(-1)},
	} {
		got := kernel.DistanceKm(in[0], in[1], in[2], in[3])

		assert.True(t, math.IsInf(got, 1), "input %v", in)
	}
}

func TestNewCoordinates(t *testing.T) {
	t.Run("should accept boundary values", func(t *testing.T) {
		c, err := kernel.NewCoordinates(kernel.LatitudeMax, kernel.LongitudeMin)

		require.NoError(t, err)
		assert.True(t, c.IsKnown())
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		_, err := kernel.NewCoordinates(91, 200)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("should reject NaN", func(t *testing.T) {
		_, err := kernel.NewCoordinates(math.NaN(), 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCoordinates_DistanceTo(t *testing.T) {
	pune, _ := kernel.NewCoordinates(18.5204, 73.8567)
	mumbai, _ := kernel.NewCoordinates(19.0760, 72.8777)

	t.Run("known points", func(t *testing.T) {
		assert.InDelta(t, 120, pune.DistanceTo(mumbai), 2)
	})

	t.Run("zero value is unknown", func(t *testing.T) {
		var unknown kernel.Coordinates

		assert.False(t, unknown.IsKnown())
		assert.True(t, math.IsInf(unknown.DistanceTo(pune), 1))
		assert.True(t, math.IsInf(pune.DistanceTo(unknown), 1))
		assert.Equal(t, "Coordinates(unknown)", unknown.String())
	})

	t.Run("half known point is unknown", func(t *testing.T) {
		lat := 18.5
		half := kernel.RestoreCoordinates(&lat, nil)

		gotLat, ok := half.Latitude()
		assert.True(t, ok)
		assert.InDelta(t, 18.5, gotLat, 1e-9)
		_, ok = half.Longitude()
		assert.False(t, ok)
		assert.True(t, math.IsInf(half.DistanceTo(pune), 1))
	})

	t.Run("restored point equals constructed point", func(t *testing.T) {
		lat, lon := 18.5204, 73.8567

		restored := kernel.RestoreCoordinates(&lat, &lon)

		assert.Equal(t, pune, restored)
	})
}
