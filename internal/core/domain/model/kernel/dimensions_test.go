package kernel_test

import (
	"testing"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	t.Run("should create valid dimensions", func(t *testing.T) {
		dims, err := kernel.NewDimensions(50, 40, 30)

		require.NoError(t, err)
		require.NoError(t, dims.Validate())
		assert.InDelta(t, 50.0, dims.WidthCm(), 0)
		assert.InDelta(t, 40.0, dims.HeightCm(), 0)
		assert.InDelta(t, 30.0, dims.DepthCm(), 0)
	})

	t.Run("should reject out of range sides", func(t *testing.T) {
		tests := []struct {
			name    string
			w, h, d float64
		}{
			{"zero width", 0, 40, 30},
			{"negative height", 50, -1, 30},
			{"zero depth", 50, 40, 0},
			{"width above max", 1001, 40, 30},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewDimensions(tc.w, tc.h, tc.d)
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			})
		}
	})

	t.Run("should collect all side errors at once", func(t *testing.T) {
		_, err := kernel.NewDimensions(0, 0, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "widthCm")
		assert.Contains(t, err.Error(), "heightCm")
		assert.Contains(t, err.Error(), "depthCm")
	})
}

func TestDimensionsValidate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var dims kernel.Dimensions

		require.Error(t, dims.Validate())
		assert.Equal(t, kernel.ErrDimensionsAreNotConstructed, dims.Validate())
	})
}

func TestDimensionsCBM(t *testing.T) {
	tests := []struct {
		name    string
		w, h, d float64
		want    float64
	}{
		{"half cubic meter box", 100, 100, 50, 0.5},
		{"standard parcel", 50, 40, 30, 0.06},
		{"small parcel rounded to six places", 10, 10, 10, 0.001},
		{"sub-precision volume rounds half up", 1, 1, 0.5, 0.000001},
		{"full cubic meter", 100, 100, 100, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dims, err := kernel.NewDimensions(tc.w, tc.h, tc.d)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, dims.CBM(), 1e-9)
		})
	}
}

func TestDimensionsIsEqual(t *testing.T) {
	t.Run("equal dimensions", func(t *testing.T) {
		a, err := kernel.NewDimensions(50, 40, 30)
		require.NoError(t, err)
		b, err := kernel.NewDimensions(50, 40, 30)
		require.NoError(t, err)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different dimensions", func(t *testing.T) {
		a, err := kernel.NewDimensions(50, 40, 30)
		require.NoError(t, err)
		b, err := kernel.NewDimensions(30, 40, 50)
		require.NoError(t, err)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("zero value fails comparison", func(t *testing.T) {
		a, err := kernel.NewDimensions(50, 40, 30)
		require.NoError(t, err)
		var b kernel.Dimensions

		_, err = a.IsEqual(b)
		require.Error(t, err)
	})
}

func TestDimensionsString(t *testing.T) {
	dims, err := kernel.NewDimensions(50, 40.5, 30)
	require.NoError(t, err)

	assert.Equal(t, "50x40.5x30 cm", dims.String())
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		places int
		want   float64
	}{
		{"tie rounds up", 0.125, 2, 0.13},
		{"below tie rounds down", 0.124, 2, 0.12},
		{"monetary tax rounding", 104.125, 2, 104.13},
		{"six place volume", 0.0000005, 6, 0.000001},
		{"negative tie rounds away from zero", -0.125, 2, -0.13},
		{"integer unchanged", 42, 2, 42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, kernel.RoundHalfUp(tc.v, tc.places), 1e-9)
		})
	}
}
