package mesh_test

import (
	"testing"

	"github.com/paper-plateau/meshgrid/internal/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		code           string
		minLat, minLon float64
		height, width  float64
	}{
		{"primary mesh", "5339", 35.333333333333336, 139.0, 40.0 / 60, 1.0},
		{"secondary mesh", "533946", 35.666666666666664, 139.75, 5.0 / 60, 7.5 / 60},
		{"tertiary mesh", "53394611", 35.675, 139.7625, 0.5 / 60, 0.75 / 60},
		{"half mesh NW quadrant", "533946113", 35.679166666666667, 139.7625, 0.25 / 60, 0.375 / 60},
		{"quarter mesh SE quadrant", "5339461132", 35.679166666666667, 139.765625, 0.125 / 60, 0.1875 / 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bound, err := mesh.CellBounds(tc.code)
			require.NoError(t, err)

			assert.InDelta(t, tc.minLat, bound.Min.Lat(), 1e-9)
			assert.InDelta(t, tc.minLon, bound.Min.Lon(), 1e-9)
			assert.InDelta(t, tc.minLat+tc.height, bound.Max.Lat(), 1e-9)
			assert.InDelta(t, tc.minLon+tc.width, bound.Max.Lon(), 1e-9)
		})
	}

	t.Run("decoded center sits inside the cell", func(t *testing.T) {
		t.Parallel()

		bound, err := mesh.CellBounds("53394611")
		require.NoError(t, err)

		center, err := mesh.DecodeCenter("53394611")
		require.NoError(t, err)

		assert.InDelta(t, (bound.Min.Lat()+bound.Max.Lat())/2, center.Latitude, 1e-9)
		assert.InDelta(t, (bound.Min.Lon()+bound.Max.Lon())/2, center.Longitude, 1e-9)
	})

	t.Run("rejects unknown length", func(t *testing.T) {
		t.Parallel()

		_, err := mesh.CellBounds("53394")
		require.ErrorIs(t, err, mesh.ErrMeshCodeLength)
	})

	t.Run("rejects non-digit characters", func(t *testing.T) {
		t.Parallel()

		_, err := mesh.CellBounds("53x9")
		require.ErrorIs(t, err, mesh.ErrMeshCodeDigit)
	})

	t.Run("rejects quadrant digit outside 1-4", func(t *testing.T) {
		t.Parallel()

		_, err := mesh.CellBounds("533946115")
		require.ErrorIs(t, err, mesh.ErrMeshCodeQuadrant)

		_, err = mesh.CellBounds("533946110")
		require.ErrorIs(t, err, mesh.ErrMeshCodeQuadrant)
	})
}
