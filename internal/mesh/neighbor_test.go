package mesh_test

import (
	"testing"

	"github.com/paper-plateau/meshgrid/internal/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandNeighbors(t *testing.T) {
	t.Parallel()

	t.Run("interior cell yields nine unique codes", func(t *testing.T) {
		t.Parallel()

		neighbors, err := mesh.ExpandNeighbors("53394611")
		require.NoError(t, err)

		assert.Len(t, neighbors, 9)
		assert.Contains(t, neighbors, "53394611")

		seen := make(map[string]bool, len(neighbors))
		for _, code := range neighbors {
			assert.False(t, seen[code], "duplicate neighbor %q", code)
			seen[code] = true
		}
	})

	t.Run("row-major order, south-west first", func(t *testing.T) {
		t.Parallel()

		neighbors, err := mesh.ExpandNeighbors("53394655")
		require.NoError(t, err)

		want := []string{
			"53394644", "53394645", "53394646",
			"53394654", "53394655", "53394656",
			"53394664", "53394665", "53394666",
		}
		assert.Equal(t, want, neighbors)
	})

	t.Run("borrow across the secondary boundary", func(t *testing.T) {
		t.Parallel()

		// t=0: stepping south borrows one from r and lands on t=9.
		neighbors, err := mesh.ExpandNeighbors("53394601")
		require.NoError(t, err)

		assert.Len(t, neighbors, 9)
		assert.Contains(t, neighbors, "53393690")
		assert.Contains(t, neighbors, "53393691")
		assert.Contains(t, neighbors, "53393692")
	})

	t.Run("carry across the secondary boundary", func(t *testing.T) {
		t.Parallel()

		// u=9: stepping east carries one into s and lands on u=0.
		neighbors, err := mesh.ExpandNeighbors("53394619")
		require.NoError(t, err)

		assert.Len(t, neighbors, 9)
		assert.Contains(t, neighbors, "53394700")
		assert.Contains(t, neighbors, "53394710")
		assert.Contains(t, neighbors, "53394720")
	})

	t.Run("candidates past the primary mesh edge are dropped", func(t *testing.T) {
		t.Parallel()

		// r=0, t=0: the southern row would need r=-1 and is skipped.
		neighbors, err := mesh.ExpandNeighbors("53390305")
		require.NoError(t, err)

		assert.Len(t, neighbors, 6)
		assert.Contains(t, neighbors, "53390305")
		for _, code := range neighbors {
			assert.True(t, mesh.IsValid3rd(code), "neighbor %q must stay in range", code)
		}
	})

	t.Run("corner cell keeps only the inner quadrant", func(t *testing.T) {
		t.Parallel()

		// SW corner of a primary mesh: both the southern row and the
		// western column are dropped.
		neighbors, err := mesh.ExpandNeighbors("53390000")
		require.NoError(t, err)

		want := []string{"53390000", "53390001", "53390010", "53390011"}
		assert.Equal(t, want, neighbors)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		t.Parallel()

		neighbors, err := mesh.ExpandNeighbors("533946")
		require.Nil(t, neighbors)
		require.Error(t, err)
		require.ErrorIs(t, err, mesh.ErrMeshCodeLength)
		assert.ErrorContains(t, err, "expected 8 digits, got 6")
	})

	t.Run("rejects non-digit characters", func(t *testing.T) {
		t.Parallel()

		neighbors, err := mesh.ExpandNeighbors("5339461x")
		require.Nil(t, neighbors)
		require.ErrorIs(t, err, mesh.ErrMeshCodeDigit)
	})
}
