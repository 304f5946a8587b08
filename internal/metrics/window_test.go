package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowGrowsUntilCapacity(t *testing.T) {
	w := NewWindow(5)
	for i := 0; i < 3; i++ {
		w.Push(float64(i * 10))
	}

	require.Equal(t, 3, w.Len())
	assert.Equal(t, []Point{{0, 0}, {1, 10}, {2, 20}}, w.Points())
}

func TestWindowEvictsOldest(t *testing.T) {
	w := NewWindow(3)
	for i := 1; i <= 5; i++ {
		w.Push(float64(i))
	}

	// Only the newest three survive, re-anchored at position zero.
	assert.Equal(t, []Point{{0, 3}, {1, 4}, {2, 5}}, w.Points())
}

func TestWindowLenNeverExceedsCapacity(t *testing.T) {
	w := NewWindow(4)
	for i := 0; i < 100; i++ {
		w.Push(float64(i))
		assert.LessOrEqual(t, w.Len(), 4)
	}
}

func TestWindowPositionsStayContiguous(t *testing.T) {
	w := NewWindow(7)
	for i := 0; i < 30; i++ {
		w.Push(float64(i))
		for j, p := range w.Points() {
			require.Equal(t, float64(j), p.X, "positions must be 0..len-1 after every push")
		}
	}
}

func TestWindowLast(t *testing.T) {
	w := NewWindow(2)

	_, ok := w.Last()
	assert.False(t, ok)

	w.Push(1)
	w.Push(2)
	w.Push(3)
	last, ok := w.Last()
	require.True(t, ok)
	assert.Equal(t, Point{X: 1, Y: 3}, last)
}

func TestWindowValues(t *testing.T) {
	w := NewWindow(3)
	w.Push(5)
	w.Push(7)
	assert.Equal(t, []float64{5, 7}, w.Values())
}

func TestWindowClampsCapacity(t *testing.T) {
	w := NewWindow(0)
	w.Push(1)
	w.Push(2)
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, []Point{{0, 2}}, w.Points())
}
