// Package metrics maintains sliding windows of chart-ready samples derived
// from snapshots. Aggregators consume DataUpdate events and expose their
// windows as (position, value) points that chart widgets can plot directly.
package metrics

// Point is one sample positioned on a chart's x axis.
type Point struct {
	X float64
	Y float64
}

// Window is a bounded FIFO of points. Positions are always the contiguous
// run 0..len-1 with the oldest sample at 0: when a push would exceed
// capacity the oldest point is evicted and every survivor shifts left by
// one before the new sample lands at the end.
type Window struct {
	capacity int
	points   []Point
}

// NewWindow returns a window holding at most capacity points. Capacities
// below one are clamped to one.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{capacity: capacity, points: make([]Point, 0, capacity)}
}

// Push appends value as the newest sample, evicting the oldest if the
// window is full.
func (w *Window) Push(value float64) {
	if len(w.points) == w.capacity {
		copy(w.points, w.points[1:])
		w.points = w.points[:len(w.points)-1]
		for i := range w.points {
			w.points[i].X--
		}
	}
	w.points = append(w.points, Point{X: float64(len(w.points)), Y: value})
}

// Points returns the window contents oldest first. The slice aliases the
// window's storage and is only valid until the next Push.
func (w *Window) Points() []Point {
	return w.points
}

// Len reports how many samples the window currently holds.
func (w *Window) Len() int {
	return len(w.points)
}

// Cap reports the window's capacity.
func (w *Window) Cap() int {
	return w.capacity
}

// Last returns the newest sample, if any.
func (w *Window) Last() (Point, bool) {
	if len(w.points) == 0 {
		return Point{}, false
	}
	return w.points[len(w.points)-1], true
}

// Values returns just the y values oldest first, for widgets that compute
// their own x placement.
func (w *Window) Values() []float64 {
	out := make([]float64, len(w.points))
	for i, p := range w.points {
		out[i] = p.Y
	}
	return out
}
