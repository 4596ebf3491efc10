package plot

// Point is one (x, y) coordinate pair.
type Point struct {
	X float64
	Y float64
}

// Series is an ordered sequence of points for one sample. It is built
// once from a parsed report field and never mutated afterwards.
type Series []Point

// ReshapeXY converts the column-oriented trace layout used by charting
// libraries (parallel x and y arrays) into an ordered row-oriented
// series. Mismatched lengths truncate to the shorter array: the arrays
// are parallel by construction, so trailing excess is garbage rather
// than data.
func ReshapeXY(x, y []float64) Series {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}

	s := make(Series, 0, n)
	for i := 0; i < n; i++ {
		s = append(s, Point{X: x[i], Y: y[i]})
	}

	return s
}

// XY splits the series back into parallel coordinate arrays.
func (s Series) XY() ([]float64, []float64) {
	xs := make([]float64, len(s))
	ys := make([]float64, len(s))

	for i, p := range s {
		xs[i] = p.X
		ys[i] = p.Y
	}

	return xs, ys
}
