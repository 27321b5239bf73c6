package algo

import "math"

// GeomSpace returns n numbers spaced evenly on a log scale from start to stop,
// both included. Start and stop must be positive; otherwise nil is returned.
func GeomSpace(start, stop float64, n int) []float64 {
	if n <= 0 || start <= 0 || stop <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}

	lo, hi := math.Log10(start), math.Log10(stop)
	step := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range n {
		out[i] = math.Pow(10, lo+float64(i)*step)
	}
	out[0], out[n-1] = start, stop
	return out
}
