// v0
// welford.go
package checks

// WelfordAccumulator computes a running mean and sample variance in a
// single pass without catastrophic cancellation, per Welford's
// algorithm. Used by the sigma window check over a tumbling window of
// numeric observations.
type WelfordAccumulator struct {
	count int64
	mean  float64
	m2    float64
}

// Add folds a new value into the accumulator.
func (w *WelfordAccumulator) Add(x float64) {
	w.count++
	delta := x - w.mean
	w.mean += delta / float64(w.count)
	delta2 := x - w.mean
	w.m2 += delta * delta2
}

// Count returns the number of values folded in.
func (w *WelfordAccumulator) Count() int64 { return w.count }

// Mean returns the running mean.
func (w *WelfordAccumulator) Mean() float64 { return w.mean }

// Variance returns the sample variance (Bessel-corrected). Returns 0
// for fewer than 2 samples.
func (w *WelfordAccumulator) Variance() float64 {
	if w.count < 2 {
		return 0
	}
	return w.m2 / float64(w.count-1)
}
