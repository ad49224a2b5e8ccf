// Package xcorr computes discrete cross-correlations between two equal-length
// season series and derives the peak lag and a normalized lag profile.
//
// Lag convention: the entry at lag k is sum_n a[n+k]*b[n]. A positive lag
// means b leads a by k seasons (a repeats what b did k seasons earlier); a
// negative lag means a leads b.
package xcorr

import (
	"fmt"
	"math"
)

// Window is the number of central lags kept by NormalizedProfile (lags -4..+4).
const Window = 9

// halfWindow is the number of lags kept on each side of zero.
const halfWindow = Window / 2

func validate(a, b []float64) error {
	if len(a) == 0 || len(a) != len(b) {
		return fmt.Errorf("%w: got %d and %d", ErrInvalidLength, len(a), len(b))
	}
	return nil
}

// Correlate returns the full linear cross-correlation of a and b. The result
// has 2N-1 entries; index i holds lag i-(N-1).
func Correlate(a, b []float64) ([]float64, error) {
	if err := validate(a, b); err != nil {
		return nil, err
	}
	n := len(a)
	out := make([]float64, 2*n-1)
	for i := range out {
		k := i - (n - 1)
		var sum float64
		// Only indices where both a[j+k] and b[j] exist contribute.
		lo := max(0, -k)
		hi := min(n, n-k)
		for j := lo; j < hi; j++ {
			sum += a[j+k] * b[j]
		}
		out[i] = sum
	}
	return out, nil
}

// Lags returns the lag value of every index of a full correlation of
// length-n series: -(n-1), ..., n-1.
func Lags(n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, 2*n-1)
	for i := range out {
		out[i] = i - (n - 1)
	}
	return out
}

// PeakLag returns the lag in [-(N-1), N-1] at which the raw correlation has
// the largest magnitude. Ties go to the lowest lag.
func PeakLag(a, b []float64) (int, error) {
	corr, err := Correlate(a, b)
	if err != nil {
		return 0, err
	}
	best := 0
	bestMag := math.Inf(-1)
	for i, v := range corr {
		// Strict comparison keeps the first (lowest-lag) maximum.
		if mag := math.Abs(v); mag > bestMag {
			best, bestMag = i, mag
		}
	}
	return best - (len(a) - 1), nil
}

// NormalizedProfile returns the absolute correlation, restricted to lags
// -4..+4 when N > 4, divided by its own sum. Entries that come out NaN or
// infinite are replaced by 0, so an all-zero input yields an all-zero profile.
// Profiles for N <= 4 have length 2N-1; longer inputs always give Window.
func NormalizedProfile(a, b []float64) ([]float64, error) {
	corr, err := Correlate(a, b)
	if err != nil {
		return nil, err
	}

	selected := corr
	if n := len(a); n > halfWindow {
		center := n - 1
		selected = corr[center-halfWindow : center+halfWindow+1]
	}

	out := make([]float64, len(selected))
	var sum float64
	for i, v := range selected {
		out[i] = math.Abs(v)
		sum += out[i]
	}
	for i := range out {
		v := out[i] / sum
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		out[i] = v
	}
	return out, nil
}
