// Package align forces correlation profiles of any length onto a fixed
// nine-slot window (lags -4..+4) so profiles from careers of different
// lengths can be summed slot by slot.
package align

// Width is the fixed number of lag slots in a padded profile.
const Width = 9

// Padded is a correlation profile on lags -4..+4; index i holds lag i-4.
type Padded [Width]float64

// Lags returns the lag value of each slot of a Padded profile.
func Lags() [Width]int {
	var out [Width]int
	for i := range out {
		out[i] = i - Width/2
	}
	return out
}

// Pad maps a profile of any length onto Width slots.
//
// Shorter profiles are zero-padded. Odd lengths get the same number of zeros
// on each side; even lengths get floor((Width-n)/2) zeros before the data and
// one more after it.
//
// Longer profiles are cropped to a contiguous window starting at (n-Width)/2
// for odd n and (n-Width-1)/2 for even n.
//
// The even-length rules are a fixed convention; changing them shifts every
// even-length career by one slot in the population histograms.
func Pad(profile []float64) Padded {
	var out Padded
	n := len(profile)

	switch {
	case n == Width:
		copy(out[:], profile)
	case n < Width:
		before := (Width - n) / 2
		copy(out[before:], profile)
	default:
		start := (n - Width) / 2
		if n%2 == 0 {
			start = (n - Width - 1) / 2
		}
		copy(out[:], profile[start:start+Width])
	}
	return out
}
