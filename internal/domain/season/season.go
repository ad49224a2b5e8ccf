// Package season formats and orders NBA season labels such as "2004-2005".
package season

import (
	"fmt"
	"strconv"
	"strings"
)

// Label returns the "YYYY-YYYY" label of the season ending in endYear.
func Label(endYear int) string {
	return fmt.Sprintf("%d-%d", endYear-1, endYear)
}

// Parse splits a label into its start and end years. A bare end year
// ("2005") is accepted too and treated as Label(2005).
func Parse(label string) (start, end int, err error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, 0, fmt.Errorf("%w: empty label", ErrInvalidLabel)
	}

	left, right, found := strings.Cut(label, "-")
	if !found {
		// Some sources store seasons as floats ("2005.0").
		f, perr := strconv.ParseFloat(label, 64)
		if perr != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
		}
		end = int(f)
		return end - 1, end, nil
	}

	start, err = strconv.Atoi(left)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	end, err = strconv.Atoi(right)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	if end != start+1 {
		return 0, 0, fmt.Errorf("%w: %q does not span one year", ErrInvalidLabel, label)
	}
	return start, end, nil
}

// Normalize converts any accepted form into the canonical "YYYY-YYYY" label.
func Normalize(label string) (string, error) {
	_, end, err := Parse(label)
	if err != nil {
		return "", err
	}
	return Label(end), nil
}

// Range returns labels for end years from..to inclusive.
func Range(from, to int) []string {
	if to < from {
		return nil
	}
	out := make([]string, 0, to-from+1)
	for y := from; y <= to; y++ {
		out = append(out, Label(y))
	}
	return out
}

// Less orders labels chronologically. Unparseable labels sort last, by text.
func Less(a, b string) bool {
	_, ea, errA := Parse(a)
	_, eb, errB := Parse(b)
	switch {
	case errA == nil && errB == nil:
		return ea < eb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
