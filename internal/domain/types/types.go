// Package types contains common types used across the application
package types

import "strings"

// Metric names a numeric player-season column, e.g. "VORP" or "NET_RTG".
type Metric string

// Default metrics compared against each other in an analysis run.
const (
	NetRating     Metric = "NET_RTG"
	BPM           Metric = "BPM"
	VORP          Metric = "VORP"
	MinutesPlayed Metric = "MP"
	RPM           Metric = "RPM"
	Wins          Metric = "WINS"
	Salary        Metric = "SALARY"
	SalaryPropCap Metric = "SALARY_PROP_CAP"
)

// DefaultMetrics returns the metric list used when none is configured.
func DefaultMetrics() []Metric {
	return []Metric{NetRating, BPM, VORP, MinutesPlayed, RPM, Wins, Salary, SalaryPropCap}
}

// ParseMetrics upper-cases and trims names, dropping empties and duplicates.
func ParseMetrics(names []string) []Metric {
	seen := make(map[Metric]struct{}, len(names))
	out := make([]Metric, 0, len(names))
	for _, n := range names {
		m := Metric(strings.ToUpper(strings.TrimSpace(n)))
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// Pair is an ordered metric pair. It is directional: {A, B} and {B, A} are
// distinct keys because the correlation is not symmetric in its arguments.
type Pair struct {
	First  Metric
	Second Metric
}

// String renders the pair as "FIRST_vs_SECOND".
func (p Pair) String() string {
	return string(p.First) + "_vs_" + string(p.Second)
}

// Title renders the pair for chart titles.
func (p Pair) Title() string {
	return string(p.First) + " vs. " + string(p.Second)
}

// Pairs enumerates every ordered pair of distinct metrics, in input order.
func Pairs(metrics []Metric) []Pair {
	out := make([]Pair, 0, len(metrics)*len(metrics))
	for _, a := range metrics {
		for _, b := range metrics {
			if a == b {
				continue
			}
			out = append(out, Pair{First: a, Second: b})
		}
	}
	return out
}
