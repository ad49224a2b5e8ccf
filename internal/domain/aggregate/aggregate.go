// Package aggregate sums padded correlation profiles across players into a
// population lag-density histogram per ordered metric pair.
package aggregate

import (
	"sort"

	"github.com/okian/laglens/internal/domain/align"
	"github.com/okian/laglens/internal/domain/types"
)

// Histogram is the slot-wise sum of padded profiles; index i holds lag i-4.
type Histogram = align.Padded

// Sum adds profiles slot by slot. An empty input yields the zero histogram.
func Sum(profiles []align.Padded) Histogram {
	var out Histogram
	for _, p := range profiles {
		for i, v := range p {
			out[i] += v
		}
	}
	return out
}

// pairStats is the running state for one ordered metric pair.
type pairStats struct {
	histogram Histogram
	lagCounts map[int]int
	players   int
	skipped   int
}

// Population accumulates results for every metric pair of an analysis run.
// It is not safe for concurrent use.
type Population struct {
	order []types.Pair
	pairs map[types.Pair]*pairStats
}

// NewPopulation creates an empty population, pre-registering pairs so they
// appear in reports even when no player contributes.
func NewPopulation(pairs ...types.Pair) *Population {
	p := &Population{pairs: make(map[types.Pair]*pairStats, len(pairs))}
	for _, pair := range pairs {
		p.stats(pair)
	}
	return p
}

func (p *Population) stats(pair types.Pair) *pairStats {
	s, ok := p.pairs[pair]
	if !ok {
		s = &pairStats{lagCounts: make(map[int]int)}
		p.pairs[pair] = s
		p.order = append(p.order, pair)
	}
	return s
}

// Add records one player's contribution to pair: the padded normalized
// profile and the raw peak lag.
func (p *Population) Add(pair types.Pair, profile align.Padded, peakLag int) {
	s := p.stats(pair)
	for i, v := range profile {
		s.histogram[i] += v
	}
	s.lagCounts[peakLag]++
	s.players++
}

// Skip records a player that could not contribute to pair.
func (p *Population) Skip(pair types.Pair) {
	p.stats(pair).skipped++
}

// Pairs returns pairs in registration order.
func (p *Population) Pairs() []types.Pair {
	out := make([]types.Pair, len(p.order))
	copy(out, p.order)
	return out
}

// Histogram returns the accumulated histogram for pair.
func (p *Population) Histogram(pair types.Pair) Histogram {
	if s, ok := p.pairs[pair]; ok {
		return s.histogram
	}
	return Histogram{}
}

// Players returns how many players contributed to pair.
func (p *Population) Players(pair types.Pair) int {
	if s, ok := p.pairs[pair]; ok {
		return s.players
	}
	return 0
}

// Skipped returns how many players were skipped for pair.
func (p *Population) Skipped(pair types.Pair) int {
	if s, ok := p.pairs[pair]; ok {
		return s.skipped
	}
	return 0
}

// LagCount is the number of players whose peak lag equals Lag.
type LagCount struct {
	Lag   int
	Count int
}

// LagCounts returns the peak-lag distribution for pair, ordered by lag.
func (p *Population) LagCounts(pair types.Pair) []LagCount {
	s, ok := p.pairs[pair]
	if !ok {
		return nil
	}
	out := make([]LagCount, 0, len(s.lagCounts))
	for lag, n := range s.lagCounts {
		out = append(out, LagCount{Lag: lag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lag < out[j].Lag })
	return out
}

// Involving returns the pairs whose first metric is m, in registration order.
func (p *Population) Involving(m types.Metric) []types.Pair {
	var out []types.Pair
	for _, pair := range p.order {
		if pair.First == m {
			out = append(out, pair)
		}
	}
	return out
}
