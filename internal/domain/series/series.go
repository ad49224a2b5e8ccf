// Package series turns player-season rows into per-player, per-metric time
// series ordered by season.
package series

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/laglens/internal/domain/model"
	"github.com/okian/laglens/internal/domain/season"
	"github.com/okian/laglens/internal/domain/types"
)

// MetricSeries is one player's observations of one metric, season ascending.
// Seasons and Values have equal length; missing observations are NaN.
type MetricSeries struct {
	Player  string
	Metric  types.Metric
	Seasons []string
	Values  []float64
}

// Len returns the number of seasons in the series.
func (s MetricSeries) Len() int { return len(s.Values) }

// Career holds every requested metric series for one player.
type Career struct {
	Player string // player key (slug, or name when no slug exists)
	Name   string
	Series map[types.Metric]MetricSeries
}

// Seasons returns the number of seasons in the career.
func (c Career) Seasons() int {
	for _, s := range c.Series {
		return s.Len()
	}
	return 0
}

// Labels returns the season labels of the career, ascending.
func (c Career) Labels() []string {
	for _, s := range c.Series {
		return s.Seasons
	}
	return nil
}

// Extract groups rows by player key and builds one season-ordered series per
// metric. Rows are expected to be deduplicated to one per (player, season);
// callers run dedupe first. Careers are returned sorted by player key.
func Extract(rows []model.PlayerSeason, metrics []types.Metric) []Career {
	byPlayer := make(map[string][]model.PlayerSeason)
	var keys []string
	for _, r := range rows {
		k := r.Key()
		if _, ok := byPlayer[k]; !ok {
			keys = append(keys, k)
		}
		byPlayer[k] = append(byPlayer[k], r)
	}
	sort.Strings(keys)

	out := make([]Career, 0, len(keys))
	for _, k := range keys {
		group := byPlayer[k]
		sort.SliceStable(group, func(i, j int) bool { return season.Less(group[i].Season, group[j].Season) })

		seasons := make([]string, len(group))
		for i, r := range group {
			seasons[i] = r.Season
		}

		c := Career{Player: k, Name: group[0].Player, Series: make(map[types.Metric]MetricSeries, len(metrics))}
		for _, m := range metrics {
			values := make([]float64, len(group))
			for i, r := range group {
				values[i] = r.Value(m)
			}
			c.Series[m] = MetricSeries{Player: k, Metric: m, Seasons: seasons, Values: values}
		}
		out = append(out, c)
	}
	return out
}

// Consecutive returns ErrSeasonGap unless every label follows the previous
// one by exactly one season.
func Consecutive(labels []string) error {
	prev := 0
	for i, l := range labels {
		_, end, err := season.Parse(l)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSeasonGap, err)
		}
		if i > 0 && end != prev+1 {
			return fmt.Errorf("%w: %s follows %s", ErrSeasonGap, l, labels[i-1])
		}
		prev = end
	}
	return nil
}

// Align checks that a and b cover the same consecutive seasons in the same
// order and returns their values ready for correlation.
func Align(a, b MetricSeries) ([]float64, []float64, error) {
	if len(a.Seasons) != len(b.Seasons) || len(a.Values) != len(a.Seasons) || len(b.Values) != len(b.Seasons) {
		return nil, nil, fmt.Errorf("%w: %s has %d seasons, %s has %d",
			ErrSeasonMismatch, a.Metric, len(a.Seasons), b.Metric, len(b.Seasons))
	}
	for i := range a.Seasons {
		if a.Seasons[i] != b.Seasons[i] {
			return nil, nil, fmt.Errorf("%w: index %d is %s for %s and %s for %s",
				ErrSeasonMismatch, i, a.Seasons[i], a.Metric, b.Seasons[i], b.Metric)
		}
	}
	if err := Consecutive(a.Seasons); err != nil {
		return nil, nil, err
	}
	return a.Values, b.Values, nil
}

// Complete reports whether values has no NaN entries.
func Complete(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}
