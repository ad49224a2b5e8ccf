// Package dedupe removes partial-season rows left behind by mid-season trades.
package dedupe

import (
	"context"
	"sync/atomic"

	"github.com/okian/laglens/internal/domain/model"
)

// Deduper reduces player-season rows to one row per (player, season).
type Deduper interface {
	// Dedupe keeps rows whose (player, season) group has a single row, and
	// the season-aggregate row of larger groups. Groups with several rows and
	// no aggregate row are dropped entirely. Input order is preserved.
	Dedupe(ctx context.Context, rows []model.PlayerSeason) []model.PlayerSeason

	// Dropped returns the total number of rows removed so far.
	Dropped() int64
}

type groupKey struct {
	player string
	season string
}

type tradeDeduper struct {
	totalTeam string
	byName    bool
	dropped   atomic.Int64
}

// NewTradeDeduper creates a Deduper configured by opts.
func NewTradeDeduper(opts ...Option) Deduper {
	d := &tradeDeduper{
		totalTeam: model.TotalTeam,
	}

	// Apply all options
	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *tradeDeduper) key(r model.PlayerSeason) groupKey {
	player := r.Key()
	if d.byName {
		player = r.Player
	}
	return groupKey{player: player, season: r.Season}
}

func (d *tradeDeduper) isTotal(team string) bool {
	return team == d.totalTeam || model.IsSeasonTotal(team)
}

// Dedupe implements Deduper.
func (d *tradeDeduper) Dedupe(_ context.Context, rows []model.PlayerSeason) []model.PlayerSeason {
	sizes := make(map[groupKey]int, len(rows))
	for _, r := range rows {
		sizes[d.key(r)]++
	}

	out := make([]model.PlayerSeason, 0, len(sizes))
	for _, r := range rows {
		if sizes[d.key(r)] <= 1 || d.isTotal(r.Team) {
			out = append(out, r)
		}
	}

	d.dropped.Add(int64(len(rows) - len(out)))
	return out
}

// Dropped implements Deduper.
func (d *tradeDeduper) Dropped() int64 {
	return d.dropped.Load()
}
