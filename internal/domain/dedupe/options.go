// Package dedupe removes partial-season rows left behind by mid-season trades.
package dedupe

// Option applies a configuration option to the tradeDeduper.
type Option func(*tradeDeduper)

// WithTotalTeam adds a team code that marks the season-aggregate row, on top
// of TOT and the "2TM"-style counts. Empty values are ignored.
func WithTotalTeam(team string) Option {
	return func(d *tradeDeduper) {
		if team != "" {
			d.totalTeam = team
		}
	}
}

// WithGroupByName groups rows by display name instead of player slug. Name
// grouping merges distinct players who share a name, so it exists only to
// reproduce older outputs.
func WithGroupByName(byName bool) Option {
	return func(d *tradeDeduper) {
		d.byName = byName
	}
}
