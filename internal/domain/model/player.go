// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strings"

	"github.com/okian/laglens/internal/domain/types"
)

// TotalTeam marks the season-aggregate row Basketball-Reference emits for
// players who appeared for more than one team. Newer pages label the same
// row with the team count instead ("2TM", "3TM").
const TotalTeam = "TOT"

// IsSeasonTotal reports whether team is a season-aggregate label: TotalTeam
// or a team count such as "2TM".
func IsSeasonTotal(team string) bool {
	if team == TotalTeam {
		return true
	}
	n, ok := strings.CutSuffix(team, "TM")
	if !ok || n == "" {
		return false
	}
	for _, c := range n {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// PlayerSeason is one statistics row for a (player, season, team) triple.
type PlayerSeason struct {
	PlayerID        string // Basketball-Reference slug, e.g. "jamesle01"
	Player          string // display name
	Season          string // "YYYY-YYYY"
	Team            string // team abbreviation, TOT or 2TM-style count
	Position        string
	InitialPosition string
	Age             int
	Stats           map[types.Metric]float64
}

// Key identifies the player across seasons. The slug is preferred because
// display names collide (two different Tony Mitchells played in 2013-2014).
func (p PlayerSeason) Key() string {
	if p.PlayerID != "" {
		return p.PlayerID
	}
	return p.Player
}

// Value returns the stat for m, or NaN when the row has no such column.
func (p PlayerSeason) Value(m types.Metric) float64 {
	v, ok := p.Stats[m]
	if !ok {
		return math.NaN()
	}
	return v
}

// Set stores a stat, allocating the map on first use.
func (p *PlayerSeason) Set(m types.Metric, v float64) {
	if p.Stats == nil {
		p.Stats = make(map[types.Metric]float64)
	}
	p.Stats[m] = v
}

// Clone returns a deep copy so joins can enrich rows without aliasing.
func (p PlayerSeason) Clone() PlayerSeason {
	out := p
	out.Stats = make(map[types.Metric]float64, len(p.Stats))
	for k, v := range p.Stats {
		out.Stats[k] = v
	}
	return out
}

// Table is a named set of player-season rows plus the ordered list of
// numeric columns they carry.
type Table struct {
	Name    string
	Columns []types.Metric
	Rows    []PlayerSeason
}
