// Package dataset joins scraped Basketball-Reference tables with the optional
// salary and ESPN RPM sources into one row per (player, season, team), and
// derives the columns the lead/lag analysis needs.
package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/laglens/internal/domain/model"
	"github.com/okian/laglens/internal/domain/season"
	"github.com/okian/laglens/internal/domain/types"
)

// Source column names.
const (
	ColOffRating types.Metric = "PER100_ORtg"
	ColDefRating types.Metric = "PER100_DRtg"
	ColORPM      types.Metric = "ORPM"
	ColDRPM      types.Metric = "DRPM"
)

// Record is one row of an auxiliary CSV source keyed by header name.
type Record map[string]string

// Sources are the inputs of Build. Only Tables is required.
type Sources struct {
	// Tables are merged in order; later tables only add columns the
	// earlier ones lack.
	Tables []model.Table
	// Salaries has columns bbref_id, season (end year), salary, salary_prop_cap.
	Salaries []Record
	// RPM has columns espn_link, season (end year), orpm, drpm, rpm, wins.
	RPM []Record
	// Links has columns bbref_id, espn_link.
	Links []Record
}

// Stats summarizes a Build.
type Stats struct {
	Rows          int
	SalaryMatched int
	RPMMatched    int
}

type rowKey struct {
	player string
	season string
	team   string
}

type seasonKey struct {
	id     string
	season string
}

// Build merges and enriches the sources.
func Build(src Sources) ([]model.PlayerSeason, Stats, error) {
	if len(src.Tables) == 0 {
		return nil, Stats{}, ErrNoTables
	}

	rows := merge(src.Tables)
	normalizePositions(rows)

	var stats Stats
	var err error
	if stats.SalaryMatched, err = joinSalaries(rows, src.Salaries); err != nil {
		return nil, Stats{}, err
	}
	if stats.RPMMatched, err = joinRPM(rows, src.RPM, src.Links); err != nil {
		return nil, Stats{}, err
	}
	deriveNetRating(rows)
	setInitialPositions(rows)

	stats.Rows = len(rows)
	return rows, stats, nil
}

func merge(tables []model.Table) []model.PlayerSeason {
	index := make(map[rowKey]int)
	var out []model.PlayerSeason
	for _, t := range tables {
		for _, r := range t.Rows {
			k := rowKey{player: r.Key(), season: r.Season, team: r.Team}
			i, ok := index[k]
			if !ok {
				index[k] = len(out)
				out = append(out, r.Clone())
				continue
			}
			dst := &out[i]
			for m, v := range r.Stats {
				if _, exists := dst.Stats[m]; !exists {
					dst.Set(m, v)
				}
			}
			if dst.Position == "" {
				dst.Position = r.Position
			}
			if dst.Age == 0 {
				dst.Age = r.Age
			}
			if dst.PlayerID == "" {
				dst.PlayerID = r.PlayerID
			}
		}
	}
	return out
}

// normalizePositions keeps the first listed position ("SF-PF" -> "SF").
func normalizePositions(rows []model.PlayerSeason) {
	for i := range rows {
		pos, _, _ := strings.Cut(rows[i].Position, "-")
		rows[i].Position = strings.TrimSpace(pos)
	}
}

func joinSalaries(rows []model.PlayerSeason, salaries []Record) (int, error) {
	if len(salaries) == 0 {
		return 0, nil
	}
	if err := require(salaries[0], "bbref_id", "season", "salary"); err != nil {
		return 0, fmt.Errorf("salary source: %w", err)
	}

	type salary struct{ amount, propCap float64 }
	bySeason := make(map[seasonKey]salary, len(salaries))
	for _, rec := range salaries {
		label, err := season.Normalize(rec["season"])
		if err != nil {
			// Rows without a season carry no usable salary.
			continue
		}
		bySeason[seasonKey{id: rec["bbref_id"], season: label}] = salary{
			amount:  parseFloat(rec["salary"]),
			propCap: parseFloat(rec["salary_prop_cap"]),
		}
	}

	matched := 0
	for i := range rows {
		s, ok := bySeason[seasonKey{id: rows[i].PlayerID, season: rows[i].Season}]
		if !ok {
			continue
		}
		rows[i].Set(types.Salary, s.amount)
		rows[i].Set(types.SalaryPropCap, s.propCap)
		matched++
	}
	return matched, nil
}

// rpmColumns maps source column names to metrics, in output order.
var rpmColumns = []struct {
	col    string
	metric types.Metric
}{
	{"orpm", ColORPM},
	{"drpm", ColDRPM},
	{"rpm", types.RPM},
	{"wins", types.Wins},
}

func joinRPM(rows []model.PlayerSeason, rpm, links []Record) (int, error) {
	if len(rpm) == 0 || len(links) == 0 {
		return 0, nil
	}
	if err := require(rpm[0], "espn_link", "season"); err != nil {
		return 0, fmt.Errorf("rpm source: %w", err)
	}
	if err := require(links[0], "bbref_id", "espn_link"); err != nil {
		return 0, fmt.Errorf("player link source: %w", err)
	}

	// Traded players appear once per team in the ESPN data; average them to
	// one value per season.
	type acc struct {
		sums   [4]float64
		counts [4]int
	}
	bySeason := make(map[seasonKey]*acc)
	for _, rec := range rpm {
		label, err := season.Normalize(rec["season"])
		if err != nil {
			continue
		}
		k := seasonKey{id: rec["espn_link"], season: label}
		a, ok := bySeason[k]
		if !ok {
			a = &acc{}
			bySeason[k] = a
		}
		for i, c := range rpmColumns {
			if v := parseFloat(rec[c.col]); !math.IsNaN(v) {
				a.sums[i] += v
				a.counts[i]++
			}
		}
	}

	linkOf := make(map[string]string, len(links))
	for _, rec := range links {
		if rec["bbref_id"] != "" && rec["espn_link"] != "" {
			linkOf[rec["bbref_id"]] = rec["espn_link"]
		}
	}

	matched := 0
	for i := range rows {
		link, ok := linkOf[rows[i].PlayerID]
		if !ok {
			continue
		}
		a, ok := bySeason[seasonKey{id: link, season: rows[i].Season}]
		if !ok {
			continue
		}
		for j, c := range rpmColumns {
			if a.counts[j] > 0 {
				rows[i].Set(c.metric, a.sums[j]/float64(a.counts[j]))
			}
		}
		matched++
	}
	return matched, nil
}

func deriveNetRating(rows []model.PlayerSeason) {
	for i := range rows {
		off := rows[i].Value(ColOffRating)
		def := rows[i].Value(ColDefRating)
		if math.IsNaN(off) || math.IsNaN(def) {
			continue
		}
		rows[i].Set(types.NetRating, off-def)
	}
}

// setInitialPositions records each player's position in their earliest
// season (the rookie season, or 2004-2005 for veterans).
func setInitialPositions(rows []model.PlayerSeason) {
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return season.Less(rows[order[a]].Season, rows[order[b]].Season) })

	first := make(map[string]string)
	for _, i := range order {
		k := rows[i].Key()
		if _, ok := first[k]; !ok && rows[i].Position != "" {
			first[k] = rows[i].Position
		}
	}
	for i := range rows {
		rows[i].InitialPosition = first[rows[i].Key()]
	}
}

func require(rec Record, cols ...string) error {
	for _, c := range cols {
		if _, ok := rec[c]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	return nil
}

// parseFloat returns NaN for blank or malformed cells.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
