package bbref

import (
	"fmt"
	"strings"

	"github.com/okian/laglens/internal/domain/types"
)

// Kind names a season summary table on Basketball-Reference.
type Kind string

// Supported table kinds.
const (
	Totals   Kind = "totals"
	PerPoss  Kind = "per_poss"
	Advanced Kind = "advanced"
)

// PerPossPrefix marks per-100-possession columns.
const PerPossPrefix = "PER100_"

// Kinds returns every supported kind in merge order.
func Kinds() []Kind {
	return []Kind{Totals, PerPoss, Advanced}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Path returns the site path of the kind's page for a season end year.
func (k Kind) Path(endYear int) string {
	return fmt.Sprintf("/leagues/NBA_%d_%s.html", endYear, k)
}

// TableID is the HTML id of the kind's stats table.
func (k Kind) TableID() string {
	return string(k) + "_stats"
}

// Header cells that carry row identity rather than numbers.
const (
	headerRank   = "Rk"
	headerPlayer = "Player"
	headerPos    = "Pos"
	headerAge    = "Age"
	headerTm     = "Tm"
	headerTeam   = "Team"
)

// unprefixed per-possession columns describe playing time, not rates.
var unprefixed = map[string]bool{"G": true, "GS": true, "MP": true}

var advancedRenames = map[string]types.Metric{
	"3PAr": "3PA_RATE",
	"FTr":  "FT_RATE",
}

// metric maps a header cell to the stored column name. ok is false for
// identity and spacer columns.
func (k Kind) metric(header string) (m types.Metric, ok bool) {
	header = strings.TrimSpace(header)
	switch header {
	case "", headerRank, headerPlayer, headerPos, headerAge, headerTm, headerTeam:
		return "", false
	}
	switch k {
	case PerPoss:
		if !unprefixed[header] {
			return types.Metric(PerPossPrefix + header), true
		}
	case Advanced:
		if r, found := advancedRenames[header]; found {
			return r, true
		}
	}
	return types.Metric(header), true
}
