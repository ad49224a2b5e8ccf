package bbref

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/okian/laglens/internal/domain/model"
	"github.com/okian/laglens/internal/domain/season"
	"github.com/okian/laglens/internal/domain/types"
)

const leagueAverage = "League Average"

var playerHref = regexp.MustCompile(`/players/[a-z]/([a-z0-9.'-]+)\.html`)

// Parse extracts the kind's player table from a season page.
func Parse(r io.Reader, kind Kind, endYear int) (model.Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return model.Table{}, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table#" + kind.TableID()).First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return model.Table{}, fmt.Errorf("%w: %s %d", ErrTableNotFound, kind, endYear)
	}

	var header []string
	table.Find("thead tr").Last().Children().Each(func(_ int, c *goquery.Selection) {
		header = append(header, strings.TrimSpace(c.Text()))
	})
	if len(header) == 0 {
		return model.Table{}, fmt.Errorf("%w: %s %d has no header", ErrTableNotFound, kind, endYear)
	}

	label := season.Label(endYear)
	out := model.Table{Name: string(kind)}
	seen := make(map[types.Metric]bool)
	metrics := make([]types.Metric, len(header))
	keep := make([]bool, len(header))
	for i, h := range header {
		metrics[i], keep[i] = kind.metric(h)
	}

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") {
			return
		}
		cells := tr.Children()
		if cells.Length() == 0 || strings.TrimSpace(cells.First().Text()) == headerRank {
			return
		}

		row := model.PlayerSeason{Season: label, Stats: make(map[types.Metric]float64)}
		cells.Each(func(i int, c *goquery.Selection) {
			if i >= len(header) {
				return
			}
			text := strings.TrimSpace(c.Text())
			switch header[i] {
			case headerPlayer:
				row.Player = strings.TrimRight(text, "*")
				row.PlayerID = playerID(c)
			case headerPos:
				row.Position = text
			case headerAge:
				row.Age, _ = strconv.Atoi(text)
			case headerTm, headerTeam:
				row.Team = text
			}
			if !keep[i] || text == "" {
				return
			}
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return
			}
			row.Stats[metrics[i]] = v
			seen[metrics[i]] = true
		})
		if row.Player == "" || row.Player == leagueAverage {
			return
		}
		out.Rows = append(out.Rows, row)
	})

	for i, m := range metrics {
		if keep[i] && seen[m] {
			out.Columns = append(out.Columns, m)
			seen[m] = false
		}
	}
	return out, nil
}

func playerID(c *goquery.Selection) string {
	if id, ok := c.Attr("data-append-csv"); ok && id != "" {
		return id
	}
	href, ok := c.Find("a").First().Attr("href")
	if !ok {
		return ""
	}
	if m := playerHref.FindStringSubmatch(href); m != nil {
		return m[1]
	}
	return ""
}
