package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteTable writes one histogram row per pair followed by the peak-lag
// counts.
func WriteTable(w io.Writer, r Report) error {
	if err := r.check(); err != nil {
		return err
	}

	hist := table.NewWriter()
	hist.SetOutputMirror(w)
	hist.SetStyle(table.StyleLight)
	hist.SetTitle("Population histograms (season lag)")

	header := table.Row{"Pair", "Players", "Skipped"}
	for _, l := range lagLabels() {
		header = append(header, l)
	}
	hist.AppendHeader(header)

	for _, p := range r.Pairs {
		row := table.Row{p.String(), r.Population.Players(p), r.Population.Skipped(p)}
		for _, v := range r.Population.Histogram(p) {
			row = append(row, fmt.Sprintf("%.3f", v))
		}
		hist.AppendRow(row)
	}
	cfgs := make([]table.ColumnConfig, 0, len(header))
	for i := 2; i <= len(header); i++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: i, Align: text.AlignRight})
	}
	hist.SetColumnConfigs(cfgs)
	if r.RunID != "" {
		hist.SetCaption("run %s", r.RunID)
	}
	hist.Render()

	lags := r.lagRange()
	if len(lags) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	counts := table.NewWriter()
	counts.SetOutputMirror(w)
	counts.SetStyle(table.StyleLight)
	counts.SetTitle("Peak lag counts (players)")

	header = table.Row{"Pair"}
	for _, l := range lags {
		header = append(header, l)
	}
	counts.AppendHeader(header)
	for _, p := range r.Pairs {
		row := table.Row{p.String()}
		for _, l := range lags {
			row = append(row, r.lagCount(p, l))
		}
		counts.AppendRow(row)
	}
	counts.Render()
	return nil
}
