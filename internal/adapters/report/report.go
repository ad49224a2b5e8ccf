// Package report renders population histograms and peak-lag counts as
// terminal tables, HTML and PNG bar charts, and XLSX workbooks.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/okian/laglens/internal/domain/aggregate"
	"github.com/okian/laglens/internal/domain/align"
	"github.com/okian/laglens/internal/domain/types"
	"github.com/okian/laglens/pkg/metrics"
)

// Format selects a report renderer.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatHTML  Format = "html"
	FormatPNG   Format = "png"
	FormatXLSX  Format = "xlsx"
)

// Axis labels shared by the chart renderers.
const (
	xAxisName = "Season Lag"
	yAxisName = "Density"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatTable, FormatHTML, FormatPNG, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Report is the data every renderer consumes.
type Report struct {
	RunID      string
	Population *aggregate.Population
	Pairs      []types.Pair
}

func (r Report) check() error {
	if r.Population == nil || len(r.Pairs) == 0 {
		return ErrNoPairs
	}
	return nil
}

func lagLabels() []string {
	lags := align.Lags()
	out := make([]string, len(lags))
	for i, l := range lags {
		out[i] = fmt.Sprintf("%d", l)
	}
	return out
}

// lagRange returns the sorted union of peak lags seen across the pairs.
func (r Report) lagRange() []int {
	seen := make(map[int]bool)
	for _, p := range r.Pairs {
		for _, lc := range r.Population.LagCounts(p) {
			seen[lc.Lag] = true
		}
	}
	out := make([]int, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

func (r Report) lagCount(p types.Pair, lag int) int {
	for _, lc := range r.Population.LagCounts(p) {
		if lc.Lag == lag {
			return lc.Count
		}
	}
	return 0
}

// Write renders r in format. Table output goes to stdout when out is empty.
// HTML and XLSX write the file out, defaulting to dir/laglens-<run>.<ext>.
// PNG writes one file per pair into out, or dir when out is empty.
// It returns the paths written.
func Write(format Format, r Report, dir, out string, stdout io.Writer) ([]string, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	var paths []string
	var err error
	switch format {
	case FormatTable:
		if out == "" {
			err = WriteTable(stdout, r)
			break
		}
		paths, err = writeFile(out, func(w io.Writer) error { return WriteTable(w, r) })
	case FormatHTML:
		paths, err = writeFile(defaultPath(dir, out, r.RunID, "html"), func(w io.Writer) error { return WriteHTML(w, r) })
	case FormatXLSX:
		paths, err = writeFile(defaultPath(dir, out, r.RunID, "xlsx"), func(w io.Writer) error { return WriteXLSX(w, r) })
	case FormatPNG:
		if out == "" {
			out = dir
		}
		paths, err = WritePNGDir(out, r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		metrics.RecordErrorByComponent("report", string(format))
		return nil, err
	}
	metrics.RecordReportWritten(string(format))
	return paths, nil
}

func defaultPath(dir, out, runID, ext string) string {
	if out != "" {
		return out
	}
	name := "laglens." + ext
	if runID != "" {
		name = "laglens-" + runID + "." + ext
	}
	return filepath.Join(dir, name)
}

func writeFile(path string, render func(io.Writer) error) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close report: %w", err)
	}
	return []string{path}, nil
}
