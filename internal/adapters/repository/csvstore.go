package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/okian/laglens/internal/domain/dataset"
	"github.com/okian/laglens/internal/domain/model"
	"github.com/okian/laglens/internal/domain/types"
	"github.com/okian/laglens/pkg/metrics"
)

const ext = ".csv"

// CSVStore keeps one CSV file per table under a directory.
type CSVStore struct {
	dir      string
	comma    rune
	fileMode os.FileMode
}

// NewCSVStore returns a store rooted at dir. The directory is created on the
// first write.
func NewCSVStore(dir string, opts ...Option) *CSVStore {
	s := &CSVStore{dir: dir, comma: ',', fileMode: 0o644}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the root directory.
func (s *CSVStore) Dir() string { return s.dir }

func (s *CSVStore) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name+ext), nil
}

// SaveTable implements Store. The file is written to a temporary name and
// renamed into place so readers never see a partial table.
func (s *CSVStore) SaveTable(ctx context.Context, t model.Table) error {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("save", time.Since(start)) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(t.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, t.Name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := s.writeTable(tmp, t); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", t.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", t.Name, err)
	}
	if err := os.Chmod(tmp.Name(), s.fileMode); err != nil {
		return fmt.Errorf("chmod %s: %w", t.Name, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename %s: %w", t.Name, err)
	}
	return nil
}

func (s *CSVStore) writeTable(w io.Writer, t model.Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = s.comma

	header := make([]string, 0, len(LeadingColumns)+len(t.Columns))
	header = append(header, LeadingColumns...)
	for _, c := range t.Columns {
		header = append(header, string(c))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	rec := make([]string, len(header))
	for _, r := range t.Rows {
		rec[0], rec[1], rec[2], rec[3], rec[4] = r.PlayerID, r.Player, r.Season, r.Team, r.Position
		rec[5] = ""
		if r.Age > 0 {
			rec[5] = strconv.Itoa(r.Age)
		}
		for i, c := range t.Columns {
			rec[len(LeadingColumns)+i] = formatFloat(r.Value(c))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadTable implements Store.
func (s *CSVStore) LoadTable(ctx context.Context, name string) (model.Table, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("load", time.Since(start)) }()

	header, rows, err := s.read(ctx, name)
	if err != nil {
		return model.Table{}, err
	}
	if len(header) < len(LeadingColumns) {
		return model.Table{}, fmt.Errorf("%w: %s: short header", ErrMalformed, name)
	}
	for i, c := range LeadingColumns {
		if header[i] != c {
			return model.Table{}, fmt.Errorf("%w: %s: column %d is %q, want %q", ErrMalformed, name, i, header[i], c)
		}
	}

	t := model.Table{Name: name}
	for _, h := range header[len(LeadingColumns):] {
		t.Columns = append(t.Columns, types.Metric(h))
	}
	t.Rows = make([]model.PlayerSeason, 0, len(rows))
	for n, rec := range rows {
		if len(rec) != len(header) {
			return model.Table{}, fmt.Errorf("%w: %s: row %d has %d fields, want %d", ErrMalformed, name, n+1, len(rec), len(header))
		}
		ps := model.PlayerSeason{
			PlayerID: rec[0],
			Player:   rec[1],
			Season:   rec[2],
			Team:     rec[3],
			Position: rec[4],
			Stats:    make(map[types.Metric]float64, len(t.Columns)),
		}
		if rec[5] != "" {
			if age, err := strconv.Atoi(rec[5]); err == nil {
				ps.Age = age
			}
		}
		for i, c := range t.Columns {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[len(LeadingColumns)+i]), 64)
			if err != nil || math.IsNaN(v) {
				// Missing cells stay absent and read back as NaN via Value.
				continue
			}
			ps.Stats[c] = v
		}
		t.Rows = append(t.Rows, ps)
	}
	return t, nil
}

// LoadRecords implements Store.
func (s *CSVStore) LoadRecords(ctx context.Context, name string) ([]dataset.Record, error) {
	header, rows, err := s.read(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]dataset.Record, 0, len(rows))
	for _, rec := range rows {
		r := make(dataset.Record, len(header))
		for i, h := range header {
			if i < len(rec) {
				r[h] = rec[i]
			} else {
				r[h] = ""
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// Exists implements Store.
func (s *CSVStore) Exists(_ context.Context, name string) bool {
	p, err := s.path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

func (s *CSVStore) read(ctx context.Context, name string) ([]string, [][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	p, err := s.path(name)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = s.comma
	cr.FieldsPerRecord = -1
	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%w: %s: empty file", ErrMalformed, name)
	}
	header := all[0]
	// Files written by spreadsheet tools may start with a UTF-8 BOM.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	// pandas writes an unnamed index column first.
	if header[0] == "" {
		header = header[1:]
		for i := range all[1:] {
			if len(all[i+1]) > 0 {
				all[i+1] = all[i+1][1:]
			}
		}
	}
	return header, all[1:], nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
