package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook.
const (
	SheetHistograms = "histograms"
	SheetLagCounts  = "lag_counts"
)

// WriteXLSX writes a workbook with a histograms sheet (one row per pair,
// one column per lag) and a lag_counts sheet.
func WriteXLSX(w io.Writer, r Report) error {
	if err := r.check(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetHistograms); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetLagCounts); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := []interface{}{"PAIR", "PLAYERS", "SKIPPED"}
	for _, l := range lagLabels() {
		header = append(header, l)
	}
	if err := f.SetSheetRow(SheetHistograms, "A1", &header); err != nil {
		return err
	}
	for i, p := range r.Pairs {
		row := []interface{}{p.String(), r.Population.Players(p), r.Population.Skipped(p)}
		for _, v := range r.Population.Histogram(p) {
			row = append(row, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetHistograms, cell, &row); err != nil {
			return err
		}
	}

	lags := r.lagRange()
	header = []interface{}{"SEASON_LAG"}
	for _, p := range r.Pairs {
		header = append(header, p.String()+"_COUNT")
	}
	if err := f.SetSheetRow(SheetLagCounts, "A1", &header); err != nil {
		return err
	}
	for i, l := range lags {
		row := []interface{}{l}
		for _, p := range r.Pairs {
			row = append(row, r.lagCount(p, l))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetLagCounts, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
