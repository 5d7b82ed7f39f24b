package render

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/sangkips/insights/internal/client/view"
	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const summarySheet = "Summary"

// Workbook builds a spreadsheet with a summary sheet and one sheet per ready
// dataset. Line, bar and pie panels get a native chart next to the data.
// The caller closes the returned file.
func Workbook(snap view.Snapshot, opts PageOptions, log *zap.Logger) (*excelize.File, error) {
	if log == nil {
		log = zap.NewNop()
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	summary := [][]any{
		{"Dashboard", dashboardTitle(snap.Kind)},
		{"Signed in as", opts.Email},
		{"Generated", opts.GeneratedAt.UTC().Format(time.RFC3339)},
	}
	if snap.Banner != "" {
		summary = append(summary, []any{"Errors", snap.Banner})
	}
	for i, row := range summary {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write summary: %w", err)
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), header); err != nil {
		f.Close()
		return nil, fmt.Errorf("style summary: %w", err)
	}

	for _, d := range snap.Datasets {
		if d.Status != view.StatusReady || len(d.Rows) == 0 {
			log.Debug("workbook: skipping dataset", zap.Stringer("dataset", d.Key), zap.Stringer("status", d.Status))
			continue
		}
		if err := writeDataset(f, PanelFor(d.Key), d.Rows, header, log); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// WriteWorkbook builds the workbook and writes it to w.
func WriteWorkbook(w io.Writer, snap view.Snapshot, opts PageOptions, log *zap.Logger) error {
	f, err := Workbook(snap, opts, log)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func writeDataset(f *excelize.File, p Panel, rows []entity.Row, header int, log *zap.Logger) error {
	sheet := p.Key.String()
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	cols := Columns(rows, p.X, p.Y)
	head := make([]any, len(cols))
	for i, c := range cols {
		head[i] = humanize(c)
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for i, r := range rows {
		values := make([]any, len(cols))
		for j, c := range cols {
			values[j] = r[c]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}

	chartType, ok := chartTypes[p.Kind]
	if !ok {
		return nil
	}
	xCol, yCol := slices.Index(cols, p.X), slices.Index(cols, p.Y)
	if xCol < 0 || yCol < 0 {
		log.Warn("workbook: chart fields missing", zap.String("sheet", sheet), zap.String("x", p.X), zap.String("y", p.Y))
		return nil
	}
	xName, err := excelize.ColumnNumberToName(xCol + 1)
	if err != nil {
		return err
	}
	yName, err := excelize.ColumnNumberToName(yCol + 1)
	if err != nil {
		return err
	}
	anchor, err := excelize.CoordinatesToCellName(len(cols)+2, 1)
	if err != nil {
		return err
	}

	n := len(rows) + 1
	err = f.AddChart(sheet, anchor, &excelize.Chart{
		Type: chartType,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$%s$1", sheet, yName),
			Categories: fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, xName, xName, n),
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, yName, yName, n),
		}},
		Title:  []excelize.RichTextRun{{Text: p.Title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	})
	if err != nil {
		return fmt.Errorf("add %s chart: %w", sheet, err)
	}
	return nil
}

var chartTypes = map[ChartKind]excelize.ChartType{
	ChartLine: excelize.Line,
	ChartBar:  excelize.Col,
	ChartPie:  excelize.Pie,
}
