package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"advancecli/internal/analysis"
	"advancecli/internal/config"
)

// ReviewSheet is the output tab reviewers annotate.
const ReviewSheet = "DO Analysis Tab 4 Review"

// XLSXWriter renders review tables as native Excel workbooks.
type XLSXWriter struct {
	paths *config.PathsConfig
}

// NewXLSXWriter creates a new xlsx writer instance
func NewXLSXWriter(paths *config.PathsConfig) *XLSXWriter {
	return &XLSXWriter{paths: paths}
}

// WriteTable writes the assembled table to a single-sheet workbook. The
// header row is bold with a frozen pane so long tables stay navigable.
func (w *XLSXWriter) WriteTable(filePath string, table analysis.Table) (err error) {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing xlsx workbook",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(table.Rows)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := f.SetSheetName("Sheet1", ReviewSheet); err != nil {
		return fmt.Errorf("failed to name review sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(ReviewSheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	// Freeze panes must be set before the first SetRow call.
	if err := sw.SetPanes(&excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("failed to freeze header pane: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, record := range table.Rows {
		cells := make([]interface{}, len(record))
		for j, v := range record {
			cells[j] = v
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := sw.SetRow(axis, cells); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush stream writer: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) resolvePath(filePath string) string {
	if w.paths == nil || filepath.IsAbs(filePath) {
		return filePath
	}
	return w.paths.ReportPath(filePath)
}
