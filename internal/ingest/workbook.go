package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"advancecli/internal/analysis"
	apperrors "advancecli/internal/errors"
)

// DefaultSheet is the ledger tab the analysis reads.
const DefaultSheet = "4-Advance Analysis"

// Sheet is a raw loaded sheet: the promoted header and the data rows below
// it. Cells are excelize's formatted string values.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// LoadWorkbook opens a ledger workbook from disk and extracts the advance
// analysis sheet.
func LoadWorkbook(path string, logger *slog.Logger) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return extractSheet(f, logger)
}

// LoadWorkbookReader extracts the advance analysis sheet from an in-memory
// workbook, e.g. a multipart upload.
func LoadWorkbookReader(r io.Reader, logger *slog.Logger) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()
	return extractSheet(f, logger)
}

func extractSheet(f *excelize.File, logger *slog.Logger) (*Sheet, error) {
	if logger == nil {
		logger = slog.Default()
	}

	name := DefaultSheet
	rows, err := f.GetRows(name)
	if err != nil {
		// Component extracts occasionally rename the tab; fall back to the
		// first sheet whose column A carries the TAS header.
		rows = nil
		for _, candidate := range f.GetSheetList() {
			if candidateRows, candidateErr := f.GetRows(candidate); candidateErr == nil && findHeaderRow(candidateRows) >= 0 {
				name = candidate
				rows = candidateRows
				break
			}
		}
		if rows == nil {
			return nil, apperrors.SchemaReasonError(DefaultSheet, "sheet not found and no fallback sheet carries a TAS header")
		}
		logger.Warn("advance analysis sheet not found by name, using fallback",
			slog.String("sheet", name))
	}

	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return nil, apperrors.SchemaReasonError(name, "no header row found (column A never contains %q)", analysis.ColTAS)
	}
	if headerIdx > 0 {
		logger.Info("promoted header row",
			slog.String("sheet", name),
			slog.Int("header_row", headerIdx+1),
			slog.Int("preamble_rows", headerIdx))
	}

	columns := canonicalColumns(dedupeColumns(rows[headerIdx]))
	return &Sheet{
		Name:    name,
		Columns: columns,
		Rows:    rows[headerIdx+1:],
	}, nil
}

// findHeaderRow returns the index of the first row whose column A is the TAS
// header, or -1. Ledger extracts carry title and certification preamble above
// the real header.
func findHeaderRow(rows [][]string) int {
	for i, row := range rows {
		if len(row) > 0 && strings.TrimSpace(row[0]) == analysis.ColTAS {
			return i
		}
	}
	return -1
}

// dedupeColumns suffixes repeated header names with _<n> so every column is
// addressable, mirroring how the extracts label their duplicated
// "Advance/Prepayment" pair.
func dedupeColumns(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if n, dup := seen[name]; dup && name != "" {
			seen[name] = n + 1
			name = name + "_" + strconv.Itoa(n)
		} else {
			seen[name] = 1
		}
		out[i] = name
	}
	return out
}

// secondaryBalanceAliases maps either external spelling of the secondary
// balance column onto the canonical name. Pipeline logic never branches on
// which spelling arrived.
var secondaryBalanceAliases = map[string]string{
	"Advance/Prepayment_1": analysis.ColBalance,
}

func canonicalColumns(header []string) []string {
	for i, name := range header {
		if canonical, ok := secondaryBalanceAliases[name]; ok {
			header[i] = canonical
		}
	}
	return header
}
