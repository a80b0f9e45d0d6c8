package ingest

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"advancecli/internal/analysis"
	apperrors "advancecli/internal/errors"
	"advancecli/pkg/contracts/domain"
)

// colOtherID is the explicit secondary-identifier column carried by extracts
// whose document numbers are not unique.
const colOtherID = "Other Unique Identifier if DHS Doc No is not unique1"

// keywordTerms mark the fallback identifier columns. A column qualifies when
// its header contains any term, case-insensitively.
var keywordTerms = []string{"pono", "item", "line", "mdl"}

// requiredColumns must all be present or the batch is rejected.
var requiredColumns = []string{analysis.ColTAS, analysis.ColDocNo, analysis.ColAdvance}

// Result is a normalized row set plus the count of rows dropped for a
// missing TAS.
type Result struct {
	Records []domain.AdvanceRecord
	Dropped int
}

// Normalize coerces a raw sheet into domain records. Missing required
// columns abort the batch with a SchemaError; unparseable amounts and dates
// degrade to nulls with a warning.
func Normalize(sheet *Sheet, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	idx := make(map[string]int, len(sheet.Columns))
	for i, name := range sheet.Columns {
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.MissingColumnsError(sheet.Name, missing)
	}

	keywordCols := keywordColumns(sheet.Columns)

	res := &Result{Records: make([]domain.AdvanceRecord, 0, len(sheet.Rows))}
	for rowNum, row := range sheet.Rows {
		cell := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		tas := cell(analysis.ColTAS)
		if tas == "" {
			res.Dropped++
			continue
		}

		rec := domain.AdvanceRecord{
			TAS:              tas,
			SGL:              cell(analysis.ColSGL),
			DocumentNumber:   cell(analysis.ColDocNo),
			WCFIndicator:     cell(analysis.ColWCF),
			Status:           cell(analysis.ColStatus),
			Comments:         cell(analysis.ColComments),
			Vendor:           cell(analysis.ColVendor),
			TradingPartnerID: cell(analysis.ColTradingPartner),
			AdvanceType:      cell(analysis.ColAdvanceType),
			OtherID:          cell(colOtherID),
		}

		for _, col := range keywordCols {
			if v := cell(col); v != "" {
				rec.KeywordValue = v
				break
			}
		}

		rec.Advance = parseAmountCell(cell(analysis.ColAdvance), analysis.ColAdvance, rowNum, logger)
		rec.Balance = parseAmountCell(cell(analysis.ColBalance), analysis.ColBalance, rowNum, logger)

		if v := cell(analysis.ColAgeDays); v != "" {
			if age, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err == nil {
				n := int(age)
				rec.AgeDays = &n
			} else {
				logger.Warn("unparseable age value",
					slog.Int("row", rowNum), slog.String("value", v))
			}
		}

		rec.AdvanceDate = parseDateCell(cell(analysis.ColAdvanceDate), analysis.ColAdvanceDate, rowNum, logger)
		rec.LastActivityDate = parseDateCell(cell(analysis.ColLastActivityDate), analysis.ColLastActivityDate, rowNum, logger)
		rec.AnticipatedLiquidationDate = parseDateCell(cell(analysis.ColLiquidationDate), analysis.ColLiquidationDate, rowNum, logger)
		rec.PoPEndDate = parseDateCell(cell(analysis.ColPoPEndDate), analysis.ColPoPEndDate, rowNum, logger)

		res.Records = append(res.Records, rec)
	}

	if res.Dropped > 0 {
		logger.Info("dropped rows without TAS",
			slog.String("sheet", sheet.Name), slog.Int("dropped", res.Dropped))
	}
	return res, nil
}

func keywordColumns(columns []string) []string {
	var out []string
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, term := range keywordTerms {
			if strings.Contains(lower, term) {
				out = append(out, col)
				break
			}
		}
	}
	return out
}

func parseAmountCell(v, col string, row int, logger *slog.Logger) decimal.NullDecimal {
	amount, err := analysis.ParseAmount(v)
	if err != nil {
		logger.Warn("unparseable amount",
			slog.Int("row", row), slog.String("column", col), slog.String("value", v))
	}
	return amount
}

// dateLayouts are the textual formats extracts have been observed to carry.
var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006-01-02",
	"1-2-2006",
	"January 2, 2006",
	"2-Jan-06",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04",
}

// excelEpoch is day zero of the 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

func parseDateCell(v, col string, row int, logger *slog.Logger) *time.Time {
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	// Raw cells sometimes surface as 1900-system serial numbers.
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 && serial < 200000 {
		t := excelEpoch.AddDate(0, 0, int(serial))
		return &t
	}
	logger.Warn("unparseable date",
		slog.Int("row", row), slog.String("column", col), slog.String("value", v))
	return nil
}
