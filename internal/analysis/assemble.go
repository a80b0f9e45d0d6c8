package analysis

import (
	"strconv"

	"advancecli/pkg/contracts/domain"
)

// Derived and comparative output column names. Like the input columns these
// are external contract strings and appear verbatim in the review workbook.
const (
	ColJoinKey             = "DO Concatenate"
	ColPoPExpired          = "PoP Expired?"
	ColDaysSincePoP        = "Days Since PoP Expired"
	ColInvoicedRecently    = "Invoiced Within the Last 12 Months"
	ColActivityStatus      = "Active/Inactive Advance"
	ColAbnormalBalance     = "Abnormal Balance"
	ColCurrentYearAdvance  = "CY Advance?"
	ColNullOrBlank         = "Null or Blank Columns"
	ColExplanationRequired = "Advances Requiring Explanations?"
	ColComparativeStatus   = "Comparative Period Status"
	ColAdvanceAfterPoP     = "Advance Date After Expiration of PoP"
	ColStatusChanged       = "Status Changed?"
	ColLiquidationTest     = "Anticipated Liquidation Date Test"
	ColLiquidationDelay    = "Anticipated Liquidation Date Delayed?"
	ColValidStatus1        = "Valid Status 1"
	ColValidStatus2        = "Valid Status 2"
	ColStatus1Validation   = "DO Status 1 Validation"
	ColStatus2Validation   = "DO Status 2 Validations"
	ColDOComment           = "DO Comment"

	// comparativeSuffix marks the four prior-period columns carried by the
	// cross-period join.
	comparativeSuffix = "_comp"
)

// OutputColumns is the fixed review-sheet column order: the original extract
// columns, the single-period derivations, the prior-period comparatives, then
// the composite validations.
var OutputColumns = []string{
	ColTAS, ColSGL, ColDocNo, ColWCF,
	ColAdvance, ColAdvanceDate, ColAgeDays, ColLastActivityDate,
	ColLiquidationDate, ColPoPEndDate, ColStatus, ColBalance,
	ColComments, ColVendor, ColTradingPartner, ColAdvanceType,

	ColJoinKey, ColPoPExpired, ColDaysSincePoP, ColInvoicedRecently,
	ColActivityStatus, ColAbnormalBalance, ColCurrentYearAdvance,

	ColAdvanceDate + comparativeSuffix,
	ColLastActivityDate + comparativeSuffix,
	ColLiquidationDate + comparativeSuffix,
	ColStatus + comparativeSuffix,

	ColNullOrBlank, ColExplanationRequired, ColComparativeStatus,
	ColAdvanceAfterPoP, ColStatusChanged,
	ColLiquidationTest, ColLiquidationDelay,
	ColValidStatus1, ColValidStatus2,
	ColStatus1Validation, ColStatus2Validation, ColDOComment,
}

// Table is the assembled review sheet: a header row plus one string row per
// analyzed record, cells already rendered in their audit formats.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Assemble renders analyzed rows into the fixed-order output table.
// Null values render as empty cells; balances use the trimmed decimal
// rendering shared with the join key.
func Assemble(rows []Row) Table {
	t := Table{
		Headers: OutputColumns,
		Rows:    make([][]string, 0, len(rows)),
	}
	for i := range rows {
		t.Rows = append(t.Rows, assembleRow(&rows[i]))
	}
	return t
}

func assembleRow(row *Row) []string {
	rec, comp, d := row.Record, row.Comparative, row.Derived
	return []string{
		rec.TAS, rec.SGL, rec.DocumentNumber, rec.WCFIndicator,
		FormatBalance(rec.Advance),
		formatAuditDate(rec.AdvanceDate),
		formatInt(rec.AgeDays),
		formatAuditDate(rec.LastActivityDate),
		formatAuditDate(rec.AnticipatedLiquidationDate),
		formatAuditDate(rec.PoPEndDate),
		rec.Status,
		FormatBalance(rec.Balance),
		rec.Comments, rec.Vendor, rec.TradingPartnerID, rec.AdvanceType,

		d.JoinKey,
		d.PoPExpired.String(),
		d.DaysSincePoPExpired,
		d.InvoicedRecently.String(),
		d.ActivityStatus.String(),
		d.AbnormalBalance.String(),
		d.CurrentYearAdvance.String(),

		formatAuditDate(comp.AdvanceDate),
		formatAuditDate(comp.LastActivityDate),
		formatAuditDate(comp.AnticipatedLiquidationDate),
		comp.Status,

		joinedBlanks(d.NullOrBlankFields),
		d.ExplanationRequired.String(),
		comparativeStatus(comp),
		d.AdvanceAfterPoP,
		d.StatusChanged,
		d.LiquidationDateTest,
		formatInt(d.LiquidationDelayDays),
		d.ValidStatus1,
		d.ValidStatus2,
		d.Status1Validation,
		d.Status2Validation,
		d.Comment,
	}
}

// comparativeStatus labels the prior-period lifecycle status for reviewers.
func comparativeStatus(comp domain.Comparative) string {
	if !comp.Matched || comp.Status == "" {
		return "No Prior Year Data"
	}
	return "Status " + comp.Status
}

func formatInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// Analyzed converts internal rows into the contract row type served over the
// API.
func Analyzed(rows []Row) []domain.AnalyzedRow {
	out := make([]domain.AnalyzedRow, len(rows))
	for i, r := range rows {
		out[i] = domain.AnalyzedRow{Record: r.Record, Comparative: r.Comparative, Derived: r.Derived}
	}
	return out
}
