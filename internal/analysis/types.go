package analysis

import (
	"time"

	"advancecli/internal/fiscal"
)

// Canonical column names from the "4-Advance Analysis" extract. These are
// exact external strings: the blank-field checklist joins them into audit
// messages, so they must not be reworded.
const (
	ColTAS              = "TAS"
	ColSGL              = "SGL"
	ColDocNo            = "DHS Doc No"
	ColWCF              = "Indicate if advance is to WCF (Y/N)"
	ColAdvance          = "Advance/Prepayment"
	ColLastActivityDate = "Last Activity Date"
	ColAdvanceDate      = "Date of Advance"
	ColAgeDays          = "Age of Advance (days)"
	ColPoPEndDate       = "Period of Performance End Date"
	ColStatus           = "Status"
	ColBalance          = "Advance/Prepayment.1"
	ColComments         = "Comments"
	ColVendor           = "Vendor"
	ColTradingPartner   = "Trading Partner ID"
	ColAdvanceType      = "Advance Type (e.g. Travel, Vendor Prepayment)"
	ColLiquidationDate  = "Anticipated Liquidation Date"
)

// checklistColumns is the ordered blank-field scan. Order is contractual:
// the joined column list appears verbatim in narrative output.
var checklistColumns = []string{
	ColTAS, ColSGL, ColDocNo, ColWCF,
	ColAdvance, ColLastActivityDate, ColAdvanceDate,
	ColAgeDays, ColPoPEndDate, ColStatus,
	ColBalance, ColComments, ColVendor, ColAdvanceType,
}

// balanceKeyComponents embed the formatted balance directly in the join key
// instead of any secondary identifier.
var balanceKeyComponents = map[string]bool{
	"SS": true, "CBP": true, "MGA": true, "OIG": true, "FEM": true,
}

// Config fixes the component and period context a batch is evaluated under.
// All date thresholds derive from the period tag.
type Config struct {
	Component string
	Period    fiscal.Period
}

// Cutoff is the quarter-end reporting date.
func (c Config) Cutoff() time.Time { return c.Period.ReportingCutoff() }

// FYStart is the fiscal year start (October 1).
func (c Config) FYStart() time.Time { return c.Period.YearStart() }

// FYEnd is the fiscal year end (September 30).
func (c Config) FYEnd() time.Time { return c.Period.YearEnd() }

// auditDate is the date layout used inside narrative messages.
const auditDate = "01/02/2006"

func formatAuditDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(auditDate)
}
