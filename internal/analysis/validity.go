package analysis

import (
	"fmt"

	"advancecli/pkg/contracts/domain"
)

// Validity labels. The en-dash is part of the published schema and differs
// from the em-dash used as a narrative clause separator.
const (
	ValidStatus1Label = "Valid – Status 1"
	ValidStatus2Label = "Valid – Status 2"
	NotStatus1        = "Not Status 1"
	NotStatus2        = "Not Status 2"
)

// ExplanationRequired classifies the explanation requirement. Only Status-1
// and Status-2 advances are classified; anything else is not applicable. No
// explanation is needed only for an active advance inside its period of
// performance with a normal balance.
func ExplanationRequired(rec domain.AdvanceRecord, d domain.Derived) domain.Explanation {
	if !rec.IsStatus1() && !rec.IsStatus2() {
		return domain.ExplanationNotApplicable
	}
	if d.ActivityStatus == domain.ActiveAdvance &&
		d.PoPExpired == domain.PoPNotExpired &&
		d.AbnormalBalance == domain.AbnormalNo {
		return domain.ExplanationNotRequired
	}
	return domain.ExplanationRequired
}

// AdvanceAfterPoP tests whether the advance was issued after its period of
// performance expired. Missing inputs surface as sentinels, not errors.
func AdvanceAfterPoP(rec domain.AdvanceRecord, d domain.Derived) string {
	if hasBlank(d.NullOrBlankFields, ColAdvanceDate) {
		return "Date of Advance Not Provided"
	}
	if d.PoPExpired == domain.PoPDateMissing {
		return d.PoPExpired.String()
	}
	if rec.AdvanceDate != nil && rec.PoPEndDate != nil && rec.AdvanceDate.After(*rec.PoPEndDate) {
		return "Y"
	}
	return "N"
}

// StatusChanged compares current and prior statuses. Both must be present
// for a change to be reported.
func StatusChanged(rec domain.AdvanceRecord, comp domain.Comparative) string {
	if comp.Matched && comp.Status != "" && rec.Status != "" && comp.Status != rec.Status {
		return fmt.Sprintf("Advance Status Changed from Status %s to Status %s", comp.Status, rec.Status)
	}
	return "N"
}

// LiquidationDateTest validates the anticipated liquidation date against the
// fiscal year window for Status-2 advances and flags any date provided on a
// Status-1 advance.
func (c Config) LiquidationDateTest(rec domain.AdvanceRecord, d domain.Derived) string {
	liq := rec.AnticipatedLiquidationDate
	flagged := hasBlank(d.NullOrBlankFields, ColLiquidationDate)

	if rec.IsStatus2() && !flagged && liq != nil {
		if c.FYStart().After(*liq) {
			return fmt.Sprintf("Anticipated Liquidation Date (%s) is in the Prior Year", formatAuditDate(liq))
		}
		if c.FYEnd().Before(*liq) {
			return fmt.Sprintf("Anticipated Liquidation Date (%s) Exceeds Year-End", formatAuditDate(liq))
		}
	}
	if rec.IsStatus1() && liq != nil {
		return fmt.Sprintf("Anticipated Liquidation Date (%s) Provided For Status 1 Advance", formatAuditDate(liq))
	}
	return "OK"
}

// LiquidationDelayDays returns how many days the anticipated liquidation
// date slipped since the prior period. Only computed when both periods
// report Status 2 with the date present on each side; otherwise nil.
func LiquidationDelayDays(rec domain.AdvanceRecord, comp domain.Comparative, d domain.Derived) *int {
	if !rec.IsStatus2() || comp.Status != "2" {
		return nil
	}
	if hasBlank(d.NullOrBlankFields, ColLiquidationDate) {
		return nil
	}
	if rec.AnticipatedLiquidationDate == nil || comp.AnticipatedLiquidationDate == nil {
		return nil
	}
	days := daysBetween(*comp.AnticipatedLiquidationDate, *rec.AnticipatedLiquidationDate)
	return &days
}

// blanksLimitedToComments reports whether the blank-field set is empty or
// exactly the Comments column, the only omission a valid advance may carry.
func blanksLimitedToComments(fields []string) bool {
	joined := joinedBlanks(fields)
	return joined == "" || joined == ColComments
}

// ValidStatus1 classifies Status-1 validity. A Status-1 advance is valid
// either when no explanation is required and nothing else is off, or when an
// explanation is required but no abnormal, expiry, aged-PoP, or
// current-year signal is present. Status-2 rows are out of scope; any other
// Status-1 case is "N"; other statuses are unclassified.
func ValidStatus1(rec domain.AdvanceRecord, d domain.Derived) string {
	switch {
	case rec.IsStatus1() &&
		d.ExplanationRequired == domain.ExplanationNotRequired &&
		blanksLimitedToComments(d.NullOrBlankFields) &&
		d.AdvanceAfterPoP == "N" &&
		d.StatusChanged == "N" &&
		d.CurrentYearAdvance != domain.CYAdvanceYes:
		return ValidStatus1Label

	case rec.IsStatus1() &&
		d.ExplanationRequired == domain.ExplanationRequired &&
		blanksLimitedToComments(d.NullOrBlankFields) &&
		d.AdvanceAfterPoP == "N" &&
		d.AbnormalBalance != domain.AbnormalYes &&
		d.PoPExpired != domain.PoPExpiredYes &&
		d.DaysSincePoPExpired == "" &&
		d.CurrentYearAdvance != domain.CYAdvanceYes:
		return ValidStatus1Label

	case rec.IsStatus2():
		return NotStatus1

	case rec.IsStatus1():
		return "N"

	default:
		return ""
	}
}

// ValidStatus2 classifies Status-2 validity, gated additionally on the
// liquidation-date test passing and no reported liquidation slip.
func ValidStatus2(rec domain.AdvanceRecord, d domain.Derived) string {
	if rec.IsStatus1() {
		return NotStatus2
	}

	switch {
	case rec.IsStatus2() &&
		d.ExplanationRequired == domain.ExplanationNotRequired &&
		blanksLimitedToComments(d.NullOrBlankFields) &&
		d.AdvanceAfterPoP == "N" &&
		d.StatusChanged == "N" &&
		d.LiquidationDateTest == "OK" &&
		d.LiquidationDelayDays == nil:
		return ValidStatus2Label

	case rec.IsStatus2() &&
		d.ExplanationRequired == domain.ExplanationRequired &&
		joinedBlanks(d.NullOrBlankFields) == ColComments &&
		d.AdvanceAfterPoP == "N" &&
		d.AbnormalBalance == domain.AbnormalNo &&
		d.StatusChanged == "N" &&
		d.LiquidationDateTest == "OK" &&
		d.LiquidationDelayDays == nil:
		return ValidStatus2Label

	default:
		return "N"
	}
}
