package analysis

import (
	"fmt"
	"strings"

	"advancecli/pkg/contracts/domain"
)

// Narrative composition for the DO Status validations. Each narrative is a
// priority-ordered decision cascade: Follow-up Required, then the Valid
// cases, then Attention Required, then a bare Valid fallback. Branch order
// is the contract. Clauses accumulate across the follow-up and attention
// condition sets and are joined with em-dashes.

const (
	errStatus1 = "Error in Status 1 Validation"
	errStatus2 = "Error in Status 2 Validation"
)

// formatPoPStatus renders the PoP state suffix used by every narrative.
func formatPoPStatus(p domain.PoPExpired) string {
	switch p {
	case domain.PoPExpiredYes:
		return "Period of Performance Expired"
	case domain.PoPNotExpired:
		return "Within Period of Performance"
	default:
		return fmt.Sprintf("Period of Performance Status: %s", p)
	}
}

// Status1Validation produces the DO Status 1 narrative for a row. A panic
// while evaluating degrades to the error sentinel for this field only.
func Status1Validation(rec domain.AdvanceRecord, d domain.Derived) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = errStatus1
		}
	}()

	if !rec.IsStatus1() {
		return NotStatus1
	}

	blanks := joinedBlanks(d.NullOrBlankFields)
	active := d.ActivityStatus.String()
	var conditions []string
	followUp := false

	if d.ValidStatus1 == "N" && blanks != "" {
		followUp = true
		conditions = append(conditions, fmt.Sprintf("The %s Field(s) are not Populated", blanks))
	}
	if d.CurrentYearAdvance == domain.CYAdvanceYes {
		followUp = true
		conditions = append(conditions, "Current Year Advance")
	}
	if d.AdvanceAfterPoP == "Y" {
		followUp = true
		conditions = append(conditions, fmt.Sprintf("Advance Date is After Expiration of PoP: %s", d.AdvanceAfterPoP))
	}
	if d.AbnormalBalance == domain.AbnormalYes && strings.Contains(blanks, ColComments) {
		followUp = true
		conditions = append(conditions, "Abnormal Balance with Comments Required")
	}

	if d.ExplanationRequired == domain.ExplanationRequired && followUp {
		return "Follow-up Required — Status 1 — " + strings.Join(conditions, " — ") +
			fmt.Sprintf(" — %s — %s", active, formatPoPStatus(d.PoPExpired))
	}

	if d.ValidStatus1 == ValidStatus1Label && d.ActivityStatus == domain.ActiveAdvance {
		if d.PoPExpired == domain.PoPNotExpired {
			return fmt.Sprintf("Valid — Status 1 — %s — %s", active, formatPoPStatus(d.PoPExpired))
		}
		if d.PoPExpired == domain.PoPExpiredYes && blanks != "" {
			return fmt.Sprintf("Valid — Status 1 — %s — %s; Explanation Reasonable", active, formatPoPStatus(d.PoPExpired))
		}
	}

	attention := false
	if d.ValidStatus1 == "N" && blanks != "" {
		attention = true
		conditions = append(conditions, fmt.Sprintf("The %s Field(s) are not Populated", blanks))
	}
	if d.AbnormalBalance == domain.AbnormalYes && !strings.Contains(blanks, ColComments) {
		attention = true
		conditions = append(conditions, "Abnormal Balance with Missing Comments")
	}
	if d.PoPExpired == domain.PoPExpiredYes && d.LiquidationDateTest == "OK" {
		attention = true
		conditions = append(conditions, "Period of Performance Expired")
	}
	if attention {
		return fmt.Sprintf("Attention Required — Status 1 — %s — ", active) + strings.Join(conditions, " — ")
	}

	return fmt.Sprintf("Valid Status 1 — %s — %s", active, formatPoPStatus(d.PoPExpired))
}

// Status2Validation produces the DO Status 2 narrative for a row.
func Status2Validation(rec domain.AdvanceRecord, d domain.Derived) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = errStatus2
		}
	}()

	if !rec.IsStatus2() {
		return NotStatus2
	}

	blanks := joinedBlanks(d.NullOrBlankFields)
	active := d.ActivityStatus.String()
	var conditions []string
	followUp := false

	if d.CurrentYearAdvance == domain.CYAdvanceYes {
		followUp = true
		conditions = append(conditions, "Current Year Advance")
	}
	if d.AdvanceAfterPoP == "Y" {
		followUp = true
		conditions = append(conditions, "Advance Date is After Expiration of PoP")
	}
	if d.AbnormalBalance == domain.AbnormalYes && strings.Contains(blanks, ColComments) {
		followUp = true
		conditions = append(conditions, "Abnormal Balance — Comments are Required")
	}
	if containsChecklistColumn(blanks) {
		followUp = true
		conditions = append(conditions, fmt.Sprintf("%s Fields Are Not Populated", blanks))
	}
	if d.LiquidationDateTest != "OK" {
		followUp = true
		conditions = append(conditions, d.LiquidationDateTest)
	}

	if d.ExplanationRequired == domain.ExplanationRequired && followUp {
		return "Follow-up Required — Status 2 — " + strings.Join(conditions, " — ") +
			fmt.Sprintf(" — %s — %s", active, formatPoPStatus(d.PoPExpired))
	}

	if d.ValidStatus2 == ValidStatus2Label && d.ActivityStatus == domain.ActiveAdvance {
		if d.PoPExpired == domain.PoPNotExpired ||
			(d.PoPExpired == domain.PoPExpiredYes && blanks != "") {
			return fmt.Sprintf("Valid — Status 2 — %s — %s — Anticipated Liquidation Date is Reasonable; Explanation Reasonable",
				active, formatPoPStatus(d.PoPExpired))
		}
	}

	// The Status-2 attention message is fixed; the triggering conditions do
	// not surface as clauses.
	attention := (d.ValidStatus2 == "N" && blanks == "") ||
		(d.ActivityStatus == domain.ActiveAdvance && d.PoPExpired == domain.PoPExpiredYes) ||
		(d.ActivityStatus == domain.InactiveAdvance && d.PoPExpired == domain.PoPNotExpired)
	if attention {
		return fmt.Sprintf("Attention Required — Status 2 — %s — %s; Anticipated Liquidation Date is Reasonable",
			active, formatPoPStatus(d.PoPExpired))
	}

	return fmt.Sprintf("Valid Status 2 — %s — %s — Anticipated Liquidation Date is Reasonable",
		active, formatPoPStatus(d.PoPExpired))
}

// Comment selects the narrative matching the record's status; other
// statuses get no comment.
func Comment(rec domain.AdvanceRecord, d domain.Derived) string {
	switch {
	case rec.IsStatus1():
		return d.Status1Validation
	case rec.IsStatus2():
		return d.Status2Validation
	default:
		return ""
	}
}
