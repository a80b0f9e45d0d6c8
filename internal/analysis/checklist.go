package analysis

import (
	"strings"

	"advancecli/pkg/contracts/domain"
)

// NullOrBlankFields scans the fixed checklist in order and returns the names
// of columns that are null or whitespace-only. For Status-2 records missing
// the anticipated liquidation date the column name is appended even though
// it is not part of the base scan; downstream clauses only test for
// presence, so a duplicate entry is harmless and intentional.
func NullOrBlankFields(rec domain.AdvanceRecord) []string {
	var out []string
	for _, col := range checklistColumns {
		if fieldBlank(rec, col) {
			out = append(out, col)
		}
	}
	if rec.IsStatus2() && rec.AnticipatedLiquidationDate == nil {
		out = append(out, ColLiquidationDate)
	}
	return out
}

func fieldBlank(rec domain.AdvanceRecord, col string) bool {
	switch col {
	case ColTAS:
		return blank(rec.TAS)
	case ColSGL:
		return blank(rec.SGL)
	case ColDocNo:
		return blank(rec.DocumentNumber)
	case ColWCF:
		return blank(rec.WCFIndicator)
	case ColAdvance:
		return !rec.Advance.Valid
	case ColBalance:
		return !rec.Balance.Valid
	case ColLastActivityDate:
		return rec.LastActivityDate == nil
	case ColAdvanceDate:
		return rec.AdvanceDate == nil
	case ColAgeDays:
		return rec.AgeDays == nil
	case ColPoPEndDate:
		return rec.PoPEndDate == nil
	case ColStatus:
		return blank(rec.Status)
	case ColComments:
		return blank(rec.Comments)
	case ColVendor:
		return blank(rec.Vendor)
	case ColAdvanceType:
		return blank(rec.AdvanceType)
	default:
		return false
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// joinedBlanks renders the checklist result the way narratives embed it.
func joinedBlanks(fields []string) string {
	return strings.Join(fields, ", ")
}

// hasBlank reports whether a column name appears in the joined blank-field
// string. Substring matching is deliberate: it is how the audit rules test
// presence.
func hasBlank(fields []string, col string) bool {
	return strings.Contains(joinedBlanks(fields), col)
}

// containsChecklistColumn reports whether the joined blank-field string
// names any base checklist column. The synthesized liquidation-date entry
// alone does not satisfy this test.
func containsChecklistColumn(joined string) bool {
	for _, col := range checklistColumns {
		if strings.Contains(joined, col) {
			return true
		}
	}
	return false
}
