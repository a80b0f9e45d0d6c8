package analysis

import (
	"strings"

	"github.com/shopspring/decimal"

	"advancecli/pkg/contracts/domain"
)

// PeriodSide selects which balance column feeds the join key. Current-period
// extracts key on the primary balance; prior-period extracts key on the
// secondary balance, mirroring the source workbooks.
type PeriodSide int

const (
	CurrentPeriod PeriodSide = iota
	PriorPeriod
)

// BuildJoinKey derives the cross-period join key for a record: trimmed TAS,
// trimmed document number, then exactly one appended discriminator.
//
// For the balance-keyed components (SS, CBP, MGA, OIG, FEM) the
// discriminator is always the formatted balance. For every other component
// the precedence is: explicit secondary identifier, else the first non-empty
// keyword-matched cell (PONO/Item/Line/MDL), else the formatted balance.
func BuildJoinKey(rec domain.AdvanceRecord, component string, side PeriodSide) string {
	tas := strings.TrimSpace(rec.TAS)
	doc := strings.TrimSpace(rec.DocumentNumber)
	balance := FormatBalance(keyBalance(rec, side))

	if balanceKeyComponents[component] {
		return tas + doc + balance
	}
	if other := strings.TrimSpace(rec.OtherID); other != "" {
		return tas + doc + other
	}
	if kw := strings.TrimSpace(rec.KeywordValue); kw != "" {
		return tas + doc + kw
	}
	return tas + doc + balance
}

func keyBalance(rec domain.AdvanceRecord, side PeriodSide) decimal.NullDecimal {
	if side == PriorPeriod {
		return rec.Balance
	}
	return rec.Advance
}
