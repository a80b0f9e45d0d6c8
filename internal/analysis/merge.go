package analysis

import (
	"log/slog"

	"advancecli/pkg/contracts/domain"
)

// Row pairs a normalized record with its derived state as it moves through
// the pipeline stages.
type Row struct {
	Record      domain.AdvanceRecord
	Comparative domain.Comparative
	Derived     domain.Derived
}

// Merge left-joins current-period rows to prior-period rows on the join key.
// Only four prior-period fields are carried forward; unmatched current rows
// keep a zero Comparative, which is not an error. The join is stable: output
// order equals current-period input order.
//
// Join keys are assumed unique per period but not verified upstream. On a
// duplicate prior-period key the first occurrence in input order wins and
// the collision is logged, so fan-out can never occur.
func Merge(current []Row, prior []Row, logger *slog.Logger) []Row {
	if logger == nil {
		logger = slog.Default()
	}

	index := make(map[string]int, len(prior))
	for i, p := range prior {
		key := p.Derived.JoinKey
		if _, dup := index[key]; dup {
			logger.Warn("duplicate prior-period join key, keeping first match",
				slog.String("join_key", key),
				slog.Int("row", i))
			continue
		}
		index[key] = i
	}

	matched := 0
	out := make([]Row, len(current))
	for i, cur := range current {
		out[i] = cur
		if j, ok := index[cur.Derived.JoinKey]; ok {
			p := prior[j].Record
			out[i].Comparative = domain.Comparative{
				Matched:                    true,
				Status:                     p.Status,
				AdvanceDate:                p.AdvanceDate,
				LastActivityDate:           p.LastActivityDate,
				AnticipatedLiquidationDate: p.AnticipatedLiquidationDate,
			}
			matched++
		}
	}

	logger.Info("cross-period merge complete",
		slog.Int("current_rows", len(current)),
		slog.Int("prior_rows", len(prior)),
		slog.Int("matched", matched))

	return out
}
