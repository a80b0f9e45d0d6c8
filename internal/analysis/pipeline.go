package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"advancecli/pkg/contracts/domain"
)

// Pipeline runs the full derivation/validation flow over a pair of
// normalized period row sets.
type Pipeline struct {
	cfg         Config
	logger      *slog.Logger
	concurrency int
}

// NewPipeline creates a pipeline for one component/period context.
func NewPipeline(cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:         cfg,
		logger:      logger,
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// SetConcurrency bounds the composite-validation worker pool.
func (p *Pipeline) SetConcurrency(n int) {
	if n > 0 {
		p.concurrency = n
	}
}

// Run derives every field for the current-period rows: single-period
// features for both periods, the stable cross-period merge, then composite
// validation. Row order in the result equals current-period input order.
func (p *Pipeline) Run(ctx context.Context, current, prior []domain.AdvanceRecord) ([]Row, error) {
	p.logger.InfoContext(ctx, "starting advance analysis pipeline",
		slog.String("component", p.cfg.Component),
		slog.String("period", p.cfg.Period.String()),
		slog.Int("current_rows", len(current)),
		slog.Int("prior_rows", len(prior)))

	curRows := p.deriveSingle(current, CurrentPeriod)
	priRows := p.deriveSingle(prior, PriorPeriod)

	rows := Merge(curRows, priRows, p.logger)

	if err := p.validateComposite(ctx, rows); err != nil {
		return nil, fmt.Errorf("composite validation: %w", err)
	}

	p.logger.InfoContext(ctx, "pipeline complete", slog.Int("rows", len(rows)))
	return rows, nil
}

func (p *Pipeline) deriveSingle(records []domain.AdvanceRecord, side PeriodSide) []Row {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{Record: rec, Derived: p.cfg.DeriveFeatures(rec, side)}
	}
	return rows
}

// validateComposite fans composite validation out across rows. Rows are
// independent after the merge, so parallel evaluation cannot change results;
// each worker writes only its own index.
func (p *Pipeline) validateComposite(ctx context.Context, rows []Row) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i := range rows {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			p.validateRow(&rows[i])
			return nil
		})
	}
	return g.Wait()
}

// validateRow computes the composite fields for one row in dependency
// order. A panic anywhere in the cascade degrades the narrative fields to
// their error sentinels and leaves sibling rows untouched.
func (p *Pipeline) validateRow(row *Row) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("row validation panic",
				slog.String("join_key", row.Derived.JoinKey),
				slog.Any("panic", r))
			row.Derived.Status1Validation = errStatus1
			row.Derived.Status2Validation = errStatus2
			row.Derived.Comment = Comment(row.Record, row.Derived)
		}
	}()

	d := &row.Derived
	d.NullOrBlankFields = NullOrBlankFields(row.Record)
	d.ExplanationRequired = ExplanationRequired(row.Record, *d)
	d.AdvanceAfterPoP = AdvanceAfterPoP(row.Record, *d)
	d.StatusChanged = StatusChanged(row.Record, row.Comparative)
	d.LiquidationDateTest = p.cfg.LiquidationDateTest(row.Record, *d)
	d.LiquidationDelayDays = LiquidationDelayDays(row.Record, row.Comparative, *d)
	d.ValidStatus1 = ValidStatus1(row.Record, *d)
	d.ValidStatus2 = ValidStatus2(row.Record, *d)
	d.Status1Validation = Status1Validation(row.Record, *d)
	d.Status2Validation = Status2Validation(row.Record, *d)
	d.Comment = Comment(row.Record, *d)
}
