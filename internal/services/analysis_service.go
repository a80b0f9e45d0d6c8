package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"advancecli/internal/analysis"
	"advancecli/internal/config"
	"advancecli/internal/exporter"
	"advancecli/internal/fiscal"
	"advancecli/internal/infrastructure"
	"advancecli/internal/ingest"
	"advancecli/pkg/contracts/domain"
)

// Request identifies one analysis run: the review context plus where the two
// period workbooks come from.
type Request struct {
	Component string
	Period    fiscal.Period

	// Exactly one source pair is used; readers win when both are set.
	CurrentPath   string
	PriorPath     string
	CurrentReader io.Reader
	PriorReader   io.Reader
}

// RunResult carries everything a caller may want from a finished run.
type RunResult struct {
	Table      analysis.Table
	Rows       []domain.AnalyzedRow
	Dropped    int
	PriorRows  int
	RowCount   int
	Matched    int
	DurationMS int64
}

// AnalysisService orchestrates ingest, derivation and export for one
// deployment.
type AnalysisService struct {
	paths       *config.PathsConfig
	metrics     *Metrics
	logger      *slog.Logger
	concurrency int

	csv  *exporter.CSVWriter
	xlsx *exporter.XLSXWriter
}

// NewAnalysisService wires the service with its exporters and metrics.
func NewAnalysisService(cfg *config.Config, metrics *Metrics, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	var paths *config.PathsConfig
	concurrency := 0
	if cfg != nil {
		paths = &cfg.Paths
		concurrency = cfg.Analysis.Concurrency
	}
	return &AnalysisService{
		paths:       paths,
		metrics:     metrics,
		logger:      logger,
		concurrency: concurrency,
		csv:         exporter.NewCSVWriter(paths),
		xlsx:        exporter.NewXLSXWriter(paths),
	}
}

// Analyze runs the full pipeline for one request. A missing prior-period
// source is allowed; every current row is then unmatched and the comparative
// fields stay null.
func (s *AnalysisService) Analyze(ctx context.Context, req Request) (*RunResult, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	logger := s.logger.With(
		slog.String("component", req.Component),
		slog.String("period", req.Period.String()))
	start := time.Now()

	result, err := s.analyze(ctx, req, logger)
	elapsed := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
	}
	if s.metrics != nil {
		rows, matched, dropped := 0, 0, 0
		if result != nil {
			rows, matched, dropped = result.RowCount, result.Matched, result.Dropped
		}
		s.metrics.ObserveRun(req.Component, status, elapsed.Seconds(), rows, matched, dropped)
	}
	if err != nil {
		logger.ErrorContext(ctx, "analysis run failed",
			slog.Duration("elapsed", elapsed), slog.Any("error", err))
		return nil, err
	}

	result.DurationMS = elapsed.Milliseconds()
	logger.InfoContext(ctx, "analysis run complete",
		slog.Int("rows", result.RowCount),
		slog.Int("matched", result.Matched),
		slog.Int("dropped", result.Dropped),
		slog.Duration("elapsed", elapsed))
	return result, nil
}

func (s *AnalysisService) analyze(ctx context.Context, req Request, logger *slog.Logger) (*RunResult, error) {
	current, currentDropped, err := s.loadPeriod(req.CurrentReader, req.CurrentPath, logger)
	if err != nil {
		return nil, fmt.Errorf("current period: %w", err)
	}

	var prior []domain.AdvanceRecord
	priorDropped := 0
	if req.PriorReader != nil || req.PriorPath != "" {
		prior, priorDropped, err = s.loadPeriod(req.PriorReader, req.PriorPath, logger)
		if err != nil {
			return nil, fmt.Errorf("prior period: %w", err)
		}
	} else {
		logger.WarnContext(ctx, "no prior-period workbook supplied, comparative fields will be null")
	}

	pipeline := analysis.NewPipeline(analysis.Config{
		Component: req.Component,
		Period:    req.Period,
	}, logger)
	if s.concurrency > 0 {
		pipeline.SetConcurrency(s.concurrency)
	}

	rows, err := pipeline.Run(ctx, current, prior)
	if err != nil {
		return nil, err
	}

	matched := 0
	for i := range rows {
		if rows[i].Comparative.Matched {
			matched++
		}
	}

	return &RunResult{
		Table:     analysis.Assemble(rows),
		Rows:      analysis.Analyzed(rows),
		Dropped:   currentDropped + priorDropped,
		PriorRows: len(prior),
		RowCount:  len(rows),
		Matched:   matched,
	}, nil
}

func (s *AnalysisService) loadPeriod(r io.Reader, path string, logger *slog.Logger) ([]domain.AdvanceRecord, int, error) {
	var sheet *ingest.Sheet
	var err error
	switch {
	case r != nil:
		sheet, err = ingest.LoadWorkbookReader(r, logger)
	case path != "":
		if s.paths != nil {
			path = s.paths.DataPath(path)
		}
		sheet, err = ingest.LoadWorkbook(path, logger)
	default:
		return nil, 0, fmt.Errorf("no workbook source supplied")
	}
	if err != nil {
		return nil, 0, err
	}

	res, err := ingest.Normalize(sheet, logger)
	if err != nil {
		return nil, 0, err
	}
	return res.Records, res.Dropped, nil
}

// Export writes an assembled table in the requested format, "csv" or "xlsx".
func (s *AnalysisService) Export(ctx context.Context, table analysis.Table, out, format string) error {
	switch format {
	case "", "csv":
		return s.csv.WriteTable(out, table)
	case "xlsx":
		return s.xlsx.WriteTable(out, table)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
