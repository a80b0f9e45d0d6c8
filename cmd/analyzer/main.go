// Command analyzer runs one advance analysis from the command line: it reads
// the current and prior period workbooks, derives every review field, and
// writes the assembled table as CSV or xlsx.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"advancecli/internal/config"
	"advancecli/internal/fiscal"
	"advancecli/internal/infrastructure"
	"advancecli/internal/services"
)

func main() {
	currentPath := flag.String("current", "", "current-period workbook (.xlsx), required")
	priorPath := flag.String("prior", "", "prior-period workbook (.xlsx), optional")
	component := flag.String("component", "", "DHS component code, e.g. WMD or CBP, required")
	periodTag := flag.String("period", "", `fiscal period tag, e.g. "FY25 Q2", required`)
	out := flag.String("out", "advance-analysis.csv", "output file path")
	format := flag.String("format", "csv", "output format: csv or xlsx")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger := infrastructure.MustInitializeLogger(config.LoggingConfig{
		Level:  *logLevel,
		Format: "text",
		Output: "console",
	})

	if *currentPath == "" || *component == "" || *periodTag == "" {
		fmt.Fprintln(os.Stderr, "analyzer: -current, -component and -period are required")
		flag.Usage()
		os.Exit(2)
	}

	period, err := fiscal.Parse(*periodTag)
	if err != nil {
		logger.Error("Invalid period tag", slog.String("error", err.Error()))
		os.Exit(2)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())
	svc := services.NewAnalysisService(nil, nil, logger)

	result, err := svc.Analyze(ctx, services.Request{
		Component:   *component,
		Period:      period,
		CurrentPath: *currentPath,
		PriorPath:   *priorPath,
	})
	if err != nil {
		logger.Error("Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := svc.Export(ctx, result.Table, *out, *format); err != nil {
		logger.Error("Export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Analysis written",
		slog.String("out", *out),
		slog.Int("rows", result.RowCount),
		slog.Int("matched", result.Matched),
		slog.Int("dropped", result.Dropped))
}
