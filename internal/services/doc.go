// Package services contains the application layer: orchestration between
// workbook ingestion, the analysis pipeline, exporters, and the transport
// handlers that call them. Services own metrics and logging; handlers stay
// thin.
package services
