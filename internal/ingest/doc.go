// Package ingest loads DHS advance-analysis workbooks and normalizes their
// rows into domain records.
//
// A ledger extract arrives as an Excel workbook whose "4-Advance Analysis"
// sheet carries preamble rows above the real header. The loader promotes the
// header row by scanning column A for "TAS", de-duplicates repeated header
// names with an _<n> suffix, and maps either spelling of the secondary
// balance column (".1" or "_1" suffixed) onto the canonical name. The
// normalizer then coerces dates and amounts, drops rows without a TAS, and
// reports missing required columns as a batch-fatal schema error.
package ingest
