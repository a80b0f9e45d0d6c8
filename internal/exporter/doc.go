// Package exporter renders assembled review tables to disk.
//
// Two formats are supported: CSV with a UTF-8 BOM so Excel opens the file
// correctly, and a native xlsx workbook whose review sheet reviewers annotate
// directly. Both writers take the assembled table as-is; all cell formatting
// decisions belong to the analysis package.
package exporter
