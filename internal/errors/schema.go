package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// SchemaError reports a workbook whose sheet cannot be analyzed: required
// columns are missing or the header row was never found. It is batch-fatal;
// the pipeline refuses partial output rather than producing misaligned
// derivations.
type SchemaError struct {
	Sheet          string   `json:"sheet"`
	MissingColumns []string `json:"missing_columns,omitempty"`
	Reason         string   `json:"reason,omitempty"`
}

func (e *SchemaError) Error() string {
	if len(e.MissingColumns) > 0 {
		return fmt.Sprintf("sheet %q is missing required columns: %s",
			e.Sheet, strings.Join(e.MissingColumns, ", "))
	}
	return fmt.Sprintf("sheet %q has an unusable schema: %s", e.Sheet, e.Reason)
}

// MissingColumnsError builds a SchemaError for absent required columns.
func MissingColumnsError(sheet string, cols []string) *SchemaError {
	return &SchemaError{Sheet: sheet, MissingColumns: cols}
}

// SchemaReasonError builds a SchemaError for a structural problem other than
// missing columns.
func SchemaReasonError(sheet, format string, args ...interface{}) *SchemaError {
	return &SchemaError{Sheet: sheet, Reason: fmt.Sprintf(format, args...)}
}

// APIFromSchema converts a schema failure into its transport representation.
func APIFromSchema(e *SchemaError) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "SCHEMA_ERROR", "Workbook schema is not analyzable", e)
}
