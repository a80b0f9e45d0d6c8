// Package analysis implements the advance-payment derivation and validation
// pipeline: join-key construction, single-period feature derivation, the
// stable cross-period left join, the composite validation rules, and final
// row assembly.
//
// Every derived field is a pure function of fields already present on the
// same logical row (plus, for composite fields, its matched prior-period
// row), so the evaluation order inside a row is the only ordering that
// matters. The pipeline honors that order; rows themselves are independent
// and composite validation fans out across a bounded worker pool.
//
// Narrative outputs reproduce the audit specification wording exactly,
// including em-dash clause separators. Do not reword them.
package analysis
