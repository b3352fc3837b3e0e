// =============================================================================
// ordergen - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - ingest
//   - order
//   - edi
//   - specdoc
//
// =============================================================================

package types

// SourceRow is one spreadsheet row after column-position resolution: an
// immutable mapping from canonical field key to the raw cell value. Rows are
// built once at load time, never mutated, and discarded at the end of a
// generation run.
type SourceRow struct {
	// Number is the 1-based row number in the source sheet, counting the
	// header row. Used for error reporting.
	Number int

	// Fields maps canonical field keys to raw cell values. Unmapped fields
	// are absent; Get treats them as empty.
	Fields map[string]string
}

// Get returns the raw value for a canonical field key, or "" if the key was
// never mapped for this run.
func (r SourceRow) Get(key string) string {
	return r.Fields[key]
}
