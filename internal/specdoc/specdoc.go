// =============================================================================
// ordergen - Specification Document Assembler
// =============================================================================
//
// This module consumes metadata rows (identifier, title, page extent),
// derives each title's production specification, and emits one XML document
// per record plus a plain-text batch summary. The XML documents are bundled
// into a single zip archive named per record identifier; the summary is
// delivered alongside the archive.
//
// DOCUMENT SHAPE:
//   <productSpecification>
//     <identity>   identifier, title
//     <dimensions> trim width/height, spine size
//     <materials>  paper, binding, lamination
//     <pageExtent> sibling of the three blocks
//   </productSpecification>
//
// ERROR POLICY:
//   A row whose identifier is present but fails the 13-digit check blocks
//   generation entirely, reported with row number and offending value. A row
//   with an empty identifier is excluded from output and counted in the
//   summary's skip tally. Unlike the EDI path there is no graceful default
//   here: a wrong identifier names a wrong output document.
//
// =============================================================================

package specdoc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/printops/ordergen/internal/derive"
	"github.com/printops/ordergen/internal/normalize"
	"github.com/printops/ordergen/internal/schema"
	"github.com/printops/ordergen/internal/types"
)

// =============================================================================
// ERRORS
// =============================================================================

// IdentifierError rejects a metadata row whose identifier fails the
// 13-digit check. Generation is blocked until the input is corrected.
type IdentifierError struct {
	RowNumber int
	Value     string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("row %d: identifier %q is not a 13-digit ISSN/EAN", e.RowNumber, e.Value)
}

// ExtentError rejects a metadata row whose page extent is not a positive
// integer.
type ExtentError struct {
	RowNumber int
	Value     string
}

func (e *ExtentError) Error() string {
	return fmt.Sprintf("row %d: page extent %q is not a positive integer", e.RowNumber, e.Value)
}

// =============================================================================
// RECORD BUILDING
// =============================================================================

// MetadataRecord is one derived specification document.
type MetadataRecord struct {
	// Identifier is the normalized 13-digit identifier; it names the output
	// document and is unique within a batch.
	Identifier string

	// Title is the raw title text.
	Title string

	// Spec holds the derived and fixed physical attributes.
	Spec derive.Specification
}

// BatchResult is the outcome of building one metadata batch.
type BatchResult struct {
	Records []MetadataRecord

	// Skipped counts rows excluded for an empty identifier.
	Skipped int
}

// Build converts metadata rows into specification records.
//
// Rows with an empty identifier cell are skipped and tallied. Any non-empty
// identifier that fails the 13-digit check aborts the batch with an
// IdentifierError, as does a duplicate identifier: two records cannot share
// one output document name.
func Build(rows []types.SourceRow) (*BatchResult, error) {
	result := &BatchResult{}
	seen := make(map[string]int, len(rows))

	for _, row := range rows {
		raw := strings.TrimSpace(row.Get(schema.FieldISSN))
		if raw == "" {
			result.Skipped++
			continue
		}
		if !normalize.ValidIdentifier(raw) {
			return nil, &IdentifierError{RowNumber: row.Number, Value: raw}
		}

		id := normalize.Identifier(raw)
		if first, dup := seen[id]; dup {
			return nil, &IdentifierError{
				RowNumber: row.Number,
				Value:     fmt.Sprintf("%s (duplicate of row %d)", raw, first),
			}
		}
		seen[id] = row.Number

		extent, err := strconv.Atoi(strings.TrimSpace(row.Get(schema.FieldPageExtent)))
		if err != nil || extent <= 0 {
			return nil, &ExtentError{RowNumber: row.Number, Value: row.Get(schema.FieldPageExtent)}
		}

		result.Records = append(result.Records, MetadataRecord{
			Identifier: id,
			Title:      row.Get(schema.FieldTitle),
			Spec:       derive.ForExtent(extent),
		})
	}

	return result, nil
}

// =============================================================================
// XML ASSEMBLY
// =============================================================================

// Document renders one record as an XML specification document.
func Document(rec MetadataRecord) []byte {
	var b bytes.Buffer

	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<productSpecification>\n")

	b.WriteString("  <identity>\n")
	writeElement(&b, 2, "identifier", rec.Identifier)
	writeElement(&b, 2, "title", rec.Title)
	b.WriteString("  </identity>\n")

	b.WriteString("  <dimensions>\n")
	writeElement(&b, 2, "trimWidth", fmt.Sprintf("%dmm", rec.Spec.TrimWidthMM))
	writeElement(&b, 2, "trimHeight", fmt.Sprintf("%dmm", rec.Spec.TrimHeightMM))
	writeElement(&b, 2, "spineSize", fmt.Sprintf("%dmm", rec.Spec.SpineMM))
	b.WriteString("  </dimensions>\n")

	b.WriteString("  <materials>\n")
	writeElement(&b, 2, "paper", fmt.Sprintf("%dgsm", rec.Spec.GrammageGSM))
	writeElement(&b, 2, "binding", rec.Spec.Binding)
	writeElement(&b, 2, "lamination", rec.Spec.Lamination)
	b.WriteString("  </materials>\n")

	writeElement(&b, 1, "pageExtent", strconv.Itoa(rec.Spec.PageExtent))

	b.WriteString("</productSpecification>\n")
	return b.Bytes()
}

// DocumentName returns the output file name for a record, sanitized to
// filename-safe characters.
func DocumentName(rec MetadataRecord) string {
	return sanitizeFileName(rec.Identifier) + ".xml"
}

// writeElement writes one indented simple element with an escaped value.
func writeElement(b *bytes.Buffer, level int, name, value string) {
	b.WriteString(strings.Repeat("  ", level))
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(escapeXML(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">\n")
}

// escapeXML escapes the five reserved markup characters.
func escapeXML(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sanitizeFileName keeps letters, digits, '-' and '_'; everything else
// becomes '_'.
func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

// =============================================================================
// BUNDLING AND SUMMARY
// =============================================================================

// Bundle writes every record's XML document into one zip archive.
func Bundle(records []MetadataRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, rec := range records {
		f, err := w.Create(DocumentName(rec))
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", DocumentName(rec), err)
		}
		if _, err := f.Write(Document(rec)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", DocumentName(rec), err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Summary renders the plain-text batch report: one line per accepted record
// plus the totals and the skip tally.
func Summary(result *BatchResult, runID string, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Specification batch %s\n", runID)
	fmt.Fprintf(&b, "Generated %s\n\n", now.Format("2006-01-02 15:04:05"))

	for _, rec := range result.Records {
		fmt.Fprintf(&b, "%s  %-50s  %dgsm  spine %dmm  %d pages\n",
			rec.Identifier, truncate(rec.Title, 50), rec.Spec.GrammageGSM,
			rec.Spec.SpineMM, rec.Spec.PageExtent)
	}

	fmt.Fprintf(&b, "\nTotal: %d document(s)\n", len(result.Records))
	fmt.Fprintf(&b, "Skipped (no identifier): %d row(s)\n", result.Skipped)

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
