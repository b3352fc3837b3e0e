// =============================================================================
// ordergen - Schema Templates and Validator
// =============================================================================
//
// This module owns the canonical input schemas (the exact ordered header
// sequences of the order sheet and the metadata sheet) and the all-or-nothing
// validator that gates every generation run.
//
// Downstream field-position assignment is purely positional once validation
// passes: a single column transposition would silently corrupt every derived
// record. Strictness here is a correctness requirement, not a usability
// nicety, which is why a single failing position rejects the entire input
// with no partial acceptance and no auto-repair.
//
// =============================================================================

package schema

import (
	"fmt"
	"strings"
)

// =============================================================================
// CANONICAL FIELD KEYS
// =============================================================================

// Canonical field keys. SourceRow values are keyed by these, never by the
// literal sheet headers.
const (
	FieldOrderRef     = "order_ref"
	FieldISSN         = "issn"
	FieldTitle        = "title"
	FieldVolumeNumber = "volume_number"
	FieldVolumePart   = "volume_part"
	FieldYear         = "year"
	FieldQuantity     = "quantity"
	FieldDeliveryName = "delivery_name"
	FieldCompanyName  = "company_name"
	FieldAddress1     = "address_line_1"
	FieldAddress2     = "address_line_2"
	FieldAddress3     = "address_line_3"
	FieldCountry      = "country"
	FieldPostCode     = "post_code"
	FieldTelephone    = "telephone"
	FieldEmail        = "email"
	FieldPageExtent   = "page_extent"
)

// =============================================================================
// CANONICAL TEMPLATES
// =============================================================================

// orderHeaders is the exact header sequence of the order input sheet, in
// column order. Several headers carry doubled or trailing spaces exactly as
// the upstream export produces them; validation is byte-exact on purpose.
var orderHeaders = []string{
	"Order Ref",
	"ISSN",
	"Journal/ Issue  Title",
	"Volume Number ",
	"Volume Part",
	"Year",
	"Quantity",
	"Delivery Name ",
	"Delivery Company name",
	"Delivery address line 1",
	"Delivery address line 2",
	"Delivery address line 3",
	"Delivery Country",
	"Post code",
	"Telephone number ",
	"Email address",
}

// orderFieldKeys maps each order template position to its canonical field
// key, in the same order as orderHeaders.
var orderFieldKeys = []string{
	FieldOrderRef,
	FieldISSN,
	FieldTitle,
	FieldVolumeNumber,
	FieldVolumePart,
	FieldYear,
	FieldQuantity,
	FieldDeliveryName,
	FieldCompanyName,
	FieldAddress1,
	FieldAddress2,
	FieldAddress3,
	FieldCountry,
	FieldPostCode,
	FieldTelephone,
	FieldEmail,
}

// metadataHeaders is the exact header sequence of the metadata input sheet.
var metadataHeaders = []string{
	"ISSN",
	"Title",
	"Page Extent",
}

var metadataFieldKeys = []string{
	FieldISSN,
	FieldTitle,
	FieldPageExtent,
}

// Template is one canonical input schema: the ordered expected headers and
// the canonical field key behind each position.
type Template struct {
	Name      string
	Headers   []string
	FieldKeys []string
}

// OrderTemplate returns the 16-column order sheet schema.
func OrderTemplate() Template {
	return Template{Name: "order", Headers: orderHeaders, FieldKeys: orderFieldKeys}
}

// MetadataTemplate returns the 3-column metadata sheet schema.
func MetadataTemplate() Template {
	return Template{Name: "metadata", Headers: metadataHeaders, FieldKeys: metadataFieldKeys}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Mismatch is one failing header position in a schema comparison.
type Mismatch struct {
	// Position is the 1-based column position.
	Position int

	// Expected is the template header at this position, or "(unexpected)"
	// when the actual sequence is longer than the template.
	Expected string

	// Actual is the header found at this position, or "(missing)" when the
	// actual sequence is shorter than the template.
	Actual string
}

// SchemaError rejects an input whose header sequence does not exactly match
// the canonical template. Every mismatched position is reported together;
// checks are not short-circuited.
type SchemaError struct {
	Template   string
	Mismatches []Mismatch
}

// Error implements the error interface, listing every mismatched position.
func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s sheet headers do not match the expected template (%d mismatch(es))",
		e.Template, len(e.Mismatches))
	for _, m := range e.Mismatches {
		fmt.Fprintf(&b, "\n  column %d: expected %q, got %q", m.Position, m.Expected, m.Actual)
	}
	return b.String()
}

// Validate compares an actual header sequence against a template. Headers
// must match exactly, including trailing whitespace and punctuation, at
// every position present in either sequence. A nil return means the input
// passed; otherwise the returned *SchemaError carries every mismatch.
func Validate(actual []string, tmpl Template) error {
	var mismatches []Mismatch

	n := len(tmpl.Headers)
	if len(actual) > n {
		n = len(actual)
	}

	for i := 0; i < n; i++ {
		expected := "(unexpected)"
		if i < len(tmpl.Headers) {
			expected = tmpl.Headers[i]
		}
		got := "(missing)"
		if i < len(actual) {
			got = actual[i]
		}
		if expected != got {
			mismatches = append(mismatches, Mismatch{Position: i + 1, Expected: expected, Actual: got})
		}
	}

	if len(mismatches) > 0 {
		return &SchemaError{Template: tmpl.Name, Mismatches: mismatches}
	}
	return nil
}

// =============================================================================
// FIELD MAPPING
// =============================================================================

// Unmapped marks a canonical field with no source column.
const Unmapped = -1

// FieldMapping maps canonical field keys to source column indexes. Built
// once at load time; read-only during generation.
type FieldMapping map[string]int

// headerAliases maps loosely-normalized header text to canonical field keys,
// for sheets whose headers drifted from the canonical template but were
// operator-approved. Lookup happens only after an exact match fails.
var headerAliases = map[string]string{
	"order ref":               FieldOrderRef,
	"order reference":         FieldOrderRef,
	"issn":                    FieldISSN,
	"ean":                     FieldISSN,
	"journal/ issue title":    FieldTitle,
	"journal title":           FieldTitle,
	"title":                   FieldTitle,
	"volume number":           FieldVolumeNumber,
	"volume part":             FieldVolumePart,
	"year":                    FieldYear,
	"quantity":                FieldQuantity,
	"qty":                     FieldQuantity,
	"delivery name":           FieldDeliveryName,
	"delivery company name":   FieldCompanyName,
	"company":                 FieldCompanyName,
	"delivery address line 1": FieldAddress1,
	"delivery address line 2": FieldAddress2,
	"delivery address line 3": FieldAddress3,
	"delivery country":        FieldCountry,
	"country":                 FieldCountry,
	"post code":               FieldPostCode,
	"postcode":                FieldPostCode,
	"telephone number":        FieldTelephone,
	"phone":                   FieldTelephone,
	"email address":           FieldEmail,
	"email":                   FieldEmail,
	"page extent":             FieldPageExtent,
	"extent":                  FieldPageExtent,
}

// ResolveColumns builds a FieldMapping from an actual header sequence.
// Exact template matches win; otherwise an alias lookup on the
// whitespace-collapsed, lowercased header is attempted. Fields with no
// matching column map to Unmapped.
func ResolveColumns(actual []string, tmpl Template) FieldMapping {
	mapping := make(FieldMapping, len(tmpl.FieldKeys))
	for _, key := range tmpl.FieldKeys {
		mapping[key] = Unmapped
	}

	for col, header := range actual {
		key, ok := matchHeader(header, tmpl)
		if !ok {
			continue
		}
		// First matching column wins.
		if mapping[key] == Unmapped {
			mapping[key] = col
		}
	}

	return mapping
}

// matchHeader resolves one header string to a canonical field key.
func matchHeader(header string, tmpl Template) (string, bool) {
	for i, expected := range tmpl.Headers {
		if header == expected {
			return tmpl.FieldKeys[i], true
		}
	}
	if key, ok := headerAliases[collapse(header)]; ok {
		return key, true
	}
	return "", false
}

// collapse lowercases and collapses runs of whitespace to single spaces.
func collapse(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
