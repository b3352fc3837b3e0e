// =============================================================================
// ordergen - Fixed-Width Record Encoder
// =============================================================================
//
// This module renders a batch of Orders into the positional text file the
// print supplier's EDI intake consumes. Every byte position is a contract
// with that system, so each record type has a fixed total width and every
// field sits at an exact offset:
//
//   $$HDR marker        35 chars
//   OHD  OrderHeader   350 chars
//   ADR  AddressRecord 358 chars
//   TRM  TermsRecord    20 chars
//   OLI  LineItemRecord 266 chars (one per line item)
//   $$EOF marker        42 chars (carries the record count)
//
// Lines are CRLF-joined ASCII. The footer's record count covers exactly the
// OHD+ADR+TRM+OLI lines, excluding the two markers: the receiving system's
// own counter does not count markers, and this encoder must match that
// convention bit-for-bit.
//
// Two composition primitives build every record: right-pad-truncate for text
// slots and left-pad-truncate (fill '0') for numeric slots. Over-length
// values truncate; under-length values pad. All text passes through ASCII
// sanitization first so the character count can never drift from the byte
// count.
//
// =============================================================================

package edi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/printops/ordergen/internal/normalize"
	"github.com/printops/ordergen/internal/order"
	"github.com/printops/ordergen/internal/schema"
)

// =============================================================================
// SETTINGS
// =============================================================================

// Settings carries every batch-level value the encoder needs. It is passed
// explicitly as one argument; nothing is read from ambient state mid-encode.
type Settings struct {
	// SenderCode is the 4-character sender identity in the batch markers.
	SenderCode string

	// Currency is the 3-letter currency code on every order header.
	Currency string

	// PaymentTerms is the terms code on every terms record.
	PaymentTerms string

	// DefaultQuantity replaces a line item quantity that is missing or not a
	// positive integer. The row is never failed for a bad quantity.
	DefaultQuantity int

	// BatchID identifies the batch in the markers and the output file name.
	BatchID int

	// FilePrefix is the leading component of the output file name.
	FilePrefix string
}

// =============================================================================
// RECORD WIDTHS
// =============================================================================

// Total record widths, fixed by the receiving system.
const (
	WidthHeaderMarker = 35
	WidthOrderHeader  = 350
	WidthAddress      = 358
	WidthTerms        = 20
	WidthLineItem     = 266
	WidthFooterMarker = 42
)

// Record tags.
const (
	tagHeaderMarker = "$$HDR"
	tagFooterMarker = "$$EOF"
	tagOrderHeader  = "OHD"
	tagAddress      = "ADR"
	tagTerms        = "TRM"
	tagLineItem     = "OLI"
)

// =============================================================================
// BATCH ENCODING
// =============================================================================

// Batch is the rendered output of one generation run.
type Batch struct {
	// Content is the full CRLF-joined record stream, markers included.
	Content string

	// RecordCount is the number of OHD+ADR+TRM+OLI records emitted, as
	// reported in the footer marker. Markers are excluded.
	RecordCount int

	// Warnings collects non-fatal encoding notes, currently unrecognized
	// 2-letter country codes passed through as non-ISO 3-character values.
	Warnings []string
}

// Encode renders the full batch: header marker, one block of
// (OHD, ADR, TRM, OLI...) per order, footer marker. The timestamp must be
// the run's single wall-clock reading.
func Encode(orders []*order.Order, settings Settings, now time.Time) *Batch {
	batch := &Batch{}
	lines := make([]string, 0, 2+len(orders)*4)

	lines = append(lines, marker(tagHeaderMarker, settings, now))

	for _, o := range orders {
		lines = append(lines, encodeOrderHeader(o, settings, now))
		lines = append(lines, encodeAddress(o, batch))
		lines = append(lines, encodeTerms(o, settings))
		for _, item := range o.Items {
			lines = append(lines, encodeLineItem(o, item, settings))
		}
		batch.RecordCount += 3 + len(o.Items)
	}

	lines = append(lines, marker(tagFooterMarker, settings, now)+padLeft(strconv.Itoa(batch.RecordCount), 7, '0'))

	batch.Content = strings.Join(lines, "\r\n") + "\r\n"
	return batch
}

// FileName builds the output file name: {prefix}.{batchId}_{HHMM}_({DD-MM-YY}).txt
func FileName(settings Settings, now time.Time) string {
	return fmt.Sprintf("%s.%d_%s_(%s).txt",
		settings.FilePrefix, settings.BatchID, now.Format("1504"), now.Format("02-01-06"))
}

// =============================================================================
// RECORD BUILDERS
// =============================================================================

// marker renders the shared layout of both batch markers: 5-char tag,
// 4-char sender code, 2 spaces, 7-char zero-padded batch id, 3 spaces,
// 14-char timestamp. The footer appends its record count separately.
func marker(tag string, settings Settings, now time.Time) string {
	return tag +
		padRight(settings.SenderCode, 4) +
		"  " +
		padLeft(strconv.Itoa(settings.BatchID), 7, '0') +
		"   " +
		now.Format("20060102150405")
}

// encodeOrderHeader renders one 350-char OHD record.
func encodeOrderHeader(o *order.Order, settings Settings, now time.Time) string {
	row := o.First
	return tagOrderHeader +
		orderNumber(o) +
		padRight(clean(o.Reference()), 20) +
		now.Format("20060102") +
		padRight(clean(settings.Currency), 3) +
		padRight(clean(row.Get(schema.FieldDeliveryName)), 40) +
		padRight(clean(row.Get(schema.FieldTitle)), 100) +
		padRight(clean(row.Get(schema.FieldVolumeNumber)), 10) +
		padRight(clean(row.Get(schema.FieldVolumePart)), 10) +
		padRight(clean(row.Get(schema.FieldYear)), 4) +
		strings.Repeat(" ", 141)
}

// encodeAddress renders one 358-char ADR record. Unrecognized country codes
// are passed through padded but recorded as batch warnings.
func encodeAddress(o *order.Order, batch *Batch) string {
	row := o.First

	line1, line2 := addressSlots(
		row.Get(schema.FieldAddress1),
		row.Get(schema.FieldAddress2),
		row.Get(schema.FieldAddress3),
	)

	country, recognized := normalize.Country(row.Get(schema.FieldCountry))
	if !recognized {
		batch.Warnings = append(batch.Warnings, fmt.Sprintf(
			"order %d: country code %q not in the alpha-3 table; passed through as %q",
			o.Number, row.Get(schema.FieldCountry), country))
	}

	return tagAddress +
		orderNumber(o) +
		padRight(clean(row.Get(schema.FieldDeliveryName)), 40) +
		padRight(clean(row.Get(schema.FieldCompanyName)), 40) +
		padRight(clean(line1), 50) +
		padRight(clean(line2), 50) +
		country +
		padRight(clean(row.Get(schema.FieldPostCode)), 12) +
		padRight(clean(row.Get(schema.FieldTelephone)), 20) +
		padRight(clean(row.Get(schema.FieldEmail)), 60) +
		strings.Repeat(" ", 69)
}

// encodeTerms renders one 20-char TRM record.
func encodeTerms(o *order.Order, settings Settings) string {
	return tagTerms +
		orderNumber(o) +
		padRight(clean(settings.PaymentTerms), 6)
}

// encodeLineItem renders one 266-char OLI record. The unit-price slot is
// always zero: no pricing data exists in the input domain, and the slot is
// kept only because the receiving layout demands it.
func encodeLineItem(o *order.Order, item order.LineItem, settings Settings) string {
	return tagLineItem +
		orderNumber(o) +
		padLeft(strconv.Itoa(item.Position), 4, '0') +
		normalize.Identifier(item.Row.Get(schema.FieldISSN)) +
		padLeft(strconv.Itoa(quantity(item, settings)), 6, '0') +
		padLeft("0", 10, '0') +
		padRight(clean(item.Row.Get(schema.FieldTitle)), 100) +
		strings.Repeat(" ", 119)
}

// =============================================================================
// FIELD HELPERS
// =============================================================================

// orderNumber renders the 11-digit order number slot.
func orderNumber(o *order.Order) string {
	return padLeft(strconv.FormatInt(o.Number, 10), 11, '0')
}

// quantity parses the row quantity, falling back to the batch default when
// the value is missing or not a positive integer.
func quantity(item order.LineItem, settings Settings) int {
	raw := strings.TrimSpace(item.Row.Get(schema.FieldQuantity))
	if q, err := strconv.Atoi(raw); err == nil && q > 0 {
		return q
	}
	return settings.DefaultQuantity
}

// addressSlots selects the first two non-empty lines from the three
// delivery address lines, in order. Missing slots come back empty.
func addressSlots(lines ...string) (string, string) {
	nonEmpty := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	nonEmpty = append(nonEmpty, "", "")
	return nonEmpty[0], nonEmpty[1]
}

// clean sanitizes one text value for positional output.
func clean(s string) string {
	return normalize.ASCII(s)
}

// =============================================================================
// COMPOSITION PRIMITIVES
// =============================================================================

// padRight coerces a value to exactly n characters, truncating when longer
// and right-padding with spaces when shorter.
func padRight(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat(" ", n-len(s))
}

// padLeft coerces a value to exactly n characters, truncating when longer
// and left-padding with the fill character when shorter. Used for all
// numeric and count slots with fill '0'.
func padLeft(s string, n int, fill byte) string {
	if len(s) >= n {
		return s[:n]
	}
	return strings.Repeat(string(fill), n-len(s)) + s
}
