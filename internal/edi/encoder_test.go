package edi

import (
	"strings"
	"testing"
	"time"

	"github.com/printops/ordergen/internal/order"
	"github.com/printops/ordergen/internal/schema"
	"github.com/printops/ordergen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, time.March, 9, 14, 5, 30, 0, time.UTC)

func testSettings() Settings {
	return Settings{
		SenderCode:      "PRNT",
		Currency:        "GBP",
		PaymentTerms:    "NET30",
		DefaultQuantity: 1,
		BatchID:         42,
		FilePrefix:      "ORDERS",
	}
}

func orderRow(num int, fields map[string]string) types.SourceRow {
	return types.SourceRow{Number: num, Fields: fields}
}

func sampleOrders(t *testing.T) []*order.Order {
	t.Helper()
	rows := []types.SourceRow{
		orderRow(2, map[string]string{
			schema.FieldOrderRef:     "REF-001",
			schema.FieldISSN:         "977-1472645051",
			schema.FieldTitle:        "Journal of Fixtures",
			schema.FieldQuantity:     "25",
			schema.FieldDeliveryName: "Jo Bloggs",
			schema.FieldCompanyName:  "Acme Ltd",
			schema.FieldAddress1:     "1 High Street",
			schema.FieldAddress2:     "",
			schema.FieldAddress3:     "Westside",
			schema.FieldCountry:      "GB",
			schema.FieldPostCode:     "AB1 2CD",
		}),
		orderRow(3, map[string]string{
			schema.FieldOrderRef:     "REF-001",
			schema.FieldISSN:         "977-1472645052",
			schema.FieldTitle:        "Journal of Fixtures",
			schema.FieldQuantity:     "",
			schema.FieldDeliveryName: "Jo Bloggs",
			schema.FieldCompanyName:  "Acme Ltd",
			schema.FieldCountry:      "GB",
		}),
		orderRow(4, map[string]string{
			schema.FieldOrderRef:     "REF-002",
			schema.FieldISSN:         "9771472645053",
			schema.FieldTitle:        "Annals of Widgets",
			schema.FieldQuantity:     "5",
			schema.FieldDeliveryName: "Kim Smith",
			schema.FieldCompanyName:  "Bolt GmbH",
			schema.FieldCountry:      "DE",
		}),
	}

	orders := order.Group(rows)
	order.AssignNumbers(orders, order.Seed(testTime))
	return orders
}

func batchLines(t *testing.T, batch *Batch) []string {
	t.Helper()
	require.True(t, strings.HasSuffix(batch.Content, "\r\n"))
	return strings.Split(strings.TrimSuffix(batch.Content, "\r\n"), "\r\n")
}

func TestEncodeRecordWidths(t *testing.T) {
	batch := Encode(sampleOrders(t), testSettings(), testTime)
	lines := batchLines(t, batch)

	widths := map[string]int{
		"$$HDR": WidthHeaderMarker,
		"$$EOF": WidthFooterMarker,
		"OHD":   WidthOrderHeader,
		"ADR":   WidthAddress,
		"TRM":   WidthTerms,
		"OLI":   WidthLineItem,
	}

	for i, line := range lines {
		matched := false
		for tag, width := range widths {
			if strings.HasPrefix(line, tag) {
				assert.Len(t, line, width, "line %d (%s)", i, tag)
				matched = true
				break
			}
		}
		require.True(t, matched, "line %d has unknown tag: %q", i, line[:5])
	}
}

func TestEncodeFooterRecordCount(t *testing.T) {
	batch := Encode(sampleOrders(t), testSettings(), testTime)
	lines := batchLines(t, batch)

	// 2 orders: (OHD+ADR+TRM) x2 + 3 line items = 9 countable records.
	assert.Equal(t, 9, batch.RecordCount)
	assert.Len(t, lines, 11) // 9 records + 2 markers

	footer := lines[len(lines)-1]
	assert.Equal(t, "0000009", footer[WidthHeaderMarker:])
}

func TestEncodeEmptyBatch(t *testing.T) {
	batch := Encode(nil, testSettings(), testTime)
	lines := batchLines(t, batch)

	require.Len(t, lines, 2)
	assert.Equal(t, 0, batch.RecordCount)
	assert.True(t, strings.HasSuffix(lines[1], "0000000"))
}

func TestEncodeMarkerLayout(t *testing.T) {
	batch := Encode(nil, testSettings(), testTime)
	lines := batchLines(t, batch)

	header := lines[0]
	assert.Equal(t, "$$HDR", header[0:5])
	assert.Equal(t, "PRNT", header[5:9])
	assert.Equal(t, "  ", header[9:11])
	assert.Equal(t, "0000042", header[11:18])
	assert.Equal(t, "   ", header[18:21])
	assert.Equal(t, "20260309140530", header[21:35])

	footer := lines[1]
	assert.Equal(t, "$$EOF", footer[0:5])
	assert.Equal(t, header[5:35], footer[5:35])
}

func TestEncodeOrderNumbersSequential(t *testing.T) {
	batch := Encode(sampleOrders(t), testSettings(), testTime)
	lines := batchLines(t, batch)

	var headers []string
	for _, line := range lines {
		if strings.HasPrefix(line, "OHD") {
			headers = append(headers, line[3:14])
		}
	}
	require.Len(t, headers, 2)
	assert.Equal(t, "12603091405", headers[0])
	assert.Equal(t, "12603091406", headers[1])
}

func TestEncodeLineItemFields(t *testing.T) {
	batch := Encode(sampleOrders(t), testSettings(), testTime)
	lines := batchLines(t, batch)

	var items []string
	for _, line := range lines {
		if strings.HasPrefix(line, "OLI") {
			items = append(items, line)
		}
	}
	require.Len(t, items, 3)

	first := items[0]
	assert.Equal(t, "0001", first[14:18])          // line position
	assert.Equal(t, "9771472645051", first[18:31]) // normalized identifier
	assert.Equal(t, "000025", first[31:37])        // quantity
	assert.Equal(t, "0000000000", first[37:47])    // unit price always zero

	// Second item has no usable quantity: the batch default applies.
	second := items[1]
	assert.Equal(t, "0002", second[14:18])
	assert.Equal(t, "000001", second[31:37])
}

func TestEncodeAddressSlotSelection(t *testing.T) {
	batch := Encode(sampleOrders(t), testSettings(), testTime)
	lines := batchLines(t, batch)

	var addresses []string
	for _, line := range lines {
		if strings.HasPrefix(line, "ADR") {
			addresses = append(addresses, line)
		}
	}
	require.Len(t, addresses, 2)

	// Line 2 was empty, so line 3 folds into the second slot.
	first := addresses[0]
	assert.Equal(t, "1 High Street", strings.TrimRight(first[94:144], " "))
	assert.Equal(t, "Westside", strings.TrimRight(first[144:194], " "))
	assert.Equal(t, "GBR", first[194:197])
}

func TestEncodeUnknownCountryWarns(t *testing.T) {
	rows := []types.SourceRow{
		orderRow(2, map[string]string{
			schema.FieldOrderRef: "R1",
			schema.FieldCountry:  "XZ",
		}),
	}
	orders := order.Group(rows)
	order.AssignNumbers(orders, order.Seed(testTime))

	batch := Encode(orders, testSettings(), testTime)
	require.Len(t, batch.Warnings, 1)
	assert.Contains(t, batch.Warnings[0], `"XZ"`)
}

func TestEncodeOverlengthFieldsTruncate(t *testing.T) {
	rows := []types.SourceRow{
		orderRow(2, map[string]string{
			schema.FieldOrderRef: strings.Repeat("R", 50),
			schema.FieldTitle:    strings.Repeat("T", 300),
			schema.FieldCountry:  "GB",
		}),
	}
	orders := order.Group(rows)
	order.AssignNumbers(orders, order.Seed(testTime))

	batch := Encode(orders, testSettings(), testTime)
	for _, line := range batchLines(t, batch) {
		if strings.HasPrefix(line, "OHD") {
			assert.Len(t, line, WidthOrderHeader)
		}
		if strings.HasPrefix(line, "OLI") {
			assert.Len(t, line, WidthLineItem)
		}
	}
}

func TestFileName(t *testing.T) {
	got := FileName(testSettings(), testTime)
	assert.Equal(t, "ORDERS.42_1405_(09-03-26).txt", got)
}

func TestPadPrimitives(t *testing.T) {
	assert.Equal(t, "abc  ", padRight("abc", 5))
	assert.Equal(t, "abcde", padRight("abcdefg", 5))
	assert.Equal(t, "00012", padLeft("12", 5, '0'))
	assert.Equal(t, "12345", padLeft("1234567", 5, '0'))
	assert.Equal(t, "     ", padRight("", 5))
}
