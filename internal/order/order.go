// =============================================================================
// ordergen - Row Grouping and Order Numbering
// =============================================================================
//
// This module folds validated source rows into Orders (one shipment-level
// grouping of line items sharing consignee identity) and assigns each Order
// a batch-unique number derived from the run's single wall-clock reading.
//
// GROUPING:
//   Rows sharing a composite key of (order reference, company name, delivery
//   name) fold into one Order with multiple line items. Rows without an
//   order reference never group with anything, including each other. Orders
//   appear in the output in first-row order, never re-sorted.
//
// NUMBERING:
//   The batch seed is the fixed leading digit "1" followed by YYMMDDHHMM of
//   the generation timestamp, read as one integer. Order n receives seed + n.
//   Two batches generated in different calendar minutes can never collide;
//   two batches generated in the same minute may. That is an accepted,
//   documented limitation of the scheme, not a defect.
//
// =============================================================================

package order

import (
	"fmt"
	"strconv"
	"time"

	"github.com/printops/ordergen/internal/schema"
	"github.com/printops/ordergen/internal/types"
)

// =============================================================================
// DATA STRUCTURES
// =============================================================================

// LineItem is one quantity-bearing unit within an Order.
type LineItem struct {
	// Position is the 1-based, contiguous position within the parent Order.
	Position int

	// Row is the source row this item was built from.
	Row types.SourceRow
}

// Order is one shipment-level grouping of line items. The address fields of
// an Order are taken from its first constituent row.
type Order struct {
	// Number is the assigned order number. Zero until AssignNumbers runs.
	Number int64

	// Key is the composite grouping key this Order was folded under.
	Key string

	// First is the first constituent row; it supplies the Order's reference
	// and address fields.
	First types.SourceRow

	// Items holds the Order's line items in row order. Never empty.
	Items []LineItem
}

// Reference returns the Order's customer reference.
func (o *Order) Reference() string {
	return o.First.Get(schema.FieldOrderRef)
}

// =============================================================================
// ROW GROUPING ENGINE
// =============================================================================

// Group partitions rows into Orders, preserving first-appearance order of
// each distinct group key.
//
// A row with a non-empty order reference gets the composite key
// reference|company|contact; repeat occurrences of the same key append a
// line item to the existing Order. A row with an empty reference gets a key
// unique to itself and always becomes a single-item Order, even when its
// company and contact match another reference-less row. Two rows with the
// same reference but different company or contact deliberately become
// different Orders: an address mismatch must never silently merge shipments.
func Group(rows []types.SourceRow) []*Order {
	orders := make([]*Order, 0, len(rows))
	byKey := make(map[string]*Order, len(rows))

	for _, row := range rows {
		key := groupKey(row)

		existing, ok := byKey[key]
		if !ok {
			o := &Order{Key: key, First: row}
			o.Items = append(o.Items, LineItem{Position: 1, Row: row})
			byKey[key] = o
			orders = append(orders, o)
			continue
		}

		existing.Items = append(existing.Items, LineItem{
			Position: len(existing.Items) + 1,
			Row:      row,
		})
	}

	return orders
}

// groupKey computes the composite grouping key for one row. The separator
// cannot appear in cell values that survive sanitization, so distinct field
// triples never collide into one key.
func groupKey(row types.SourceRow) string {
	ref := row.Get(schema.FieldOrderRef)
	if ref == "" {
		// Reference-less rows never group with any other row.
		return fmt.Sprintf("\x00row:%d", row.Number)
	}
	return ref + "\x1f" + row.Get(schema.FieldCompanyName) + "\x1f" + row.Get(schema.FieldDeliveryName)
}

// =============================================================================
// ORDER NUMBERING SEQUENCER
// =============================================================================

// seedLeadingDigit prefixes every batch seed, keeping all order numbers a
// fixed 11 digits regardless of date.
const seedLeadingDigit = "1"

// Seed derives the batch order-number seed from the generation timestamp:
// the fixed leading digit followed by the 10 timestamp digits YYMMDDHHMM,
// parsed as an integer.
//
// The timestamp must be captured once at run entry and never recomputed
// mid-run, so all order numbers within one batch stay internally consistent.
func Seed(now time.Time) int64 {
	seed, err := strconv.ParseInt(seedLeadingDigit+now.Format("0601021504"), 10, 64)
	if err != nil {
		// Unreachable: the formatted timestamp is always 10 digits.
		panic(fmt.Sprintf("order: invalid seed timestamp: %v", err))
	}
	return seed
}

// AssignNumbers gives each Order seed + index in first-appearance order,
// producing a strictly increasing sequence with step 1.
func AssignNumbers(orders []*Order, seed int64) {
	for i, o := range orders {
		o.Number = seed + int64(i)
	}
}
