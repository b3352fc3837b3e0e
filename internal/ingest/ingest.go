// =============================================================================
// ordergen - Input Ingestion
// =============================================================================
//
// This module reads order and metadata sheets from disk into the raw table
// shape the core consumes: an ordered header sequence plus rows of cells.
// CSV and XLSX are supported; the format is chosen by file extension.
//
// Ingestion stays deliberately dumb. No validation, no normalization: the
// schema validator gates the table, and the normalizers canonicalize cell
// values later in the pipeline.
//
// =============================================================================

package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/printops/ordergen/internal/schema"
	"github.com/printops/ordergen/internal/types"
)

// Table is one sheet read from disk: the header row and the data rows
// beneath it, as raw cell text.
type Table struct {
	// Headers is the first row of the sheet.
	Headers []string

	// Rows holds the data rows in sheet order. Each row is padded or
	// truncated to the header width.
	Rows [][]string
}

// Read loads a sheet from disk, dispatching on the file extension.
// Supported: .csv, .xlsx.
func Read(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

// BuildRows converts a table's data rows into SourceRows using a resolved
// field mapping. Row numbers are 1-based counting the header row, so the
// first data row is row 2. Rows whose cells are all empty are dropped.
func BuildRows(table *Table, mapping schema.FieldMapping) []types.SourceRow {
	rows := make([]types.SourceRow, 0, len(table.Rows))

	for i, cells := range table.Rows {
		if rowEmpty(cells) {
			continue
		}

		fields := make(map[string]string, len(mapping))
		for key, col := range mapping {
			if col == schema.Unmapped || col >= len(cells) {
				continue
			}
			fields[key] = cells[col]
		}

		rows = append(rows, types.SourceRow{Number: i + 2, Fields: fields})
	}

	return rows
}

// rowEmpty reports whether every cell in a row is blank.
func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// normalizeWidth pads or truncates a row of cells to the header width.
func normalizeWidth(cells []string, width int) []string {
	if len(cells) == width {
		return cells
	}
	if len(cells) > width {
		return cells[:width]
	}
	padded := make([]string, width)
	copy(padded, cells)
	return padded
}
