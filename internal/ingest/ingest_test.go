package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/printops/ordergen/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTempCSV(t, "ISSN,Title,Page Extent\n9771472645051,Journal,120\n9771472645052,Annals,16\n")

	table, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"ISSN", "Title", "Page Extent"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"9771472645051", "Journal", "120"}, table.Rows[0])
}

func TestReadCSVStripsBOM(t *testing.T) {
	path := writeTempCSV(t, "\uFEFFISSN,Title,Page Extent\n")

	table, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "ISSN", table.Headers[0])
}

func TestReadCSVRaggedRowsNormalized(t *testing.T) {
	path := writeTempCSV(t, "ISSN,Title,Page Extent\n9771472645051,Journal\n9771472645052,Annals,16,extra\n")

	table, err := ReadCSV(path)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"9771472645051", "Journal", ""}, table.Rows[0])
	assert.Equal(t, []string{"9771472645052", "Annals", "16"}, table.Rows[1])
}

func TestReadUnsupportedExtension(t *testing.T) {
	_, err := Read("orders.pdf")
	assert.Error(t, err)
}

func TestBuildRows(t *testing.T) {
	table := &Table{
		Headers: []string{"ISSN", "Title", "Page Extent"},
		Rows: [][]string{
			{"9771472645051", "Journal", "120"},
			{"", "  ", ""}, // all-empty row is dropped
			{"9771472645052", "Annals", "16"},
		},
	}

	tmpl := schema.MetadataTemplate()
	mapping := schema.ResolveColumns(table.Headers, tmpl)
	rows := BuildRows(table, mapping)

	require.Len(t, rows, 2)
	// Row numbers count the header row: the first data row is row 2.
	assert.Equal(t, 2, rows[0].Number)
	assert.Equal(t, 4, rows[1].Number)
	assert.Equal(t, "Journal", rows[0].Get(schema.FieldTitle))
	assert.Equal(t, "16", rows[1].Get(schema.FieldPageExtent))
}

func TestBuildRowsUnmappedFieldEmpty(t *testing.T) {
	table := &Table{
		Headers: []string{"ISSN"},
		Rows:    [][]string{{"9771472645051"}},
	}

	tmpl := schema.MetadataTemplate()
	mapping := schema.ResolveColumns(table.Headers, tmpl)
	rows := BuildRows(table, mapping)

	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get(schema.FieldTitle))
}
