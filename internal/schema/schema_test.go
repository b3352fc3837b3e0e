package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateExactMatch(t *testing.T) {
	assert.NoError(t, Validate(OrderTemplate().Headers, OrderTemplate()))
	assert.NoError(t, Validate(MetadataTemplate().Headers, MetadataTemplate()))
}

func TestValidateMissingColumn(t *testing.T) {
	err := Validate([]string{"ISSN", "Title"}, MetadataTemplate())
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Len(t, schemaErr.Mismatches, 1)

	m := schemaErr.Mismatches[0]
	assert.Equal(t, 3, m.Position)
	assert.Equal(t, "Page Extent", m.Expected)
	assert.Equal(t, "(missing)", m.Actual)
}

func TestValidateUnexpectedColumn(t *testing.T) {
	err := Validate([]string{"ISSN", "Title", "Page Extent", "Notes"}, MetadataTemplate())
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Len(t, schemaErr.Mismatches, 1)

	m := schemaErr.Mismatches[0]
	assert.Equal(t, 4, m.Position)
	assert.Equal(t, "(unexpected)", m.Expected)
	assert.Equal(t, "Notes", m.Actual)
}

func TestValidateReportsEveryMismatch(t *testing.T) {
	// Two transposed columns produce two mismatches, both reported.
	err := Validate([]string{"Title", "ISSN", "Page Extent"}, MetadataTemplate())
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Len(t, schemaErr.Mismatches, 2)
}

func TestValidateTrailingWhitespaceSignificant(t *testing.T) {
	headers := append([]string(nil), OrderTemplate().Headers...)
	// "Volume Number " carries a trailing space in the canonical template;
	// stripping it must reject the sheet.
	headers[3] = "Volume Number"

	err := Validate(headers, OrderTemplate())
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Len(t, schemaErr.Mismatches, 1)
	assert.Equal(t, 4, schemaErr.Mismatches[0].Position)
}

func TestResolveColumnsExact(t *testing.T) {
	tmpl := OrderTemplate()
	mapping := ResolveColumns(tmpl.Headers, tmpl)

	for i, key := range tmpl.FieldKeys {
		assert.Equal(t, i, mapping[key], "field %s", key)
	}
}

func TestResolveColumnsAliases(t *testing.T) {
	tmpl := MetadataTemplate()
	mapping := ResolveColumns([]string{"issn", "Journal Title", "extent"}, tmpl)

	assert.Equal(t, 0, mapping[FieldISSN])
	assert.Equal(t, 1, mapping[FieldTitle])
	assert.Equal(t, 2, mapping[FieldPageExtent])
}

func TestResolveColumnsUnmapped(t *testing.T) {
	tmpl := MetadataTemplate()
	mapping := ResolveColumns([]string{"ISSN", "Something Else"}, tmpl)

	assert.Equal(t, 0, mapping[FieldISSN])
	assert.Equal(t, Unmapped, mapping[FieldTitle])
	assert.Equal(t, Unmapped, mapping[FieldPageExtent])
}
