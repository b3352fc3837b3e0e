package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadCSV reads a CSV sheet. The first record is the header row; remaining
// records are data rows, padded or truncated to the header width. Quoted
// fields and embedded newlines follow encoding/csv semantics.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Header validation owns column-count checking; the reader must not
	// reject ragged rows itself.
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	headers = stripBOM(headers)

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, normalizeWidth(record, len(headers)))
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

// stripBOM removes a UTF-8 byte order mark from the first header cell.
// Excel CSV exports routinely carry one.
func stripBOM(headers []string) []string {
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}
	return headers
}
