// Package ingestion reads tabular data into the row store. It is the only
// place that knows about file formats; everything downstream sees rows.
package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gcbaptista/go-column-index/store"
)

// LoadCSV reads a CSV file with a header row into a new RowStore. Field names
// come from the header; row ids follow file order, so posting lists built
// from the store reflect file order too. Ragged records are tolerated: extra
// cells are dropped and missing cells simply leave the field unset.
func LoadCSV(path string) (*store.RowStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %s: %w", path, err)
	}
	defer f.Close()

	rs, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file %s: %w", path, err)
	}
	return rs, nil
}

// ReadCSV reads CSV data from r into a new RowStore.
func ReadCSV(r io.Reader) (*store.RowStore, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV input")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	rs := store.NewRowStore()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record after %d rows: %w", rs.Len(), err)
		}
		if isBlank(record) {
			continue
		}

		fields := make(map[string]string, len(columns))
		for i, name := range columns {
			if i >= len(record) {
				break
			}
			fields[name] = strings.TrimSpace(record[i])
		}
		rs.Append(fields)
	}
	return rs, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
