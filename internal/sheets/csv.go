package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads RFC 4180 CSV where "" escapes a quote inside a quoted field.
// Rows may have differing field counts and empty lines are skipped. Each cell is
// trimmed of surrounding whitespace.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing CSV: %w", err)
		}

		row := make([]string, len(record))
		for i, field := range record {
			row[i] = strings.TrimSpace(field)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
