package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook reads sheet tabs from a local .xlsx export of the spreadsheet
type Workbook struct {
	path string
	file *excelize.File
}

// OpenWorkbook opens the workbook at path. Close releases it.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &Workbook{path: path, file: f}, nil
}

// Close releases the underlying file
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames lists the workbook's tabs in their visual order
func (w *Workbook) SheetNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return w.file.GetSheetList(), nil
}

// Rows returns the trimmed cell values of a tab
func (w *Workbook) Rows(ctx context.Context, sheet string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q from %s: %w", sheet, w.path, err)
	}

	rows := make([][]string, 0, len(raw))
	for _, r := range raw {
		row := make([]string, len(r))
		for i, v := range r {
			row[i] = strings.TrimSpace(v)
		}
		rows = append(rows, row)
	}

	return rows, nil
}
