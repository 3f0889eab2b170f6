// Package importer turns spreadsheet exports into import rows.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ruudy-sib/boxcheck/internal/domain"
	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
)

// ErrColumnNotFound is returned when the header lacks the requested column.
var ErrColumnNotFound = errors.New("column not found")

// ReadRows reads a CSV document whose first record is a header and returns
// the cells of column, one row per record. The column is matched case
// insensitively; an empty column selects domain.DefaultImportColumn.
// Line numbers are 1-based file lines, so the first data row is line 2.
// Blank cells are kept so they show up as invalid in the report.
func ReadRows(r io.Reader, column string) ([]entity.ImportRow, error) {
	if column == "" {
		column = domain.DefaultImportColumn
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %q (empty document)", ErrColumnNotFound, column)
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	idx := columnIndex(header, column)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	var rows []entity.ImportRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		value := ""
		if idx < len(record) {
			value = record[idx]
		}
		rows = append(rows, entity.ImportRow{Line: line, Value: value})
	}

	return rows, nil
}

func columnIndex(header []string, column string) int {
	want := strings.TrimSpace(column)
	for i, name := range header {
		// strip a UTF-8 BOM left by spreadsheet exports
		name = strings.TrimPrefix(name, "\ufeff")
		if strings.EqualFold(strings.TrimSpace(name), want) {
			return i
		}
	}
	return -1
}
