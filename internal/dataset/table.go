package dataset

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "retailcli/internal/errors"
)

// Table is a raw source table: a header row and string cells
type Table struct {
	Name   string
	Path   string
	Header []string
	Rows   [][]string

	// serialDates is set for workbook sources, whose date cells hold
	// Excel serial numbers
	serialDates bool
	date1904    bool

	index map[string]int
}

// ReadTable reads a CSV or XLSX file into a Table. XLSX files are read from
// their first sheet.
func ReadTable(name, path string) (*Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.NewNotFoundError(path).WithContext("table", name)
	}

	var (
		records  [][]string
		workbook bool
		date1904 bool
		err      error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		workbook = true
		records, date1904, err = readXLSX(path)
	default:
		records, err = readCSV(path)
	}
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read %s table", name), err).
			WithContext("path", path)
	}

	t, err := newTable(name, path, records)
	if err != nil {
		return nil, err
	}
	t.serialDates = workbook
	t.date1904 = date1904
	return t, nil
}

func newTable(name, path string, records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("%s table has no header row", name), nil).
			WithContext("path", path)
	}

	t := &Table{
		Name:   name,
		Path:   path,
		Header: make([]string, len(records[0])),
		Rows:   records[1:],
		index:  make(map[string]int, len(records[0])),
	}
	for i, col := range records[0] {
		clean := cleanHeader(col)
		t.Header[i] = clean
		// First occurrence wins on duplicate headers
		if _, dup := t.index[clean]; !dup {
			t.index[clean] = i
		}
	}
	return t, nil
}

// Column returns the index of the first of names present in the header, or
// a schema error naming the first alternative.
func (t *Table) Column(names ...string) (int, error) {
	for _, name := range names {
		if i, ok := t.index[name]; ok {
			return i, nil
		}
	}
	return -1, apperrors.NewSchemaError(t.Name, names[0])
}

// Cell returns the trimmed cell at (row, col); short rows read as empty
func (t *Table) Cell(row, col int) string {
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// ParseDate reads a date cell of this table. Workbook tables also accept
// Excel serial numbers.
func (t *Table) ParseDate(cell string) (sql.Null[time.Time], error) {
	if t.serialDates {
		if serial, err := strconv.ParseFloat(cell, 64); err == nil {
			return ParseExcelDate(serial, t.date1904)
		}
	}
	return ParseDate(cell)
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// readCSV reads the whole file, dropping a UTF-8 BOM if present
func readCSV(path string) ([][]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return dropBlankRows(records), nil
}

// readXLSX returns the raw cell values of the workbook's first sheet and
// whether the workbook uses the 1904 date system. Raw values keep date cells
// as serial numbers instead of their locale-dependent display text.
func readXLSX(path string) ([][]string, bool, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, false, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	var date1904 bool
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	return dropBlankRows(rows), date1904, nil
}

// dropBlankRows removes rows whose cells are all empty, as a CSV reader
// skips blank lines
func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// cleanHeader strips BOM and zero-width characters from a column name
func cleanHeader(col string) string {
	clean := strings.TrimSpace(col)
	clean = strings.TrimLeft(clean, "\u200B\u200C\u200D\u2060\uFEFF")
	return strings.TrimSpace(clean)
}
