package dataset

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "retailcli/internal/errors"
	"retailcli/pkg/contracts/domain"
)

// missingMarkers are cell texts read as an empty value
var missingMarkers = map[string]bool{
	"":       true,
	"NA":     true,
	"N/A":    true,
	"n/a":    true,
	"#N/A":   true,
	"#NA":    true,
	"NaN":    true,
	"nan":    true,
	"-NaN":   true,
	"-nan":   true,
	"null":   true,
	"NULL":   true,
	"None":   true,
	"<NA>":   true,
	"NaT":    true,
	"1.#IND": true,
}

// dateLayouts are tried in order when parsing a Date cell
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
}

// IsMissing reports whether a trimmed cell holds no value
func IsMissing(cell string) bool {
	return missingMarkers[cell]
}

// ParseString reads a text cell
func ParseString(cell string) sql.Null[string] {
	if IsMissing(cell) {
		return domain.Missing[string]()
	}
	return domain.Valid(cell)
}

// ParseFloat reads a numeric cell. A non-numeric value is an error.
func ParseFloat(cell string) (sql.Null[float64], error) {
	if IsMissing(cell) {
		return domain.Missing[float64](), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return domain.Missing[float64](), err
	}
	return domain.Valid(v), nil
}

// ParseDate reads a calendar date. A value that matches no known layout is
// an error.
func ParseDate(cell string) (sql.Null[time.Time], error) {
	if IsMissing(cell) {
		return domain.Missing[time.Time](), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return domain.Valid(t.UTC()), nil
		}
	}
	return domain.Missing[time.Time](), fmt.Errorf("unrecognized date %q", cell)
}

// ParseExcelDate converts an Excel serial date number
func ParseExcelDate(serial float64, date1904 bool) (sql.Null[time.Time], error) {
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return domain.Missing[time.Time](), err
	}
	return domain.Valid(t.UTC()), nil
}

// cellError builds the parsing error for a bad cell. Row numbers are 1-based
// and count the header, matching what a spreadsheet shows.
func cellError(t *Table, row int, column string, cause error) error {
	return apperrors.NewParsingError(fmt.Sprintf("invalid %s in %s table", column, t.Name), cause).
		WithContext("path", t.Path).
		WithContext("row", row+2).
		WithContext("column", column)
}
