package dataprocessing

import (
	"database/sql"
	"time"

	"retailcli/pkg/contracts/domain"
)

// ForwardFillProcessor fills missing cells column by column with the last
// value seen above them in row order. Cells before a column's first value
// stay missing.
type ForwardFillProcessor struct{}

// NewForwardFillProcessor creates a new forward-fill processor
func NewForwardFillProcessor() *ForwardFillProcessor {
	return &ForwardFillProcessor{}
}

// FillMissingDataWithStats returns a filled copy of rows and the number of
// cells that were filled
func (f *ForwardFillProcessor) FillMissingDataWithStats(rows []domain.JoinedRow) ([]domain.JoinedRow, int) {
	out := append([]domain.JoinedRow(nil), rows...)

	n := 0
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[string] { return &r.SaleID })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[time.Time] { return &r.Date })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[string] { return &r.ProductID })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[string] { return &r.CustomerID })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[float64] { return &r.UnitsSold })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[float64] { return &r.UnitPrice })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[string] { return &r.PromotionApplied })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[string] { return &r.RegionX })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[int64] { return &r.Month })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[int64] { return &r.Day })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[string] { return &r.Weekday })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[string] { return &r.ProductName })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[string] { return &r.Category })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[string] { return &r.RegionY })
	n += fillColumn(out, func(r *domain.JoinedRow) *sql.Null[float64] { return &r.TotalSales })

	return out, n
}

// fillColumn forward-fills one column and returns how many cells it filled
func fillColumn[T any](rows []domain.JoinedRow, cell func(*domain.JoinedRow) *sql.Null[T]) int {
	var last sql.Null[T]
	filled := 0
	for i := range rows {
		c := cell(&rows[i])
		if c.Valid {
			last = *c
			continue
		}
		if last.Valid {
			*c = last
			filled++
		}
	}
	return filled
}
