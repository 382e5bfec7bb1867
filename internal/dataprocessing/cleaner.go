package dataprocessing

import (
	"context"
	"log/slog"

	"retailcli/pkg/contracts/domain"
)

// Cleaner forward-fills, clips and totals the joined table
type Cleaner struct {
	options ProcessingOptions
	filler  *ForwardFillProcessor
	logger  *slog.Logger
}

// NewCleaner creates a cleaner with the given options
func NewCleaner(options ProcessingOptions, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		options: options,
		filler:  NewForwardFillProcessor(),
		logger:  logger.With("component", "cleaner"),
	}
}

// ProcessWithStats runs forward-fill, clipping and Total_Sales in that order
// and reports what changed. The input slice is not modified.
func (c *Cleaner) ProcessWithStats(ctx context.Context, rows []domain.JoinedRow) ([]domain.JoinedRow, CleaningStatistics) {
	stats := CleaningStatistics{Rows: len(rows)}

	out := append([]domain.JoinedRow(nil), rows...)
	if c.options.EnableForwardFill {
		out, stats.FilledCells = c.filler.FillMissingDataWithStats(out)
	}

	stats.ClippedUnits, stats.ClippedPrices = Clip(out, c.options.Units, c.options.Price)
	stats.MissingTotals = ComputeTotals(out)

	c.logger.InfoContext(ctx, "Joined table cleaned",
		slog.Int("rows", stats.Rows),
		slog.Int("filled_cells", stats.FilledCells),
		slog.Int("clipped_units", stats.ClippedUnits),
		slog.Int("clipped_prices", stats.ClippedPrices),
		slog.Int("missing_totals", stats.MissingTotals))

	return out, stats
}

// Clip clamps Units_Sold and Unit_Price in place. Out-of-range values are
// replaced by the nearest bound, never dropped; missing values stay missing.
func Clip(rows []domain.JoinedRow, units, price Bounds) (clippedUnits, clippedPrices int) {
	for i := range rows {
		r := &rows[i]
		if r.UnitsSold.Valid {
			var changed bool
			if r.UnitsSold.V, changed = units.Clamp(r.UnitsSold.V); changed {
				clippedUnits++
			}
		}
		if r.UnitPrice.Valid {
			var changed bool
			if r.UnitPrice.V, changed = price.Clamp(r.UnitPrice.V); changed {
				clippedPrices++
			}
		}
	}
	return clippedUnits, clippedPrices
}

// ComputeTotals sets Total_Sales = Units_Sold × Unit_Price in place and
// returns how many rows were left without a total
func ComputeTotals(rows []domain.JoinedRow) int {
	missing := 0
	for i := range rows {
		r := &rows[i]
		if r.UnitsSold.Valid && r.UnitPrice.Valid {
			r.TotalSales = domain.Valid(r.UnitsSold.V * r.UnitPrice.V)
			continue
		}
		r.TotalSales = domain.Missing[float64]()
		missing++
	}
	return missing
}
