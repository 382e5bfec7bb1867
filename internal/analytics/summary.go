package analytics

import (
	"context"
	"log/slog"

	"retailcli/pkg/contracts/domain"
)

// Options controls the ranked summaries
type Options struct {
	// TopProducts is how many products the top-products ranking keeps
	TopProducts int
}

// DefaultOptions returns default summary options
func DefaultOptions() Options {
	return Options{TopProducts: 5}
}

// Summary holds every aggregate the report prints, plots or exports
type Summary struct {
	SalesByProduct       domain.Series // by product name
	TopProducts          domain.Series // descending, truncated
	SalesByCategory      domain.Series // by category name
	TopCategories        domain.Series // descending, complete
	SalesByRegion        domain.Series
	MonthlySales         domain.Series // by month number
	PromotionImpact      domain.Series // mean Total_Sales per flag
	DecliningProducts    domain.Series // ascending mean monthly change
	InventorySuggestions domain.Series // mean Units_Sold, descending
	Correlation          domain.CorrelationMatrix
	GrandTotal           float64
}

// Aggregator computes summaries over the cleaned joined table
type Aggregator struct {
	options Options
	logger  *slog.Logger
}

// NewAggregator creates an aggregator
func NewAggregator(options Options, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{options: options, logger: logger.With("component", "aggregator")}
}

// Summarize computes every grouping. Rankings are stable sorts over keys in
// first-seen order, so equal totals keep the order their keys first
// appeared in.
func (a *Aggregator) Summarize(ctx context.Context, rows []domain.JoinedRow) Summary {
	byProduct := SumBy(rows, "Total_Sales", ByProductName, TotalSales)
	byCategory := SumBy(rows, "Total_Sales", ByCategory, TotalSales)

	s := Summary{
		SalesByProduct:       byProduct.SortedByKey(),
		TopProducts:          byProduct.SortedDesc().Head(a.options.TopProducts),
		SalesByCategory:      byCategory.SortedByKey(),
		TopCategories:        byCategory.SortedDesc(),
		SalesByRegion:        SumBy(rows, "Total_Sales", ByRegion, TotalSales).SortedByKey(),
		MonthlySales:         SumBy(rows, "Total_Sales", ByMonth, TotalSales).SortedByKey(),
		PromotionImpact:      MeanBy(rows, "Total_Sales", ByPromotion, TotalSales).SortedByKey(),
		DecliningProducts:    DecliningProducts(rows),
		InventorySuggestions: MeanBy(rows, "Units_Sold", ByProductName, UnitsSold).SortedDesc(),
		Correlation:          Correlate(rows),
		GrandTotal:           GrandTotal(rows),
	}

	a.logger.InfoContext(ctx, "Sales summarized",
		slog.Int("products", s.SalesByProduct.Len()),
		slog.Int("categories", s.SalesByCategory.Len()),
		slog.Int("regions", s.SalesByRegion.Len()),
		slog.Int("months", s.MonthlySales.Len()),
		slog.Float64("grand_total", s.GrandTotal))

	return s
}

// GrandTotal sums every present Total_Sales
func GrandTotal(rows []domain.JoinedRow) float64 {
	var total float64
	for i := range rows {
		if rows[i].TotalSales.Valid {
			total += rows[i].TotalSales.V
		}
	}
	return total
}
