package analytics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/pkg/contracts/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func row(id string, when time.Time, product, category, customer, region, promo string, units, price float64) domain.JoinedRow {
	return domain.JoinedRow{
		SaleID:           domain.Valid(id),
		Date:             domain.Valid(when),
		ProductName:      domain.Valid(product),
		Category:         domain.Valid(category),
		CustomerID:       domain.Valid(customer),
		RegionX:          domain.Valid(region),
		PromotionApplied: domain.Valid(promo),
		UnitsSold:        domain.Valid(units),
		UnitPrice:        domain.Valid(price),
		Month:            domain.Valid(int64(when.Month())),
		TotalSales:       domain.Valid(units * price),
	}
}

// cleaned rows of a three-sale history; S2 and S3 were clipped
func scenario() []domain.JoinedRow {
	return []domain.JoinedRow{
		row("S1", date(2024, 1, 15), "Widget", "Hardware", "C1", "North", "Yes", 2, 100),
		row("S2", date(2024, 2, 10), "Gadget", "Electronics", "C2", "South", "No", 20, 50),
		row("S3", date(2024, 3, 5), "Widget", "Hardware", "C1", "North", "No", 3, 500),
	}
}

func TestSummarize_Scenario(t *testing.T) {
	s := NewAggregator(DefaultOptions(), nil).Summarize(context.Background(), scenario())

	assert.Equal(t, []string{"Widget", "Gadget"}, s.TopProducts.Keys)
	assert.Equal(t, []float64{1700, 1000}, s.TopProducts.Values)

	assert.Equal(t, []string{"Gadget", "Widget"}, s.SalesByProduct.Keys)
	assert.Equal(t, []string{"Hardware", "Electronics"}, s.TopCategories.Keys)

	assert.Equal(t, []string{"1", "2", "3"}, s.MonthlySales.Keys)
	assert.Equal(t, []float64{200, 1000, 1500}, s.MonthlySales.Values)

	no, ok := s.PromotionImpact.Lookup("No")
	require.True(t, ok)
	assert.Equal(t, 1250.0, no)
	yes, _ := s.PromotionImpact.Lookup("Yes")
	assert.Equal(t, 200.0, yes)

	assert.Equal(t, []string{"Gadget", "Widget"}, s.DecliningProducts.Keys)
	assert.InDelta(t, 0.0, s.DecliningProducts.Values[0], 1e-9)
	assert.InDelta(t, 3.25, s.DecliningProducts.Values[1], 1e-9)

	assert.Equal(t, []string{"Gadget", "Widget"}, s.InventorySuggestions.Keys)
	assert.Equal(t, []float64{20, 2.5}, s.InventorySuggestions.Values)

	assert.Equal(t, 2700.0, s.GrandTotal)
}

func TestSumBy_TotalsMatchGrandTotal(t *testing.T) {
	rows := scenario()
	rows = append(rows,
		row("S4", date(2024, 3, 9), "Gizmo", "Hardware", "C3", "East", "Yes", 5, 12.5),
		row("S5", date(2024, 4, 1), "Gadget", "Electronics", "C2", "South", "No", 1, 10),
	)
	total := GrandTotal(rows)

	for name, key := range map[string]KeyFunc{
		"product":  ByProductName,
		"category": ByCategory,
		"region":   ByRegion,
		"month":    ByMonth,
	} {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, total, SumBy(rows, "Total_Sales", key, TotalSales).Total(), 1e-9)
		})
	}
}

func TestSumBy_MissingKeysAndValues(t *testing.T) {
	rows := scenario()
	rows[1].ProductName = domain.Missing[string]()
	rows[2].TotalSales = domain.Missing[float64]()

	s := SumBy(rows, "Total_Sales", ByProductName, TotalSales)
	assert.Equal(t, []string{"Widget"}, s.Keys)
	assert.Equal(t, []float64{200}, s.Values)

	rows[0].TotalSales = domain.Missing[float64]()
	m := MeanBy(rows, "Total_Sales", ByProductName, TotalSales)
	assert.True(t, math.IsNaN(m.Values[0]))
	assert.Equal(t, 0.0, SumBy(rows, "Total_Sales", ByProductName, TotalSales).Values[0])
}

func TestTopProducts_TiesKeepFirstSeenOrder(t *testing.T) {
	rows := []domain.JoinedRow{
		row("1", date(2024, 1, 1), "B", "X", "C1", "N", "No", 1, 10),
		row("2", date(2024, 1, 2), "A", "X", "C1", "N", "No", 1, 10),
		row("3", date(2024, 1, 3), "C", "X", "C1", "N", "No", 2, 10),
	}
	s := NewAggregator(Options{TopProducts: 2}, nil).Summarize(context.Background(), rows)
	assert.Equal(t, []string{"C", "B"}, s.TopProducts.Keys)
}

func TestMeanChange(t *testing.T) {
	p := Pivot{
		Months:   []int64{1, 2, 3, 4},
		Products: []string{"Falling", "Single", "Gap", "Zero"},
		Cells: [][]float64{
			{100, math.NaN(), 50, 0},
			{50, 10, math.NaN(), 10},
			{25, math.NaN(), 100, math.NaN()},
			{math.NaN(), math.NaN(), math.NaN(), math.NaN()},
		},
	}

	s := p.MeanChange()

	falling, _ := s.Lookup("Falling")
	// -0.5, -0.5 then 25 carried forward gives 0
	assert.InDelta(t, -1.0/3, falling, 1e-9)

	single, _ := s.Lookup("Single")
	assert.Equal(t, 0.0, single)

	gap, _ := s.Lookup("Gap")
	// 50 carried to month 2, then 100/50-1, then carried again
	assert.InDelta(t, 1.0/3, gap, 1e-9)

	zero, _ := s.Lookup("Zero")
	assert.True(t, math.IsInf(zero, 1))

	sorted := s.SortedAsc()
	assert.Equal(t, "Falling", sorted.Keys[0])
	assert.Equal(t, "Zero", sorted.Keys[len(sorted.Keys)-1])
}

func TestMeanChange_NoChangeIsNaN(t *testing.T) {
	rows := []domain.JoinedRow{
		row("1", date(2024, 1, 1), "Twice", "X", "C1", "N", "No", 1, 10),
		row("2", date(2024, 2, 1), "Twice", "X", "C1", "N", "No", 1, 10),
		row("3", date(2024, 3, 1), "Once", "X", "C1", "N", "No", 1, 10),
	}

	s := DecliningProducts(rows)
	assert.Equal(t, []string{"Twice", "Once"}, s.Keys)
	assert.Equal(t, 0.0, s.Values[0])
	assert.True(t, math.IsNaN(s.Values[1]))
}

func TestComputeRFM_Scenario(t *testing.T) {
	records := ComputeRFM(scenario())
	require.Len(t, records, 2)

	assert.Equal(t, domain.RFMRecord{CustomerID: "C1", Recency: 0, Frequency: 2, Monetary: 1700, CLV: 1700}, records[0])
	assert.Equal(t, domain.RFMRecord{CustomerID: "C2", Recency: 24, Frequency: 1, Monetary: 1000, CLV: 1000}, records[1])
}

func TestComputeRFM_Properties(t *testing.T) {
	rows := scenario()
	rows = append(rows,
		row("S4", date(2023, 12, 31), "Gizmo", "Hardware", "10", "East", "Yes", 5, 12.5),
		row("S5", date(2024, 3, 1), "Gizmo", "Hardware", "9", "East", "No", 1, 10),
	)
	rows[4].SaleID = domain.Missing[string]()

	records := ComputeRFM(rows)
	require.Len(t, records, 4)

	// Numeric IDs order numerically ahead of the rest
	assert.Equal(t, "9", records[0].CustomerID)
	assert.Equal(t, "10", records[1].CustomerID)

	var monetary float64
	for _, r := range records {
		assert.GreaterOrEqual(t, r.Recency, 0.0)
		monetary += r.Monetary
		if r.Frequency > 0 {
			assert.InDelta(t, r.Monetary, r.CLV, 1e-9)
		} else {
			assert.True(t, math.IsNaN(r.CLV))
		}
	}
	assert.InDelta(t, GrandTotal(rows), monetary, 1e-9)
	assert.Equal(t, 0, records[0].Frequency)
}

func TestCorrelate(t *testing.T) {
	m := Correlate(scenario())
	require.Equal(t, 3, m.Size())
	assert.Equal(t, CorrelationLabels, m.Labels)

	for i := 0; i < m.Size(); i++ {
		assert.Equal(t, 1.0, m.At(i, i))
		for j := 0; j < m.Size(); j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
			assert.LessOrEqual(t, math.Abs(m.At(i, j)), 1.0+1e-12)
		}
	}
}

func TestCorrelate_ConstantColumnIsNaN(t *testing.T) {
	rows := []domain.JoinedRow{
		row("1", date(2024, 1, 1), "A", "X", "C1", "N", "No", 2, 10),
		row("2", date(2024, 1, 2), "A", "X", "C1", "N", "No", 2, 20),
	}
	m := Correlate(rows)
	assert.True(t, math.IsNaN(m.At(0, 0)))
	assert.True(t, math.IsNaN(m.At(0, 1)))
	assert.InDelta(t, 1.0, m.At(1, 2), 1e-9)
}
