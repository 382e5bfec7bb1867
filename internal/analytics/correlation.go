package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"retailcli/pkg/contracts/domain"
)

// CorrelationLabels are the variables of the sales correlation matrix
var CorrelationLabels = []string{"Units_Sold", "Unit_Price", "Total_Sales"}

// Correlate computes the Pearson correlation of Units_Sold, Unit_Price and
// Total_Sales. Each pair uses the rows where both values are present; a pair
// with fewer than two such rows or a constant variable is NaN.
func Correlate(rows []domain.JoinedRow) domain.CorrelationMatrix {
	measures := []ValueFunc{UnitsSold, UnitPrice, TotalSales}

	m := domain.CorrelationMatrix{
		Labels: append([]string(nil), CorrelationLabels...),
		Values: make([][]float64, len(measures)),
	}
	for i := range measures {
		m.Values[i] = make([]float64, len(measures))
	}

	for i := range measures {
		for j := i; j < len(measures); j++ {
			xs, ys := pairwise(rows, measures[i], measures[j])
			r := math.NaN()
			if len(xs) >= 2 {
				r = stat.Correlation(xs, ys, nil)
			}
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pairwise(rows []domain.JoinedRow, x, y ValueFunc) ([]float64, []float64) {
	xs := make([]float64, 0, len(rows))
	ys := make([]float64, 0, len(rows))
	for i := range rows {
		xv, okX := x(&rows[i])
		yv, okY := y(&rows[i])
		if okX && okY {
			xs = append(xs, xv)
			ys = append(ys, yv)
		}
	}
	return xs, ys
}
