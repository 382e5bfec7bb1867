package analytics

import (
	"math"
	"strconv"

	"retailcli/pkg/contracts/domain"
)

// KeyFunc extracts a grouping key; false excludes the row from the grouping
type KeyFunc func(r *domain.JoinedRow) (string, bool)

// ValueFunc extracts the measured value; false means the value is missing
type ValueFunc func(r *domain.JoinedRow) (float64, bool)

// Grouping keys
var (
	ByProductName KeyFunc = func(r *domain.JoinedRow) (string, bool) { return r.ProductName.V, r.ProductName.Valid }
	ByCategory    KeyFunc = func(r *domain.JoinedRow) (string, bool) { return r.Category.V, r.Category.Valid }
	ByRegion      KeyFunc = func(r *domain.JoinedRow) (string, bool) { return r.RegionX.V, r.RegionX.Valid }
	ByPromotion   KeyFunc = func(r *domain.JoinedRow) (string, bool) { return r.PromotionApplied.V, r.PromotionApplied.Valid }
	ByCustomer    KeyFunc = func(r *domain.JoinedRow) (string, bool) { return r.CustomerID.V, r.CustomerID.Valid }
	ByMonth       KeyFunc = func(r *domain.JoinedRow) (string, bool) { return strconv.FormatInt(r.Month.V, 10), r.Month.Valid }
)

// Measures
var (
	TotalSales ValueFunc = func(r *domain.JoinedRow) (float64, bool) { return r.TotalSales.V, r.TotalSales.Valid }
	UnitsSold  ValueFunc = func(r *domain.JoinedRow) (float64, bool) { return r.UnitsSold.V, r.UnitsSold.Valid }
	UnitPrice  ValueFunc = func(r *domain.JoinedRow) (float64, bool) { return r.UnitPrice.V, r.UnitPrice.Valid }
)

// group is one key's running aggregate
type group struct {
	sum   float64
	count int
}

// aggregate groups rows by key in first-seen order. Missing values are
// skipped but their keys still form groups.
func aggregate(rows []domain.JoinedRow, key KeyFunc, value ValueFunc) ([]string, map[string]*group) {
	order := make([]string, 0)
	groups := make(map[string]*group)

	for i := range rows {
		k, ok := key(&rows[i])
		if !ok {
			continue
		}
		g, seen := groups[k]
		if !seen {
			g = &group{}
			groups[k] = g
			order = append(order, k)
		}
		if v, ok := value(&rows[i]); ok {
			g.sum += v
			g.count++
		}
	}
	return order, groups
}

// SumBy totals value per key. A group whose values are all missing sums to 0.
func SumBy(rows []domain.JoinedRow, name string, key KeyFunc, value ValueFunc) domain.Series {
	order, groups := aggregate(rows, key, value)
	s := domain.Series{Name: name, Keys: order, Values: make([]float64, len(order))}
	for i, k := range order {
		s.Values[i] = groups[k].sum
	}
	return s
}

// MeanBy averages value per key. A group whose values are all missing has a
// NaN mean.
func MeanBy(rows []domain.JoinedRow, name string, key KeyFunc, value ValueFunc) domain.Series {
	order, groups := aggregate(rows, key, value)
	s := domain.Series{Name: name, Keys: order, Values: make([]float64, len(order))}
	for i, k := range order {
		g := groups[k]
		if g.count == 0 {
			s.Values[i] = math.NaN()
			continue
		}
		s.Values[i] = g.sum / float64(g.count)
	}
	return s
}
