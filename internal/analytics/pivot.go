package analytics

import (
	"math"
	"sort"

	"retailcli/pkg/contracts/domain"
)

// Pivot is a month × product table of summed Total_Sales. Months ascend,
// products are ordered by name, and a month in which a product did not sell
// holds NaN.
type Pivot struct {
	Months   []int64
	Products []string
	// Cells[m][p] is the total for Months[m] and Products[p]
	Cells [][]float64
}

// MonthProductPivot builds the pivot from rows that carry both a month and a
// product name
func MonthProductPivot(rows []domain.JoinedRow) Pivot {
	type cellKey struct {
		month   int64
		product string
	}

	sums := make(map[cellKey]float64)
	months := make(map[int64]bool)
	products := make(map[string]bool)

	for i := range rows {
		r := &rows[i]
		if !r.Month.Valid || !r.ProductName.Valid {
			continue
		}
		k := cellKey{r.Month.V, r.ProductName.V}
		if r.TotalSales.Valid {
			sums[k] += r.TotalSales.V
		} else if _, ok := sums[k]; !ok {
			sums[k] = 0
		}
		months[r.Month.V] = true
		products[r.ProductName.V] = true
	}

	p := Pivot{
		Months:   make([]int64, 0, len(months)),
		Products: make([]string, 0, len(products)),
	}
	for m := range months {
		p.Months = append(p.Months, m)
	}
	for name := range products {
		p.Products = append(p.Products, name)
	}
	sort.Slice(p.Months, func(i, j int) bool { return p.Months[i] < p.Months[j] })
	sort.Strings(p.Products)

	p.Cells = make([][]float64, len(p.Months))
	for mi, m := range p.Months {
		p.Cells[mi] = make([]float64, len(p.Products))
		for pi, name := range p.Products {
			if v, ok := sums[cellKey{m, name}]; ok {
				p.Cells[mi][pi] = v
			} else {
				p.Cells[mi][pi] = math.NaN()
			}
		}
	}
	return p
}

// MeanChange returns, per product, the average month-over-month fractional
// change of its sales. Empty months are first filled with the previous
// month's value; leading empty months stay empty and yield no change.
// Products with no defined change get NaN.
func (p Pivot) MeanChange() domain.Series {
	s := domain.Series{
		Name:   "Mean_Change",
		Keys:   append([]string(nil), p.Products...),
		Values: make([]float64, len(p.Products)),
	}

	for pi := range p.Products {
		var sum float64
		count := 0
		prev := math.NaN()
		for mi := range p.Months {
			cur := p.Cells[mi][pi]
			if math.IsNaN(cur) {
				cur = prev
			}
			if !math.IsNaN(prev) && !math.IsNaN(cur) {
				if change := cur/prev - 1; !math.IsNaN(change) {
					sum += change
					count++
				}
			}
			prev = cur
		}

		if count == 0 {
			s.Values[pi] = math.NaN()
			continue
		}
		s.Values[pi] = sum / float64(count)
	}
	return s
}

// DecliningProducts ranks products by average monthly change, most negative
// first
func DecliningProducts(rows []domain.JoinedRow) domain.Series {
	return MonthProductPivot(rows).MeanChange().SortedAsc()
}
