package dataprocessing

import (
	"retailcli/pkg/contracts/domain"
)

// DeriveDateParts fills Month, Day and Weekday from the row's Date. They
// stay missing when Date is missing.
func DeriveDateParts(row *domain.JoinedRow) {
	if !row.Date.Valid {
		row.Month = domain.Missing[int64]()
		row.Day = domain.Missing[int64]()
		row.Weekday = domain.Missing[string]()
		return
	}
	d := row.Date.V
	row.Month = domain.Valid(int64(d.Month()))
	row.Day = domain.Valid(int64(d.Day()))
	row.Weekday = domain.Valid(d.Weekday().String())
}

// Merge left-joins sales to products on Product_ID and the result to
// customers on Customer_ID. Output order follows the sales table; a key
// with several matches yields one row per match in the right table's order.
// A missing key matches nothing. Keys are compared by domain.JoinKey, so
// numeric IDs match whatever their spelling in each file.
func Merge(tables *domain.Tables) ([]domain.JoinedRow, MergeStatistics) {
	products := indexProducts(tables.Products)
	customers := indexCustomers(tables.Customers)

	stats := MergeStatistics{SalesRows: len(tables.Sales)}
	rows := make([]domain.JoinedRow, 0, len(tables.Sales))

	for _, sale := range tables.Sales {
		base := fromSale(sale)

		productMatches := []*domain.Product{nil}
		if sale.ProductID.Valid {
			if found := products[domain.JoinKey(sale.ProductID.V)]; len(found) > 0 {
				productMatches = found
			}
		}
		if productMatches[0] == nil {
			stats.UnmatchedProducts++
		}

		for _, p := range productMatches {
			withProduct := base
			if p != nil {
				withProduct.ProductName = p.ProductName
				withProduct.Category = p.Category
			}

			customerMatches := []*domain.Customer{nil}
			if withProduct.CustomerID.Valid {
				if found := customers[domain.JoinKey(withProduct.CustomerID.V)]; len(found) > 0 {
					customerMatches = found
				}
			}
			if customerMatches[0] == nil {
				stats.UnmatchedCustomers++
			}

			for _, c := range customerMatches {
				row := withProduct
				if c != nil {
					row.RegionY = c.Region
				}
				rows = append(rows, row)
			}
		}
	}

	stats.JoinedRows = len(rows)
	return rows, stats
}

func fromSale(s domain.Sale) domain.JoinedRow {
	row := domain.JoinedRow{
		SaleID:           s.SaleID,
		Date:             s.Date,
		ProductID:        s.ProductID,
		CustomerID:       s.CustomerID,
		UnitsSold:        s.UnitsSold,
		UnitPrice:        s.UnitPrice,
		PromotionApplied: s.PromotionApplied,
		RegionX:          s.Region,
	}
	DeriveDateParts(&row)
	return row
}

func indexProducts(products []domain.Product) map[string][]*domain.Product {
	idx := make(map[string][]*domain.Product, len(products))
	for i := range products {
		p := &products[i]
		if p.ProductID.Valid {
			key := domain.JoinKey(p.ProductID.V)
			idx[key] = append(idx[key], p)
		}
	}
	return idx
}

func indexCustomers(customers []domain.Customer) map[string][]*domain.Customer {
	idx := make(map[string][]*domain.Customer, len(customers))
	for i := range customers {
		c := &customers[i]
		if c.CustomerID.Valid {
			key := domain.JoinKey(c.CustomerID.V)
			idx[key] = append(idx[key], c)
		}
	}
	return idx
}
