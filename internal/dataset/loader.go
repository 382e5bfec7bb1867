package dataset

import (
	"context"
	"log/slog"

	"retailcli/pkg/contracts/domain"
)

// Sources names the files holding the three tables
type Sources struct {
	Sales     string
	Products  string
	Customers string
}

// Loader reads the sales, product and customer tables
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader that logs through logger
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With("component", "loader")}
}

// Load reads all three tables. Any missing file, missing column or
// unparseable cell aborts the load.
func (l *Loader) Load(ctx context.Context, src Sources) (*domain.Tables, error) {
	salesTable, err := ReadTable("sales", src.Sales)
	if err != nil {
		return nil, err
	}
	sales, err := ParseSales(salesTable)
	if err != nil {
		return nil, err
	}

	productTable, err := ReadTable("products", src.Products)
	if err != nil {
		return nil, err
	}
	products, err := ParseProducts(productTable)
	if err != nil {
		return nil, err
	}

	customerTable, err := ReadTable("customers", src.Customers)
	if err != nil {
		return nil, err
	}
	customers, err := ParseCustomers(customerTable)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "Tables loaded",
		slog.Int("sales", len(sales)),
		slog.Int("products", len(products)),
		slog.Int("customers", len(customers)))

	return &domain.Tables{
		Sales:     sales,
		Products:  products,
		Customers: customers,
	}, nil
}

// ParseSales converts a raw sales table. The sale's region may be headed
// either Region or Region_x.
func ParseSales(t *Table) ([]domain.Sale, error) {
	cols, err := lookupColumns(t, [][]string{
		{"Sale_ID"},
		{"Date"},
		{"Product_ID"},
		{"Customer_ID"},
		{"Units_Sold"},
		{"Unit_Price"},
		{"Promotion_Applied"},
		{"Region", "Region_x"},
	})
	if err != nil {
		return nil, err
	}
	saleID, date, productID, customerID, units, price, promo, region :=
		cols[0], cols[1], cols[2], cols[3], cols[4], cols[5], cols[6], cols[7]

	sales := make([]domain.Sale, 0, t.Len())
	for i := range t.Rows {
		s := domain.Sale{
			SaleID:           ParseString(t.Cell(i, saleID)),
			ProductID:        ParseString(t.Cell(i, productID)),
			CustomerID:       ParseString(t.Cell(i, customerID)),
			PromotionApplied: ParseString(t.Cell(i, promo)),
			Region:           ParseString(t.Cell(i, region)),
		}

		if s.Date, err = t.ParseDate(t.Cell(i, date)); err != nil {
			return nil, cellError(t, i, "Date", err)
		}
		if s.UnitsSold, err = ParseFloat(t.Cell(i, units)); err != nil {
			return nil, cellError(t, i, "Units_Sold", err)
		}
		if s.UnitPrice, err = ParseFloat(t.Cell(i, price)); err != nil {
			return nil, cellError(t, i, "Unit_Price", err)
		}

		sales = append(sales, s)
	}
	return sales, nil
}

// ParseProducts converts a raw product table
func ParseProducts(t *Table) ([]domain.Product, error) {
	cols, err := lookupColumns(t, [][]string{{"Product_ID"}, {"Product_Name"}, {"Category"}})
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, t.Len())
	for i := range t.Rows {
		products = append(products, domain.Product{
			ProductID:   ParseString(t.Cell(i, cols[0])),
			ProductName: ParseString(t.Cell(i, cols[1])),
			Category:    ParseString(t.Cell(i, cols[2])),
		})
	}
	return products, nil
}

// ParseCustomers converts a raw customer table
func ParseCustomers(t *Table) ([]domain.Customer, error) {
	cols, err := lookupColumns(t, [][]string{{"Customer_ID"}, {"Region"}})
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, t.Len())
	for i := range t.Rows {
		customers = append(customers, domain.Customer{
			CustomerID: ParseString(t.Cell(i, cols[0])),
			Region:     ParseString(t.Cell(i, cols[1])),
		})
	}
	return customers, nil
}

// lookupColumns resolves each group of alternative names to a column index
func lookupColumns(t *Table, groups [][]string) ([]int, error) {
	cols := make([]int, len(groups))
	for i, names := range groups {
		idx, err := t.Column(names...)
		if err != nil {
			return nil, err
		}
		cols[i] = idx
	}
	return cols, nil
}
