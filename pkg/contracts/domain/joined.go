package domain

import (
	"database/sql"
	"time"
)

// JoinedRow is one row of the sales table after the product and customer
// left joins. Column names follow the relational export: Region_x is the
// sale's region and Region_y the customer's.
//
// Month, Day and Weekday are derived from Date when the sale is loaded and
// are forward-filled independently like every other column. TotalSales is
// only set by the cleaner, after clipping.
type JoinedRow struct {
	SaleID           sql.Null[string]
	Date             sql.Null[time.Time]
	ProductID        sql.Null[string]
	CustomerID       sql.Null[string]
	UnitsSold        sql.Null[float64]
	UnitPrice        sql.Null[float64]
	PromotionApplied sql.Null[string]
	RegionX          sql.Null[string]
	Month            sql.Null[int64]
	Day              sql.Null[int64]
	Weekday          sql.Null[string]
	ProductName      sql.Null[string]
	Category         sql.Null[string]
	RegionY          sql.Null[string]
	TotalSales       sql.Null[float64]
}

// JoinedColumns lists the joined table's columns in storage order
var JoinedColumns = []string{
	"Sale_ID",
	"Date",
	"Product_ID",
	"Customer_ID",
	"Units_Sold",
	"Unit_Price",
	"Promotion_Applied",
	"Region_x",
	"Month",
	"Day",
	"Weekday",
	"Product_Name",
	"Category",
	"Region_y",
	"Total_Sales",
}

// DateTimeLayout is how dates are rendered in the relational copy
const DateTimeLayout = "2006-01-02 15:04:05"

// Values returns the row's cells in JoinedColumns order as driver-ready
// values. Missing cells are nil and dates are rendered with DateTimeLayout.
func (r JoinedRow) Values() []any {
	var date any
	if r.Date.Valid {
		date = r.Date.V.Format(DateTimeLayout)
	}

	return []any{
		nullable(r.SaleID),
		date,
		nullable(r.ProductID),
		nullable(r.CustomerID),
		nullable(r.UnitsSold),
		nullable(r.UnitPrice),
		nullable(r.PromotionApplied),
		nullable(r.RegionX),
		nullable(r.Month),
		nullable(r.Day),
		nullable(r.Weekday),
		nullable(r.ProductName),
		nullable(r.Category),
		nullable(r.RegionY),
		nullable(r.TotalSales),
	}
}

func nullable[T any](n sql.Null[T]) any {
	if !n.Valid {
		return nil
	}
	return n.V
}
