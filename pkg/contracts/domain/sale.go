package domain

import (
	"database/sql"
	"time"
)

// Sale is one row of the sales table. Any cell may be empty in the source,
// so every field is nullable. Keys are kept as trimmed strings and matched
// exactly.
type Sale struct {
	SaleID           sql.Null[string]    `json:"sale_id" csv:"Sale_ID"`
	Date             sql.Null[time.Time] `json:"date" csv:"Date"`
	ProductID        sql.Null[string]    `json:"product_id" csv:"Product_ID"`
	CustomerID       sql.Null[string]    `json:"customer_id" csv:"Customer_ID"`
	UnitsSold        sql.Null[float64]   `json:"units_sold" csv:"Units_Sold"`
	UnitPrice        sql.Null[float64]   `json:"unit_price" csv:"Unit_Price"`
	PromotionApplied sql.Null[string]    `json:"promotion_applied" csv:"Promotion_Applied"`
	Region           sql.Null[string]    `json:"region" csv:"Region"`
}

// Product is one row of the product catalog
type Product struct {
	ProductID   sql.Null[string] `json:"product_id" csv:"Product_ID"`
	ProductName sql.Null[string] `json:"product_name" csv:"Product_Name"`
	Category    sql.Null[string] `json:"category" csv:"Category"`
}

// Customer is one row of the customer table
type Customer struct {
	CustomerID sql.Null[string] `json:"customer_id" csv:"Customer_ID"`
	Region     sql.Null[string] `json:"region" csv:"Region"`
}

// Tables holds the three source tables as loaded
type Tables struct {
	Sales     []Sale
	Products  []Product
	Customers []Customer
}

// Valid wraps v as a present value
func Valid[T any](v T) sql.Null[T] {
	return sql.Null[T]{V: v, Valid: true}
}

// Missing returns an empty cell of type T
func Missing[T any]() sql.Null[T] {
	return sql.Null[T]{}
}
