package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "retailcli/internal/errors"
)

const (
	salesCSV = "Sale_ID,Date,Product_ID,Customer_ID,Units_Sold,Unit_Price,Promotion_Applied,Region\n" +
		"1,2024-01-15,P1,C1,2,100,Yes,North\n" +
		"2,2024-02-10,P2,C2,,50,No,\n" +
		"3,2024-03-05,P1,C1,3,600,NaN,South\n"
	productsCSV  = "Product_ID,Product_Name,Category\nP1,Widget,Tools\nP2,Gadget,Toys\n"
	customersCSV = "Customer_ID,Region,Segment\nC1,North,Retail\nC2,East,Wholesale\n"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	src := Sources{
		Sales:     writeFile(t, dir, "sales.csv", "\xEF\xBB\xBF"+salesCSV),
		Products:  writeFile(t, dir, "products.csv", productsCSV),
		Customers: writeFile(t, dir, "customers.csv", customersCSV),
	}

	tables, err := NewLoader(nil).Load(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, tables.Sales, 3)
	require.Len(t, tables.Products, 2)
	require.Len(t, tables.Customers, 2)

	first := tables.Sales[0]
	assert.Equal(t, "1", first.SaleID.V)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), first.Date.V)
	assert.Equal(t, 2.0, first.UnitsSold.V)
	assert.Equal(t, "Yes", first.PromotionApplied.V)
	assert.Equal(t, "North", first.Region.V)

	second := tables.Sales[1]
	assert.False(t, second.UnitsSold.Valid)
	assert.False(t, second.Region.Valid)
	assert.True(t, second.UnitPrice.Valid)

	assert.False(t, tables.Sales[2].PromotionApplied.Valid)

	assert.Equal(t, "Gadget", tables.Products[1].ProductName.V)
	assert.Equal(t, "East", tables.Customers[1].Region.V)
}

func TestLoader_RegionXHeader(t *testing.T) {
	dir := t.TempDir()
	table, err := ReadTable("sales", writeFile(t, dir, "sales.csv",
		"Region_x,Sale_ID,Date,Product_ID,Customer_ID,Units_Sold,Unit_Price,Promotion_Applied\n"+
			"West,9,2024/05/01,P1,C1,1,10,No\n"))
	require.NoError(t, err)

	sales, err := ParseSales(table)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "West", sales[0].Region.V)
	assert.Equal(t, time.May, sales[0].Date.V.Month())
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name     string
		sales    string
		wantType apperrors.ErrorType
		wantCtx  map[string]interface{}
	}{
		{
			name:     "missing referenced column",
			sales:    "Sale_ID,Date,Product_ID,Customer_ID,Units_Sold,Promotion_Applied,Region\n1,2024-01-01,P1,C1,1,No,N\n",
			wantType: apperrors.ErrTypeSchema,
			wantCtx:  map[string]interface{}{"table": "sales", "column": "Unit_Price"},
		},
		{
			name:     "malformed date",
			sales:    "Sale_ID,Date,Product_ID,Customer_ID,Units_Sold,Unit_Price,Promotion_Applied,Region\n1,2024-01-01,P1,C1,1,10,No,N\n2,yesterday,P1,C1,1,10,No,N\n",
			wantType: apperrors.ErrTypeParsing,
			wantCtx:  map[string]interface{}{"row": 3, "column": "Date"},
		},
		{
			name:     "non-numeric units",
			sales:    "Sale_ID,Date,Product_ID,Customer_ID,Units_Sold,Unit_Price,Promotion_Applied,Region\n1,2024-01-01,P1,C1,many,10,No,N\n",
			wantType: apperrors.ErrTypeParsing,
			wantCtx:  map[string]interface{}{"row": 2, "column": "Units_Sold"},
		},
		{
			name:     "empty file",
			sales:    "",
			wantType: apperrors.ErrTypeParsing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := Sources{
				Sales:     writeFile(t, dir, "sales.csv", tt.sales),
				Products:  writeFile(t, dir, "products.csv", productsCSV),
				Customers: writeFile(t, dir, "customers.csv", customersCSV),
			}

			_, err := NewLoader(nil).Load(context.Background(), src)
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantType, appErr.Type)
			for k, v := range tt.wantCtx {
				assert.Equal(t, v, appErr.Context[k], k)
			}
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	dir := t.TempDir()
	src := Sources{
		Sales:     writeFile(t, dir, "sales.csv", salesCSV),
		Products:  filepath.Join(dir, "absent.csv"),
		Customers: writeFile(t, dir, "customers.csv", customersCSV),
	}

	_, err := NewLoader(nil).Load(context.Background(), src)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestReadTable_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Product_ID", "Product_Name", "Category"},
		{"P1", "Widget", "Tools"},
		{},
		{"P2", "Gadget", nil},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ReadTable("products", path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Product_ID", "Product_Name", "Category"}, table.Header)
	require.Equal(t, 2, table.Len())

	products, err := ParseProducts(table)
	require.NoError(t, err)
	assert.Equal(t, "Gadget", products[1].ProductName.V)
	assert.False(t, products[1].Category.Valid)
}

func TestReadTable_XLSXDateCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Sale_ID", "Date", "Product_ID", "Customer_ID", "Units_Sold", "Unit_Price", "Promotion_Applied", "Region"},
		{1, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "P1", "C1", 2, 19.5, "Yes", "North"},
		{2, "2024-02-10", "P2", "C2", 30, 50, "No", "South"},
		{3, nil, "P1", "C1", 3, 600, "No", "North"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ReadTable("sales", path)
	require.NoError(t, err)

	sales, err := ParseSales(table)
	require.NoError(t, err)
	require.Len(t, sales, 3)

	require.True(t, sales[0].Date.Valid)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), sales[0].Date.V)
	assert.Equal(t, 19.5, sales[0].UnitPrice.V)
	assert.Equal(t, "1", sales[0].SaleID.V)

	require.True(t, sales[1].Date.Valid)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), sales[1].Date.V)
	assert.False(t, sales[2].Date.Valid)
}

func TestParseDate_SerialOnlyForWorkbooks(t *testing.T) {
	csvTable, err := ReadTable("sales", writeFile(t, t.TempDir(), "sales.csv", salesCSV))
	require.NoError(t, err)
	_, err = csvTable.ParseDate("45306")
	assert.Error(t, err)

	got, err := ParseExcelDate(45306, false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got.V)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05 13:45:00", time.Date(2024, 3, 5, 13, 45, 0, 0, time.UTC)},
		{"2024/03/05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"03/05/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			require.True(t, got.Valid)
			assert.Equal(t, tt.want, got.V)
		})
	}

	missing, err := ParseDate("NaT")
	require.NoError(t, err)
	assert.False(t, missing.Valid)

	_, err = ParseDate("05.03.2024")
	assert.Error(t, err)
}
