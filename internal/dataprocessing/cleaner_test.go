package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/pkg/contracts/domain"
)

func TestForwardFill(t *testing.T) {
	rows := []domain.JoinedRow{
		{SaleID: domain.Valid("1"), UnitsSold: domain.Missing[float64](), ProductName: domain.Valid("Widget")},
		{SaleID: domain.Valid("2"), UnitsSold: domain.Valid(4.0), ProductName: domain.Missing[string]()},
		{SaleID: domain.Missing[string](), UnitsSold: domain.Missing[float64](), Date: domain.Valid(date(2024, 2, 1))},
		{SaleID: domain.Valid("4"), UnitsSold: domain.Valid(6.0)},
	}

	filled, n := NewForwardFillProcessor().FillMissingDataWithStats(rows)
	require.Len(t, filled, 4)

	// Leading gap stays empty
	assert.False(t, filled[0].UnitsSold.Valid)
	assert.False(t, filled[0].Date.Valid)

	assert.Equal(t, "Widget", filled[1].ProductName.V)
	assert.Equal(t, "2", filled[2].SaleID.V)
	assert.Equal(t, 4.0, filled[2].UnitsSold.V)
	assert.Equal(t, "Widget", filled[3].ProductName.V)
	assert.Equal(t, date(2024, 2, 1), filled[3].Date.V)

	// ProductName x3, SaleID, UnitsSold, Date
	assert.Equal(t, 6, n)

	// The input is untouched
	assert.False(t, rows[2].SaleID.Valid)
}

func TestClip(t *testing.T) {
	rows := []domain.JoinedRow{
		{UnitsSold: domain.Valid(0.0), UnitPrice: domain.Valid(5.0)},
		{UnitsSold: domain.Valid(25.0), UnitPrice: domain.Valid(900.0)},
		{UnitsSold: domain.Valid(7.0), UnitPrice: domain.Valid(120.0)},
		{UnitsSold: domain.Missing[float64](), UnitPrice: domain.Valid(500.0)},
	}

	opts := DefaultOptions()
	units, prices := Clip(rows, opts.Units, opts.Price)

	assert.Equal(t, 2, units)
	assert.Equal(t, 2, prices)
	assert.Equal(t, 1.0, rows[0].UnitsSold.V)
	assert.Equal(t, 10.0, rows[0].UnitPrice.V)
	assert.Equal(t, 20.0, rows[1].UnitsSold.V)
	assert.Equal(t, 500.0, rows[1].UnitPrice.V)
	assert.Equal(t, 7.0, rows[2].UnitsSold.V)
	assert.False(t, rows[3].UnitsSold.Valid)
}

func TestCleaner_Properties(t *testing.T) {
	units := []float64{-3, 0, 1, 2.5, 19, 20, 21, 1000}
	prices := []float64{-1, 0, 9.99, 10, 250, 500, 500.01, 1e6}

	var rows []domain.JoinedRow
	for _, u := range units {
		for _, p := range prices {
			rows = append(rows, domain.JoinedRow{
				UnitsSold: domain.Valid(u),
				UnitPrice: domain.Valid(p),
			})
		}
	}

	cleaned, stats := NewCleaner(DefaultOptions(), nil).ProcessWithStats(context.Background(), rows)
	require.Len(t, cleaned, len(rows))
	assert.Zero(t, stats.MissingTotals)

	for i, r := range cleaned {
		assert.GreaterOrEqual(t, r.UnitsSold.V, 1.0, "row %d", i)
		assert.LessOrEqual(t, r.UnitsSold.V, 20.0, "row %d", i)
		assert.GreaterOrEqual(t, r.UnitPrice.V, 10.0, "row %d", i)
		assert.LessOrEqual(t, r.UnitPrice.V, 500.0, "row %d", i)
		require.True(t, r.TotalSales.Valid)
		assert.Equal(t, r.UnitsSold.V*r.UnitPrice.V, r.TotalSales.V, "row %d", i)
	}
}

func TestCleaner_FillsBeforeClipping(t *testing.T) {
	rows := []domain.JoinedRow{
		{UnitsSold: domain.Missing[float64](), UnitPrice: domain.Valid(50.0)},
		{UnitsSold: domain.Valid(40.0), UnitPrice: domain.Valid(50.0)},
		{UnitsSold: domain.Missing[float64](), UnitPrice: domain.Missing[float64]()},
	}

	cleaned, stats := NewCleaner(DefaultOptions(), nil).ProcessWithStats(context.Background(), rows)

	assert.False(t, cleaned[0].TotalSales.Valid)
	assert.Equal(t, 1000.0, cleaned[1].TotalSales.V)
	// The filled 40 is clipped like any other value
	assert.Equal(t, 20.0, cleaned[2].UnitsSold.V)
	assert.Equal(t, 1000.0, cleaned[2].TotalSales.V)

	assert.Equal(t, 2, stats.FilledCells)
	assert.Equal(t, 2, stats.ClippedUnits)
	assert.Equal(t, 1, stats.MissingTotals)
}
