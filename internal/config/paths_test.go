package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

)

func TestGetPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Output.Dir = dir

	paths, err := cfg.GetPaths()
	require.NoError(t, err)

	assert.Equal(t, dir, paths.OutputDir)
	assert.Equal(t, filepath.Join(dir, "monthly_sales_trend.png"), paths.MonthlySalesChart)
	assert.Equal(t, filepath.Join(dir, "top_products.png"), paths.TopProductsChart)
	assert.Equal(t, filepath.Join(dir, "top_categories.png"), paths.TopCategoriesChart)
	assert.Equal(t, filepath.Join(dir, "sales_correlation_heatmap.png"), paths.CorrelationChart)
	assert.Equal(t, filepath.Join(dir, "sales_by_product.csv"), paths.SalesByProductCSV)
	assert.Equal(t, filepath.Join(dir, "customer_rfm.csv"), paths.CustomerRFMCSV)
	assert.Equal(t, filepath.Join(dir, "inventory_suggestions.csv"), paths.InventoryCSV)
	assert.Len(t, paths.Artifacts(), 7)

	// Inputs stay as configured
	assert.Equal(t, "sales_data.csv", paths.SalesFile)
}

func TestGetPaths_RelativeOutputIsAbsolute(t *testing.T) {
	cfg := Default()
	cfg.Output.Dir = "reports"

	paths, err := cfg.GetPaths()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(paths.OutputDir))
	assert.Equal(t, "reports", filepath.Base(paths.OutputDir))
}
