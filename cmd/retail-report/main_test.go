package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/internal/config"
	apperrors "retailcli/internal/errors"
	"retailcli/internal/infrastructure"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-sales", "s.csv", "-out", "reports", "-top", "3", "-workbook"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "s.csv", opts.sales)
	assert.Equal(t, "reports", opts.outDir)
	assert.Equal(t, 3, opts.top)
	assert.True(t, opts.workbook)
	assert.True(t, opts.set["sales"])
	assert.False(t, opts.set["products"])
}

func TestParseFlags_Unknown(t *testing.T) {
	var out bytes.Buffer
	_, err := parseFlags([]string{"-bogus"}, &out)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "bogus")
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	opts, err := parseFlags([]string{"-customers", "c.xlsx", "-top", "7"}, io.Discard)
	require.NoError(t, err)

	require.NoError(t, applyFlags(cfg, opts))
	assert.Equal(t, "c.xlsx", cfg.Inputs.CustomersFile)
	assert.Equal(t, 7, cfg.Report.TopProducts)
	// Unset flags leave the loaded values alone
	assert.Equal(t, config.DefaultSalesFile, cfg.Inputs.SalesFile)
	assert.Equal(t, ".", cfg.Output.Dir)
}

func TestApplyFlags_Invalid(t *testing.T) {
	cfg := config.Default()
	opts, err := parseFlags([]string{"-top", "0"}, io.Discard)
	require.NoError(t, err)

	err = applyFlags(cfg, opts)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestRun_EndToEnd(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	sales := writeFile(t, dir, "sales.csv",
		"Sale_ID,Date,Product_ID,Customer_ID,Units_Sold,Unit_Price,Promotion_Applied,Region\n"+
			"S1,2024-01-15,P1,C1,2,100,Yes,North\n"+
			"S2,2024-02-10,P2,C2,30,50,No,South\n"+
			"S3,2024-03-05,P1,C1,3,600,No,North\n")
	products := writeFile(t, dir, "products.csv", "Product_ID,Product_Name,Category\nP1,Widget,Hardware\nP2,Gadget,Electronics\n")
	customers := writeFile(t, dir, "customers.csv", "Customer_ID,Region\nC1,North\nC2,South\n")
	cfgPath := writeFile(t, dir, "config.yaml",
		"logging:\n  level: error\n  output: console\ntelemetry:\n  trace_exporter: stdout\n  write_metrics: true\n")

	opts, err := parseFlags([]string{
		"-config", cfgPath,
		"-sales", sales,
		"-products", products,
		"-customers", customers,
		"-out", outDir,
	}, io.Discard)
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &stdout))

	for _, name := range []string{
		config.MonthlySalesChartFile,
		config.TopProductsChartFile,
		config.TopCategoriesChartFile,
		config.CorrelationChartFile,
		config.SalesByProductFile,
		config.CustomerRFMFile,
		config.InventoryFile,
		config.MetricsFile,
		config.TraceFile,
	} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	assert.NoFileExists(t, filepath.Join(outDir, config.WorkbookFile))

	report := stdout.String()
	assert.Contains(t, report, "Top Products:")
	assert.Contains(t, report, "Products with Declining Sales:")

	metrics, err := os.ReadFile(filepath.Join(outDir, config.MetricsFile))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "operation_steps_total")
}

func TestRun_MissingInput(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "logging:\n  level: error\n")
	opts, err := parseFlags([]string{
		"-config", cfgPath,
		"-sales", filepath.Join(dir, "nope.csv"),
		"-out", filepath.Join(dir, "out"),
	}, io.Discard)
	require.NoError(t, err)

	var stdout bytes.Buffer
	err = run(context.Background(), opts, &stdout)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	assert.Empty(t, stdout.String())
}
