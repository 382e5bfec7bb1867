package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
)

// Paths contains every file the report reads or writes.
// This is the single source of truth for artifact locations.
type Paths struct {
	OutputDir string

	// Inputs
	SalesFile     string
	ProductsFile  string
	CustomersFile string

	// Charts
	MonthlySalesChart  string
	TopProductsChart   string
	TopCategoriesChart string
	CorrelationChart   string

	// Tabular exports
	SalesByProductCSV string
	CustomerRFMCSV    string
	InventoryCSV      string
	Workbook          string

	// Telemetry
	MetricsFile string
	TraceFile   string
}

// GetPaths resolves the configured inputs and the fixed artifact names
// against the output directory.
func (c *Config) GetPaths() (*Paths, error) {
	outDir, err := filepath.Abs(c.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory %s: %w", c.Output.Dir, err)
	}

	return &Paths{
		OutputDir: outDir,

		SalesFile:     c.Inputs.SalesFile,
		ProductsFile:  c.Inputs.ProductsFile,
		CustomersFile: c.Inputs.CustomersFile,

		MonthlySalesChart:  filepath.Join(outDir, MonthlySalesChartFile),
		TopProductsChart:   filepath.Join(outDir, TopProductsChartFile),
		TopCategoriesChart: filepath.Join(outDir, TopCategoriesChartFile),
		CorrelationChart:   filepath.Join(outDir, CorrelationChartFile),

		SalesByProductCSV: filepath.Join(outDir, SalesByProductFile),
		CustomerRFMCSV:    filepath.Join(outDir, CustomerRFMFile),
		InventoryCSV:      filepath.Join(outDir, InventoryFile),
		Workbook:          filepath.Join(outDir, WorkbookFile),

		MetricsFile: filepath.Join(outDir, MetricsFile),
		TraceFile:   filepath.Join(outDir, TraceFile),
	}, nil
}

// Artifacts lists the report files in the order they are produced
func (p *Paths) Artifacts() []string {
	return []string{
		p.MonthlySalesChart,
		p.TopProductsChart,
		p.TopCategoriesChart,
		p.CorrelationChart,
		p.SalesByProductCSV,
		p.CustomerRFMCSV,
		p.InventoryCSV,
	}
}

// LogPathResolution logs path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Info("Path resolution summary",
		slog.Group("inputs",
			slog.String("sales", p.SalesFile),
			slog.String("products", p.ProductsFile),
			slog.String("customers", p.CustomersFile),
		),
		slog.Group("outputs",
			slog.String("dir", p.OutputDir),
			slog.Int("artifacts", len(p.Artifacts())),
		))
}
