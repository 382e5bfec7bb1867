package operations

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gonum.org/v1/plot/vg"

	"retailcli/internal/analytics"
	"retailcli/internal/charts"
	"retailcli/internal/config"
	"retailcli/internal/dataprocessing"
	"retailcli/internal/dataset"
	"retailcli/internal/exporter"
	"retailcli/internal/report"
	"retailcli/internal/store"
)

// StageOptions carries what the retail steps need to run
type StageOptions struct {
	Sources        dataset.Sources
	Paths          *config.Paths
	Cleaning       dataprocessing.ProcessingOptions
	Analytics      analytics.Options
	Charts         charts.Options
	Store          config.StoreConfig
	DecliningShown int
	WriteBOM       bool
	Workbook       bool
	Out            io.Writer
	Logger         *slog.Logger
}

// StageOptionsFromConfig maps the configuration onto step options
func StageOptionsFromConfig(cfg *config.Config, paths *config.Paths, out io.Writer, logger *slog.Logger) StageOptions {
	if logger == nil {
		logger = slog.Default()
	}
	return StageOptions{
		Sources: dataset.Sources{
			Sales:     paths.SalesFile,
			Products:  paths.ProductsFile,
			Customers: paths.CustomersFile,
		},
		Paths: paths,
		Cleaning: dataprocessing.ProcessingOptions{
			EnableForwardFill: true,
			Units:             dataprocessing.Bounds{Min: cfg.Cleaning.UnitsMin, Max: cfg.Cleaning.UnitsMax},
			Price:             dataprocessing.Bounds{Min: cfg.Cleaning.PriceMin, Max: cfg.Cleaning.PriceMax},
		},
		Analytics: analytics.Options{TopProducts: cfg.Report.TopProducts},
		Charts: charts.Options{
			Width:       vg.Length(cfg.Charts.WidthInches) * vg.Inch,
			Height:      vg.Length(cfg.Charts.HeightInches) * vg.Inch,
			HeatmapSize: vg.Length(cfg.Charts.HeatmapSizeInches) * vg.Inch,
		},
		Store:          cfg.Store,
		DecliningShown: cfg.Report.DecliningShown,
		WriteBOM:       cfg.Output.WriteBOM,
		Workbook:       cfg.Output.Workbook,
		Out:            out,
		Logger:         logger,
	}
}

// NewRetailRegistry registers the report steps in execution order
func NewRetailRegistry(opts StageOptions) (*Registry, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	exp := exporter.NewReportExporter(opts.Paths, opts.WriteBOM, opts.Logger)

	steps := []Step{
		NewLoadStage(opts),
		NewMergeStage(opts),
		NewCleanStage(opts),
		NewAggregateStage(opts),
		NewSegmentStage(opts),
		NewChartsStage(opts),
		NewExportStage(exp),
	}
	if opts.Workbook {
		steps = append(steps, NewWorkbookStage(exp))
	}
	steps = append(steps,
		NewStoreStage(opts),
		NewReportStage(opts),
	)

	registry := NewRegistry()
	for _, step := range steps {
		if err := registry.Register(step); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// recordMetadata sets a metadata value on the step's state, if it is tracked
func recordMetadata(state *OperationState, stepID, key string, value interface{}) {
	if s := state.GetStage(stepID); s != nil {
		s.SetMetadata(key, value)
	}
}

// requireTables fails when the load step has not run
func requireTables(state *OperationState, stepID string) error {
	if state.Tables == nil {
		return NewFatalError(fmt.Sprintf("step %s ran before the tables were loaded", stepID), nil)
	}
	return nil
}

// LoadStage reads the three source tables
type LoadStage struct {
	BaseStage
	loader  *dataset.Loader
	sources dataset.Sources
}

// NewLoadStage creates a new load Step
func NewLoadStage(opts StageOptions) *LoadStage {
	return &LoadStage{
		BaseStage: NewBaseStage(StageIDLoad, StageNameLoad),
		loader:    dataset.NewLoader(opts.Logger),
		sources:   opts.Sources,
	}
}

// Execute loads sales, products and customers
func (s *LoadStage) Execute(ctx context.Context, state *OperationState) error {
	tables, err := s.loader.Load(ctx, s.sources)
	if err != nil {
		return err
	}
	state.Tables = tables

	recordMetadata(state, s.ID(), MetadataRows, len(tables.Sales))
	recordMetadata(state, s.ID(), "products", len(tables.Products))
	recordMetadata(state, s.ID(), "customers", len(tables.Customers))
	return nil
}

// MergeStage left-joins sales to products and customers
type MergeStage struct {
	BaseStage
	logger *slog.Logger
}

// NewMergeStage creates a new merge Step
func NewMergeStage(opts StageOptions) *MergeStage {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &MergeStage{
		BaseStage: NewBaseStage(StageIDMerge, StageNameMerge),
		logger:    logger.With(slog.String("step", StageIDMerge)),
	}
}

// Execute builds the joined table
func (s *MergeStage) Execute(ctx context.Context, state *OperationState) error {
	if err := requireTables(state, s.ID()); err != nil {
		return err
	}

	rows, stats := dataprocessing.Merge(state.Tables)
	state.Rows = rows
	state.MergeStats = stats

	if stats.UnmatchedProducts > 0 || stats.UnmatchedCustomers > 0 {
		s.logger.WarnContext(ctx, "Sales without a matching product or customer",
			slog.Int("unmatched_products", stats.UnmatchedProducts),
			slog.Int("unmatched_customers", stats.UnmatchedCustomers))
	}

	recordMetadata(state, s.ID(), MetadataRows, stats.JoinedRows)
	recordMetadata(state, s.ID(), "unmatched_products", stats.UnmatchedProducts)
	recordMetadata(state, s.ID(), "unmatched_customers", stats.UnmatchedCustomers)
	return nil
}

// CleanStage forward-fills, clips and computes Total_Sales
type CleanStage struct {
	BaseStage
	cleaner *dataprocessing.Cleaner
}

// NewCleanStage creates a new cleaning Step
func NewCleanStage(opts StageOptions) *CleanStage {
	return &CleanStage{
		BaseStage: NewBaseStage(StageIDClean, StageNameClean),
		cleaner:   dataprocessing.NewCleaner(opts.Cleaning, opts.Logger),
	}
}

// Execute cleans the joined rows
func (s *CleanStage) Execute(ctx context.Context, state *OperationState) error {
	if err := requireTables(state, s.ID()); err != nil {
		return err
	}

	rows, stats := s.cleaner.ProcessWithStats(ctx, state.Rows)
	state.Rows = rows
	state.CleanStats = stats

	recordMetadata(state, s.ID(), MetadataRows, stats.Rows)
	recordMetadata(state, s.ID(), "filled_cells", stats.FilledCells)
	recordMetadata(state, s.ID(), "clipped_units", stats.ClippedUnits)
	recordMetadata(state, s.ID(), "clipped_prices", stats.ClippedPrices)
	return nil
}

// AggregateStage computes the sales summaries
type AggregateStage struct {
	BaseStage
	aggregator *analytics.Aggregator
}

// NewAggregateStage creates a new aggregation Step
func NewAggregateStage(opts StageOptions) *AggregateStage {
	return &AggregateStage{
		BaseStage:  NewBaseStage(StageIDAggregate, StageNameAggregate),
		aggregator: analytics.NewAggregator(opts.Analytics, opts.Logger),
	}
}

// Execute summarizes the cleaned rows
func (s *AggregateStage) Execute(ctx context.Context, state *OperationState) error {
	if err := requireTables(state, s.ID()); err != nil {
		return err
	}

	summary := s.aggregator.Summarize(ctx, state.Rows)
	state.Summary = &summary

	recordMetadata(state, s.ID(), MetadataRows, len(state.Rows))
	recordMetadata(state, s.ID(), "products", summary.SalesByProduct.Len())
	recordMetadata(state, s.ID(), "grand_total", summary.GrandTotal)
	return nil
}

// SegmentStage profiles customers by recency, frequency and monetary value
type SegmentStage struct {
	BaseStage
}

// NewSegmentStage creates a new customer segmentation Step
func NewSegmentStage(opts StageOptions) *SegmentStage {
	return &SegmentStage{BaseStage: NewBaseStage(StageIDSegment, StageNameSegment)}
}

// Execute computes the RFM table
func (s *SegmentStage) Execute(ctx context.Context, state *OperationState) error {
	if err := requireTables(state, s.ID()); err != nil {
		return err
	}

	state.Customers = analytics.ComputeRFM(state.Rows)
	recordMetadata(state, s.ID(), MetadataRows, len(state.Customers))
	return nil
}

// ChartsStage renders the PNG charts
type ChartsStage struct {
	BaseStage
	renderer *charts.Renderer
	paths    *config.Paths
}

// NewChartsStage creates a new chart rendering Step
func NewChartsStage(opts StageOptions) *ChartsStage {
	return &ChartsStage{
		BaseStage: NewBaseStage(StageIDCharts, StageNameCharts),
		renderer:  charts.NewRenderer(opts.Charts, opts.Logger),
		paths:     opts.Paths,
	}
}

// Execute draws the trend, ranking and correlation charts
func (s *ChartsStage) Execute(ctx context.Context, state *OperationState) error {
	if state.Summary == nil {
		return NewFatalError("charts need the sales summary", nil)
	}
	summary := state.Summary

	renders := []struct {
		path   string
		render func() error
	}{
		{s.paths.MonthlySalesChart, func() error {
			return s.renderer.MonthlySalesTrend(ctx, summary.MonthlySales, s.paths.MonthlySalesChart)
		}},
		{s.paths.TopProductsChart, func() error {
			return s.renderer.TopProducts(ctx, summary.TopProducts, s.paths.TopProductsChart)
		}},
		{s.paths.TopCategoriesChart, func() error {
			return s.renderer.TopCategories(ctx, summary.TopCategories, s.paths.TopCategoriesChart)
		}},
		{s.paths.CorrelationChart, func() error {
			return s.renderer.CorrelationHeatmap(ctx, summary.Correlation, s.paths.CorrelationChart)
		}},
	}

	for _, r := range renders {
		if err := r.render(); err != nil {
			return err
		}
		state.AddArtifact(r.path)
	}

	recordMetadata(state, s.ID(), MetadataArtifacts, len(renders))
	return nil
}

// ExportStage writes the CSV exports
type ExportStage struct {
	BaseStage
	exporter *exporter.ReportExporter
}

// NewExportStage creates a new CSV export Step
func NewExportStage(exp *exporter.ReportExporter) *ExportStage {
	return &ExportStage{
		BaseStage: NewBaseStage(StageIDExport, StageNameExport),
		exporter:  exp,
	}
}

// Execute writes sales by product, customer RFM and inventory suggestions
func (s *ExportStage) Execute(ctx context.Context, state *OperationState) error {
	if state.Summary == nil {
		return NewFatalError("export needs the sales summary", nil)
	}

	exports := []func() (string, error){
		func() (string, error) { return s.exporter.ExportSalesByProduct(ctx, state.Summary.SalesByProduct) },
		func() (string, error) { return s.exporter.ExportCustomerRFM(ctx, state.Customers) },
		func() (string, error) { return s.exporter.ExportInventory(ctx, state.Summary.InventorySuggestions) },
	}

	for _, export := range exports {
		path, err := export()
		if err != nil {
			return err
		}
		state.AddArtifact(path)
	}

	recordMetadata(state, s.ID(), MetadataArtifacts, len(exports))
	return nil
}

// WorkbookStage writes every summary into one xlsx workbook
type WorkbookStage struct {
	BaseStage
	exporter *exporter.ReportExporter
}

// NewWorkbookStage creates a new workbook export Step
func NewWorkbookStage(exp *exporter.ReportExporter) *WorkbookStage {
	return &WorkbookStage{
		BaseStage: NewBaseStage(StageIDWorkbook, StageNameWorkbook),
		exporter:  exp,
	}
}

// Execute writes the workbook
func (s *WorkbookStage) Execute(ctx context.Context, state *OperationState) error {
	if state.Summary == nil {
		return NewFatalError("workbook needs the sales summary", nil)
	}

	path, err := s.exporter.ExportWorkbook(ctx, *state.Summary, state.Customers)
	if err != nil {
		return err
	}
	state.AddArtifact(path)
	return nil
}

// StoreStage loads the joined table into the relational store
type StoreStage struct {
	BaseStage
	config config.StoreConfig
	logger *slog.Logger
}

// NewStoreStage creates a new store Step
func NewStoreStage(opts StageOptions) *StoreStage {
	return &StoreStage{
		BaseStage: NewBaseStage(StageIDStore, StageNameStore),
		config:    opts.Store,
		logger:    opts.Logger,
	}
}

// Execute replaces the sales table and reads back its row count
func (s *StoreStage) Execute(ctx context.Context, state *OperationState) error {
	if err := requireTables(state, s.ID()); err != nil {
		return err
	}

	db, err := store.Open(ctx, s.config.Driver, s.config.DSN, s.config.Table, s.logger)
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := db.LoadSalesData(ctx, state.Rows)
	if err != nil {
		return err
	}
	state.StoredRows = count

	recordMetadata(state, s.ID(), MetadataRows, count)
	return nil
}

// ReportStage prints the summary to the console
type ReportStage struct {
	BaseStage
	printer *report.Printer
}

// NewReportStage creates a new console report Step
func NewReportStage(opts StageOptions) *ReportStage {
	return &ReportStage{
		BaseStage: NewBaseStage(StageIDReport, StageNameReport),
		printer:   report.NewPrinter(opts.Out, opts.DecliningShown),
	}
}

// Execute prints every report section
func (s *ReportStage) Execute(ctx context.Context, state *OperationState) error {
	if state.Summary == nil {
		return NewFatalError("report needs the sales summary", nil)
	}
	return s.printer.Print(*state.Summary)
}
