package config

// Application constants
const (
	// Application Info
	AppName    = "retail-report"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment override (RETAIL_OUTPUT_DIR, ...)
	EnvPrefix = "RETAIL"

	// Default input tables
	DefaultSalesFile     = "sales_data.csv"
	DefaultProductsFile  = "product_data.csv"
	DefaultCustomersFile = "customer_data.csv"

	// SalesTable is the relational name of the joined table
	SalesTable = "sales_data"

	// Report artifacts, written into the output directory
	MonthlySalesChartFile  = "monthly_sales_trend.png"
	TopProductsChartFile   = "top_products.png"
	TopCategoriesChartFile = "top_categories.png"
	CorrelationChartFile   = "sales_correlation_heatmap.png"
	SalesByProductFile     = "sales_by_product.csv"
	CustomerRFMFile        = "customer_rfm.csv"
	InventoryFile          = "inventory_suggestions.csv"
	WorkbookFile           = "retail_analysis.xlsx"
	MetricsFile            = "metrics.prom"
	TraceFile              = "trace.json"
)
