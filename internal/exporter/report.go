package exporter

import (
	"context"
	"log/slog"

	"retailcli/internal/config"
	"retailcli/pkg/contracts/domain"
)

// ReportExporter writes the tabular report artifacts
type ReportExporter struct {
	writer *CSVWriter
	paths  *config.Paths
	bom    bool
	logger *slog.Logger
}

// NewReportExporter creates an exporter writing into paths. bom prefixes
// every file with a UTF-8 byte order mark.
func NewReportExporter(paths *config.Paths, bom bool, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{
		writer: NewCSVWriter(paths, logger),
		paths:  paths,
		bom:    bom,
		logger: logger.With("component", "report_exporter"),
	}
}

// ExportSalesByProduct writes Product_Name,Total_Sales in the series order
func (e *ReportExporter) ExportSalesByProduct(ctx context.Context, sales domain.Series) (string, error) {
	return e.writeSeries(ctx, e.paths.SalesByProductCSV, "Product_Name", sales)
}

// ExportInventory writes Product_Name,Units_Sold in the series order
func (e *ReportExporter) ExportInventory(ctx context.Context, inventory domain.Series) (string, error) {
	return e.writeSeries(ctx, e.paths.InventoryCSV, "Product_Name", inventory)
}

// ExportCustomerRFM writes one row per customer. Undefined Recency and CLV
// values are left empty.
func (e *ReportExporter) ExportCustomerRFM(ctx context.Context, records []domain.RFMRecord) (string, error) {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.CustomerID,
			formatFloat(r.Recency),
			formatInt(r.Frequency),
			formatFloat(r.Monetary),
			formatFloat(r.CLV),
		}
	}
	return e.write(ctx, e.paths.CustomerRFMCSV, domain.RFMColumns, rows)
}

func (e *ReportExporter) writeSeries(ctx context.Context, path, keyColumn string, s domain.Series) (string, error) {
	rows := make([][]string, s.Len())
	for i, key := range s.Keys {
		rows[i] = []string{key, formatFloat(s.Values[i])}
	}
	return e.write(ctx, path, []string{keyColumn, s.Name}, rows)
}

func (e *ReportExporter) write(ctx context.Context, path string, headers []string, rows [][]string) (string, error) {
	written, err := e.writer.WriteSimpleCSV(path, headers, rows, e.bom)
	if err != nil {
		return "", err
	}
	e.logger.InfoContext(ctx, "CSV exported",
		slog.String("path", written),
		slog.Int("rows", len(rows)))
	return written, nil
}
