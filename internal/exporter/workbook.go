package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"retailcli/internal/analytics"
	apperrors "retailcli/internal/errors"
	"retailcli/pkg/contracts/domain"
)

// Workbook sheet names
const (
	SheetSalesByProduct = "Sales by Product"
	SheetCategories     = "Top Categories"
	SheetRegions        = "Sales by Region"
	SheetMonthly        = "Monthly Sales"
	SheetPromotion      = "Promotion Impact"
	SheetDeclining      = "Declining Products"
	SheetInventory      = "Inventory"
	SheetCustomers      = "Customer RFM"
	SheetCorrelation    = "Correlation"
)

// sheet is one worksheet's content
type sheet struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

// ExportWorkbook writes every summary to its own sheet of one xlsx file
func (e *ReportExporter) ExportWorkbook(ctx context.Context, summary analytics.Summary, customers []domain.RFMRecord) (string, error) {
	path := e.paths.Workbook

	sheets := []sheet{
		seriesSheet(SheetSalesByProduct, "Product_Name", summary.SalesByProduct),
		seriesSheet(SheetCategories, "Category", summary.TopCategories),
		seriesSheet(SheetRegions, "Region", summary.SalesByRegion),
		seriesSheet(SheetMonthly, "Month", summary.MonthlySales),
		seriesSheet(SheetPromotion, "Promotion_Applied", summary.PromotionImpact),
		seriesSheet(SheetDeclining, "Product_Name", summary.DecliningProducts),
		seriesSheet(SheetInventory, "Product_Name", summary.InventorySuggestions),
		customerSheet(customers),
		correlationSheet(summary.Correlation),
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", apperrors.NewExportError(path, err)
	}

	for i, s := range sheets {
		if err := writeSheet(f, s, bold); err != nil {
			return "", apperrors.NewExportError(path, err).WithContext("sheet", s.name)
		}
		if i == 0 {
			idx, err := f.GetSheetIndex(s.name)
			if err != nil {
				return "", apperrors.NewExportError(path, err)
			}
			f.SetActiveSheet(idx)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", apperrors.NewExportError(path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", apperrors.NewExportError(path, err)
	}

	e.logger.InfoContext(ctx, "Workbook exported",
		slog.String("path", path),
		slog.Int("sheets", len(sheets)))
	return path, nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	if _, err := f.NewSheet(s.name); err != nil {
		return err
	}

	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return nil
}

func seriesSheet(name, keyColumn string, s domain.Series) sheet {
	rows := make([][]interface{}, s.Len())
	for i, key := range s.Keys {
		rows[i] = []interface{}{key, cellValue(s.Values[i])}
	}
	return sheet{name: name, header: []interface{}{keyColumn, s.Name}, rows: rows}
}

func customerSheet(records []domain.RFMRecord) sheet {
	header := make([]interface{}, len(domain.RFMColumns))
	for i, c := range domain.RFMColumns {
		header[i] = c
	}
	rows := make([][]interface{}, len(records))
	for i, r := range records {
		rows[i] = []interface{}{r.CustomerID, cellValue(r.Recency), r.Frequency, cellValue(r.Monetary), cellValue(r.CLV)}
	}
	return sheet{name: SheetCustomers, header: header, rows: rows}
}

func correlationSheet(m domain.CorrelationMatrix) sheet {
	header := []interface{}{""}
	for _, l := range m.Labels {
		header = append(header, l)
	}
	rows := make([][]interface{}, m.Size())
	for i, l := range m.Labels {
		row := []interface{}{l}
		for j := range m.Labels {
			row = append(row, cellValue(m.At(i, j)))
		}
		rows[i] = row
	}
	return sheet{name: SheetCorrelation, header: header, rows: rows}
}
