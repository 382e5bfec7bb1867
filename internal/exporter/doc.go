// Package exporter writes the report's tabular artifacts.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing with headers, append mode and an optional
// UTF-8 BOM for spreadsheet compatibility.
//
// ReportExporter: Writes sales by product, customer RFM and inventory
// suggestions as CSV, and optionally every summary as one xlsx workbook.
//
// Example usage:
//
//	exp := exporter.NewReportExporter(paths, false, logger)
//	path, err := exp.ExportSalesByProduct(ctx, summary.SalesByProduct)
//	path, err = exp.ExportWorkbook(ctx, summary, rfm)
//
// Undefined numbers (NaN) are written as empty cells.
package exporter
