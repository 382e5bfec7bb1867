// Package dataset loads the sales, product and customer tables.
//
// Tables are read from CSV (an optional UTF-8 BOM is dropped) or from the
// first sheet of an XLSX workbook. Only the columns the report uses are
// looked up; extra columns are ignored. Empty cells and the usual
// spreadsheet markers such as NA or NaN load as missing values, to be
// forward-filled after the join. An absent column aborts the load, and so
// does a cell that fails to parse.
package dataset
