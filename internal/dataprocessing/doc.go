// Package dataprocessing turns the three loaded tables into one clean,
// joined sales table.
//
// # Architecture
//
// The package is organized into two components:
//
// 1. Merger: derives date parts and left-joins sales to products and customers
// 2. Cleaner: forward-fills gaps, clips outliers and computes Total_Sales
//
// # Usage
//
//	rows, mergeStats := dataprocessing.Merge(tables)
//	cleaner := dataprocessing.NewCleaner(dataprocessing.DefaultOptions(), logger)
//	rows, cleanStats := cleaner.ProcessWithStats(ctx, rows)
//
// # Data Flow
//
//	Tables → Merge → JoinedRows → ForwardFill → Clip → ComputeTotals → Aggregation
//
// Clipping always happens before totals are computed, so Total_Sales is the
// product of the clamped factors.
package dataprocessing
