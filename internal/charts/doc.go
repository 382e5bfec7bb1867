// Package charts renders the report's PNG charts with gonum/plot.
//
// Each chart is drawn from an already computed series or matrix; the
// package performs no aggregation of its own.
package charts
