// Package analytics computes the report's aggregates over the cleaned,
// joined sales table: grouped totals and means, the month × product pivot
// behind the declining-sales ranking, the feature correlation matrix and the
// per-customer RFM profile.
//
// Groupings visit rows in table order and keep keys in the order they were
// first seen. Every ranking is a stable sort of such a grouping, which is
// what makes ties deterministic.
package analytics
