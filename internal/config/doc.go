// Package config provides configuration management for the retail report.
// It loads settings from multiple sources, validates them, and resolves the
// locations of every input table and report artifact.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Command line flags (applied by the caller after Load)
//	2. Environment variables
//	3. A YAML file (config.yaml or configs/config.yaml)
//	4. Default values
//
// # Environment Variables
//
// All environment variables follow the pattern RETAIL_<SECTION>_<KEY>:
//
//	RETAIL_OUTPUT_DIR=reports
//	RETAIL_INPUTS_SALES_FILE=data/sales_data.xlsx
//	RETAIL_CLEANING_UNITS_MAX=20
//	RETAIL_LOGGING_LEVEL=debug
//	RETAIL_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Validation
//
// Struct tags are checked with go-playground/validator. Clip bounds must be
// ordered, sizes positive and enumerations known; every failing field is
// reported in a single CONFIG error.
//
// # Paths
//
// Artifact names are fixed (see constants.go) and resolved against the
// output directory by Config.GetPaths.
package config
