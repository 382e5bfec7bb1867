package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "retailcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Inputs    InputsConfig    `yaml:"inputs" envconfig:"INPUTS"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Cleaning  CleaningConfig  `yaml:"cleaning" envconfig:"CLEANING"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Charts    ChartsConfig    `yaml:"charts" envconfig:"CHARTS"`
	Store     StoreConfig     `yaml:"store" envconfig:"STORE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"eq=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// InputsConfig names the three source tables. Files ending in .xlsx are
// read from their first sheet, anything else is parsed as CSV.
type InputsConfig struct {
	SalesFile     string `yaml:"sales_file" envconfig:"SALES_FILE" validate:"required"`
	ProductsFile  string `yaml:"products_file" envconfig:"PRODUCTS_FILE" validate:"required"`
	CustomersFile string `yaml:"customers_file" envconfig:"CUSTOMERS_FILE" validate:"required"`
}

// OutputConfig controls where report artifacts are written
type OutputConfig struct {
	Dir      string `yaml:"dir" envconfig:"DIR" validate:"required"`
	Workbook bool   `yaml:"workbook" envconfig:"WORKBOOK"`
	WriteBOM bool   `yaml:"write_bom" envconfig:"WRITE_BOM"`
}

// CleaningConfig holds the clamp ranges applied to the joined table
type CleaningConfig struct {
	UnitsMin float64 `yaml:"units_min" envconfig:"UNITS_MIN" validate:"gte=0"`
	UnitsMax float64 `yaml:"units_max" envconfig:"UNITS_MAX" validate:"gtfield=UnitsMin"`
	PriceMin float64 `yaml:"price_min" envconfig:"PRICE_MIN" validate:"gte=0"`
	PriceMax float64 `yaml:"price_max" envconfig:"PRICE_MAX" validate:"gtfield=PriceMin"`
}

// ReportConfig controls how many entries the ranked summaries keep
type ReportConfig struct {
	TopProducts    int `yaml:"top_products" envconfig:"TOP_PRODUCTS" validate:"min=1"`
	DecliningShown int `yaml:"declining_shown" envconfig:"DECLINING_SHOWN" validate:"min=1"`
}

// ChartsConfig sets the rendered image size in inches
type ChartsConfig struct {
	WidthInches       float64 `yaml:"width_inches" envconfig:"WIDTH_INCHES" validate:"gt=0"`
	HeightInches      float64 `yaml:"height_inches" envconfig:"HEIGHT_INCHES" validate:"gt=0"`
	HeatmapSizeInches float64 `yaml:"heatmap_size_inches" envconfig:"HEATMAP_SIZE_INCHES" validate:"gt=0"`
}

// StoreConfig configures the relational copy of the joined table
type StoreConfig struct {
	Driver string `yaml:"driver" envconfig:"DRIVER" validate:"required"`
	DSN    string `yaml:"dsn" envconfig:"DSN" validate:"required"`
	Table  string `yaml:"table" envconfig:"TABLE" validate:"required"`
}

// TelemetryConfig controls span and metric output
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	WriteMetrics  bool   `yaml:"write_metrics" envconfig:"WRITE_METRICS"`
}

// Load builds the configuration from defaults, an optional YAML file and
// RETAIL_* environment variables, in that order of precedence.
// An empty path searches the usual config locations.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", path)
		}
	}

	// No default tags are declared, so only variables that are actually set
	// override what the defaults and the file produced.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg. Keys absent from the file keep
// their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the struct tags and reports every failing field
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperrors.NewConfigError("config validation failed", err)
		}

		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, formatValidationError(fe))
		}
		return apperrors.NewConfigError("config validation failed", fmt.Errorf("%s", strings.Join(messages, "; "))).
			WithContext("fields", len(messages))
	}
	return nil
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Namespace()
	param := err.Param()

	switch err.Tag() {
	case "required", "required_unless":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "eq":
		return fmt.Sprintf("%s must be %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/retail-report.log",
		},
		Inputs: InputsConfig{
			SalesFile:     DefaultSalesFile,
			ProductsFile:  DefaultProductsFile,
			CustomersFile: DefaultCustomersFile,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Cleaning: CleaningConfig{
			UnitsMin: 1,
			UnitsMax: 20,
			PriceMin: 10,
			PriceMax: 500,
		},
		Report: ReportConfig{
			TopProducts:    5,
			DecliningShown: 3,
		},
		Charts: ChartsConfig{
			WidthInches:       10,
			HeightInches:      4,
			HeatmapSizeInches: 6,
		},
		Store: StoreConfig{
			Driver: "sqlite",
			DSN:    ":memory:",
			Table:  SalesTable,
		},
		Telemetry: TelemetryConfig{
			ServiceName:   AppName,
			TraceExporter: "none",
			WriteMetrics:  true,
		},
	}
}
