package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"retailcli/internal/config"
	"retailcli/internal/infrastructure"
	"retailcli/internal/operations"
	"retailcli/internal/validation"
	"retailcli/pkg/contracts"
)

// options holds the command line flags
type options struct {
	configPath string
	sales      string
	products   string
	customers  string
	outDir     string
	workbook   bool
	top        int
	version    bool
	set        map[string]bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	if opts.version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		slog.Error("Retail report failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(output)

	opts := &options{set: make(map[string]bool)}
	fs.StringVar(&opts.configPath, "config", "", "YAML config file (defaults to config.yaml or configs/config.yaml when present)")
	fs.StringVar(&opts.sales, "sales", "", "sales table (.csv or .xlsx)")
	fs.StringVar(&opts.products, "products", "", "product table (.csv or .xlsx)")
	fs.StringVar(&opts.customers, "customers", "", "customer table (.csv or .xlsx)")
	fs.StringVar(&opts.outDir, "out", "", "output directory for charts and exports")
	fs.BoolVar(&opts.workbook, "workbook", false, "also write every summary to "+config.WorkbookFile)
	fs.IntVar(&opts.top, "top", 0, "number of products in the top-products ranking")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// applyFlags overrides the loaded configuration with explicitly set flags
func applyFlags(cfg *config.Config, opts *options) error {
	if opts.set["sales"] {
		cfg.Inputs.SalesFile = opts.sales
	}
	if opts.set["products"] {
		cfg.Inputs.ProductsFile = opts.products
	}
	if opts.set["customers"] {
		cfg.Inputs.CustomersFile = opts.customers
	}
	if opts.set["out"] {
		cfg.Output.Dir = opts.outDir
	}
	if opts.set["workbook"] {
		cfg.Output.Workbook = opts.workbook
	}
	if opts.set["top"] {
		cfg.Report.TopProducts = opts.top
	}
	return cfg.Validate()
}

func run(ctx context.Context, opts *options, stdout io.Writer) (err error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, opts); err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureTraceID(ctx)
	logger.InfoContext(ctx, "Starting retail report",
		slog.String("version", contracts.GetFullVersionString()))

	paths, err := cfg.GetPaths()
	if err != nil {
		return err
	}
	paths.LogPathResolution(logger)
	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputs(paths.SalesFile, paths.ProductsFile, paths.CustomersFile); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(paths.OutputDir); err != nil {
		return err
	}

	providers, closeTelemetry, err := initTelemetry(cfg, paths, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeTelemetry(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	registry, err := operations.NewRetailRegistry(operations.StageOptionsFromConfig(cfg, paths, stdout, logger))
	if err != nil {
		return err
	}
	tracer, err := operations.NewOperationTracer(providers)
	if err != nil {
		return err
	}

	resp, err := operations.NewManager(registry, tracer, logger).
		Execute(ctx, operations.OperationRequest{ID: infrastructure.GetTraceID(ctx)})
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Retail report complete",
		slog.Duration("duration", resp.Duration),
		slog.Any("artifacts", resp.Artifacts))
	return nil
}

// initTelemetry starts tracing and metrics. The returned func writes the
// metrics textfile, flushes spans and closes the trace file.
func initTelemetry(cfg *config.Config, paths *config.Paths, logger *slog.Logger) (*infrastructure.OTelProviders, func() error, error) {
	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.ServiceName = cfg.Telemetry.ServiceName
	otelCfg.ServiceVersion = contracts.Version
	otelCfg.TraceExporter = cfg.Telemetry.TraceExporter
	otelCfg.EnableMetrics = cfg.Telemetry.WriteMetrics

	var traceFile *os.File
	if otelCfg.TraceExporter == "stdout" {
		f, err := os.Create(paths.TraceFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create trace file: %w", err)
		}
		traceFile = f
		otelCfg.TraceWriter = f
	}

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		if traceFile != nil {
			traceFile.Close()
		}
		return nil, nil, err
	}

	closeFn := func() error {
		var firstErr error
		if cfg.Telemetry.WriteMetrics {
			firstErr = providers.WriteMetrics(paths.MetricsFile)
		}
		if err := providers.Shutdown(context.Background()); err != nil && firstErr == nil {
			firstErr = err
		}
		if traceFile != nil {
			if err := traceFile.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
	return providers, closeFn, nil
}
