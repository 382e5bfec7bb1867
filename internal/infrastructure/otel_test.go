package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOTelInitialization_Defaults(t *testing.T) {
	providers, err := InitializeOTel(nil, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	// Tracing is off by default but a tracer is always usable
	assert.Nil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)

	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Registry)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelInitialization_StdoutTraces(t *testing.T) {
	var spans bytes.Buffer
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "stdout"
	cfg.TraceWriter = &spans
	cfg.EnableMetrics = false

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)
	assert.Nil(t, providers.Registry)

	ctx, span := providers.Tracer.Start(context.Background(), "load")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	SetSpanAttributes(ctx, map[string]interface{}{"rows": 3, "table": "sales"})
	RecordError(ctx, errors.New("boom"))
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, spans.String(), `"Name": "load"`)
	assert.Contains(t, spans.String(), "boom")
}

func TestOTelInitialization_UnknownExporter(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "otlp"

	_, err := InitializeOTel(cfg, discardLogger())
	assert.Error(t, err)
}

func TestPipelineMetricsTextfile(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), discardLogger())
	require.NoError(t, err)

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	RecordOperationStepMetrics(ctx, metrics, "load", 20*time.Millisecond, nil)
	RecordOperationStepMetrics(ctx, metrics, "charts", 5*time.Millisecond, errors.New("render"))
	RecordRows(ctx, metrics, "sales", 3)
	RecordOperationMetrics(ctx, metrics, "run-1", time.Second, false)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, providers.WriteMetrics(path))
	require.NoError(t, providers.Shutdown(ctx))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "operation_steps_total")
	assert.Contains(t, text, "operation_errors_total")
	assert.Contains(t, text, `dataset="sales"`)
	assert.Contains(t, text, "operation_step_duration_seconds")
}

func TestRecordHelpersTolerateNilMetrics(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordOperationStepMetrics(ctx, nil, "load", time.Second, nil)
		RecordOperationMetrics(ctx, nil, "run", time.Second, true)
		RecordRows(ctx, nil, "sales", 1)
	})

	providers := &OTelProviders{Logger: discardLogger()}
	assert.NoError(t, providers.WriteMetrics(filepath.Join(t.TempDir(), "m.prom")))
}
