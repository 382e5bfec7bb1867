package operations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"retailcli/internal/shared/testutil"
)

func newRecordingManager(t *testing.T, steps ...Step) (*Manager, *tracetest.SpanRecorder, *testutil.BufferedSlogHandler) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	logger, handler := testutil.NewTestLogger(t)
	m := NewManager(nil, &OperationTracer{tracer: tp.Tracer("retailcli-test")}, logger)
	for _, s := range steps {
		require.NoError(t, m.RegisterStage(s))
	}
	return m, recorder, handler
}

func spanAttrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	return attrs
}

func TestOperationTracer_SpanAttributes(t *testing.T) {
	var calls []string
	m, recorder, logs := newRecordingManager(t,
		newFakeStep("load", nil, &calls),
		newFakeStep("merge", errors.New("bad join"), &calls),
		newFakeStep("clean", nil, &calls),
	)

	_, err := m.Execute(context.Background(), OperationRequest{ID: "traced"})
	require.Error(t, err)

	spans := make(map[string]sdktrace.ReadOnlySpan)
	for _, s := range recorder.Ended() {
		spans[s.Name()] = s
	}
	require.Len(t, spans, 3)

	load := spans["operation.step.load"]
	require.NotNil(t, load)
	attrs := spanAttrs(load)
	assert.Equal(t, string(StepStatusCompleted), attrs["step.status"].AsString())
	assert.Equal(t, int64(3), attrs["step.rows"].AsInt64())
	assert.Equal(t, codes.Ok, load.Status().Code)

	merge := spans["operation.step.merge"]
	require.NotNil(t, merge)
	assert.Equal(t, string(StepStatusFailed), spanAttrs(merge)["step.status"].AsString())
	assert.Equal(t, codes.Error, merge.Status().Code)
	assert.Equal(t, "bad join", merge.Status().Description)
	require.NotEmpty(t, merge.Events())
	assert.Equal(t, "exception", merge.Events()[0].Name)

	op := spans["operation.execute"]
	require.NotNil(t, op)
	opAttrs := spanAttrs(op)
	assert.Equal(t, string(OperationStatusFailed), opAttrs["operation.status"].AsString())
	assert.Equal(t, int64(1), opAttrs["operation.skipped"].AsInt64())
	assert.Equal(t, codes.Error, op.Status().Code)

	testutil.AssertLogAttr(t, logs, "otel_trace_id", op.SpanContext().TraceID().String())
}
