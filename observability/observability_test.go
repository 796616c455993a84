package observability

import (
	"context"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/kbukum/sessionauth/errors"
)

func withRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func attr(attrs []attribute.KeyValue, key string) string {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value.Emit()
		}
	}
	return ""
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("authserver")
	if cfg.Enabled {
		t.Error("expected export disabled by default")
	}
	if cfg.Endpoint != "localhost:4318" || !cfg.Insecure {
		t.Errorf("unexpected endpoint defaults %+v", cfg)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled without name", Config{SampleRate: 1}, false},
		{"enabled with name", Config{Enabled: true, ServiceName: "svc", SampleRate: 0.5}, false},
		{"enabled without name", Config{Enabled: true, SampleRate: 1}, true},
		{"rate too high", Config{SampleRate: 1.5}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{ServiceName: "svc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown failed: %v", err)
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource(DefaultConfig("authserver"))
	if err != nil {
		t.Fatalf("newResource failed: %v", err)
	}
	if got := attr(res.Attributes(), "service.name"); got != "authserver" {
		t.Errorf("expected service.name=authserver, got %q", got)
	}
}

func TestStartOperation_Success(t *testing.T) {
	exporter := withRecorder(t)

	_, op := StartOperation(context.Background(), SpanLogin, nil)
	op.SetAttribute(AttrUserID, "u1")
	op.End(nil)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != SpanLogin {
		t.Errorf("expected span %s, got %s", SpanLogin, spans[0].Name)
	}
	if got := attr(spans[0].Attributes, AttrOutcome); got != OutcomeSuccess {
		t.Errorf("expected outcome success, got %q", got)
	}
	if got := attr(spans[0].Attributes, AttrUserID); got != "u1" {
		t.Errorf("expected user id attribute, got %q", got)
	}
}

func TestStartOperation_Error(t *testing.T) {
	exporter := withRecorder(t)

	_, op := StartOperation(context.Background(), SpanRegister, nil)
	op.End(apperrors.AlreadyExists("User"))

	span := exporter.GetSpans()[0]
	if got := attr(span.Attributes, AttrOutcome); got != string(apperrors.ErrCodeAlreadyExists) {
		t.Errorf("expected ALREADY_EXISTS outcome, got %q", got)
	}
	if len(span.Events) == 0 {
		t.Error("expected the error to be recorded as a span event")
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeSuccess},
		{apperrors.InvalidCredentials(), string(apperrors.ErrCodeInvalidCredentials)},
		{fmt.Errorf("wrapped: %w", apperrors.Validation("")), string(apperrors.ErrCodeValidation)},
		{fmt.Errorf("plain"), string(apperrors.ErrCodeInternal)},
	}
	for _, tc := range tests {
		if got := Outcome(tc.err); got != tc.want {
			t.Errorf("Outcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}
	ctx := context.Background()
	m.RecordOperation(ctx, SpanLogin, OutcomeSuccess, 0.01)
	m.RecordAuthenticate(ctx, "attached")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			names[md.Name] = true
		}
	}
	for _, want := range []string{"auth.operation.total", "auth.operation.duration", "auth.authenticate.total"} {
		if !names[want] {
			t.Errorf("expected metric %s to be collected", want)
		}
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordOperation(context.Background(), "x", "y", 1)
	m.RecordAuthenticate(context.Background(), "anonymous")

	if _, err := NewMetrics(noop.NewMeterProvider().Meter("test")); err != nil {
		t.Fatalf("NewMetrics on noop meter failed: %v", err)
	}
}

func TestSpanHelpers_NoSpan(t *testing.T) {
	SetSpanAttribute(context.Background(), "k", "v")
	SetSpanError(context.Background(), fmt.Errorf("no span"))
}
