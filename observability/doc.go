// Package observability wires OpenTelemetry tracing and metrics for the
// authentication layer.
//
// Setup:
//
//	shutdown, err := observability.Init(ctx, cfg)
//	defer shutdown(ctx)
//
// Per-operation instrumentation (span + counters):
//
//	ctx, op := observability.StartOperation(ctx, "auth.login", metrics)
//	defer func() { op.End(err) }()
//
// With no provider configured every call is a no-op.
package observability
