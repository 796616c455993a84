package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/sessionauth/errors"
)

// OutcomeSuccess is the outcome recorded for operations that return no
// error.
const OutcomeSuccess = "success"

// Operation pairs a span with the metrics of one session endpoint call.
type Operation struct {
	name    string
	start   time.Time
	span    trace.Span
	ctx     context.Context
	metrics *Metrics
}

// StartOperation opens a span named name. metrics may be nil.
func StartOperation(ctx context.Context, name string, metrics *Metrics) (context.Context, *Operation) {
	ctx, span := StartSpan(ctx, name, trace.WithAttributes(attribute.String(AttrOperation, name)))
	return ctx, &Operation{name: name, start: time.Now(), span: span, ctx: ctx, metrics: metrics}
}

// SetAttribute adds a string attribute to the operation's span.
func (o *Operation) SetAttribute(key, value string) {
	o.span.SetAttributes(attribute.String(key, value))
}

// End closes the span and records the outcome, which is the error code of
// err or OutcomeSuccess.
func (o *Operation) End(err error) {
	outcome := Outcome(err)
	o.span.SetAttributes(attribute.String(AttrOutcome, outcome))
	if err != nil {
		o.span.RecordError(err)
		if apperrors.IsKind(err, apperrors.KindInternal) || !apperrors.IsAppError(err) {
			o.span.SetStatus(codes.Error, outcome)
		}
	}
	o.span.End()
	o.metrics.RecordOperation(o.ctx, o.name, outcome, time.Since(o.start).Seconds())
}

// Outcome maps err to a low-cardinality label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return string(apperrors.ErrCodeInternal)
}
