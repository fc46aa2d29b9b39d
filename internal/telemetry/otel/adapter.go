package otel

import (
	"context"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"water-abstraction-admin/internal/audit"
	auditdomain "water-abstraction-admin/internal/audit/domain"
)

// logEmitter is the slice of otellog.Logger the emitter needs.
type logEmitter interface {
	Emit(ctx context.Context, rec otellog.Record)
}

// NewEventEmitter returns an audit.EventEmitter that forwards audit entries
// as OTel log records. A nil provider yields a no-op emitter.
func NewEventEmitter(provider *sdklog.LoggerProvider) audit.EventEmitter {
	if provider == nil {
		return noopEmitter{}
	}
	return NewEventEmitterWithLogger(provider.Logger("water-abstraction-admin.audit"))
}

// NewEventEmitterWithLogger returns an emitter writing to the given logger.
func NewEventEmitterWithLogger(logger logEmitter) audit.EventEmitter {
	return &otelEmitter{logger: logger}
}

type noopEmitter struct{}

func (noopEmitter) Emit(context.Context, *auditdomain.AuditLog) error { return nil }

type otelEmitter struct {
	logger logEmitter
}

// Emit converts the audit entry to an OTel log record. Best-effort.
func (e *otelEmitter) Emit(ctx context.Context, entry *auditdomain.AuditLog) error {
	if entry == nil {
		return nil
	}
	rec := otellog.Record{}
	rec.SetBody(otellog.StringValue(entry.Action))
	if !entry.CreatedAt.IsZero() {
		rec.SetTimestamp(entry.CreatedAt)
	} else {
		rec.SetTimestamp(time.Now().UTC())
	}
	if entry.LicenceID != "" {
		rec.AddAttributes(otellog.String("licence_id", entry.LicenceID))
	}
	if entry.SessionID != "" {
		rec.AddAttributes(otellog.String("session_id", entry.SessionID))
	}
	if entry.Metadata != "" {
		rec.AddAttributes(otellog.String("metadata", entry.Metadata))
	}
	e.logger.Emit(ctx, rec)
	return nil
}
