// Package audit records journey lifecycle events. Logging is best-effort:
// a failed write never fails the operation that triggered it.
package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"water-abstraction-admin/internal/audit/domain"
	auditrepo "water-abstraction-admin/internal/audit/repository"
)

// EventEmitter forwards an audit event to an external sink (e.g. OTel logs).
// Implementations must be best-effort as well.
type EventEmitter interface {
	Emit(ctx context.Context, a *domain.AuditLog) error
}

// AuditLogger writes a single audit event. Used by the journey start, cancel
// and finalization code paths.
type AuditLogger interface {
	LogEvent(ctx context.Context, licenceID, sessionID, action, metadata string)
}

// Logger implements AuditLogger using the audit repository and an optional emitter.
type Logger struct {
	repo    auditrepo.Repository
	emitter EventEmitter
}

// NewLogger returns an AuditLogger that persists to repo and forwards to
// emitter. emitter may be nil; events are then only persisted.
func NewLogger(repo auditrepo.Repository, emitter EventEmitter) *Logger {
	return &Logger{repo: repo, emitter: emitter}
}

// LogEvent writes one audit log entry. Best-effort: errors are logged and not returned.
func (l *Logger) LogEvent(ctx context.Context, licenceID, sessionID, action, metadata string) {
	if l == nil || l.repo == nil {
		return
	}
	entry := &domain.AuditLog{
		ID:        uuid.New().String(),
		LicenceID: licenceID,
		SessionID: sessionID,
		Action:    action,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to log event %s for licence %s: %v", action, licenceID, err)
	}
	if l.emitter != nil {
		if err := l.emitter.Emit(ctx, entry); err != nil {
			log.Printf("audit: failed to emit event %s for licence %s: %v", action, licenceID, err)
		}
	}
}
