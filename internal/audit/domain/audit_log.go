package domain

import "time"

// Journey lifecycle actions recorded in the audit log.
const (
	ActionJourneyStarted   = "journey_started"
	ActionJourneyFinalized = "journey_finalized"
	ActionJourneyCancelled = "journey_cancelled"
)

// AuditLog is one recorded journey lifecycle event.
type AuditLog struct {
	ID        string
	LicenceID string
	SessionID string
	Action    string
	Metadata  string
	CreatedAt time.Time
}
