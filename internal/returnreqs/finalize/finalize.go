// Package finalize converts a completed setup session into permanent return
// version records and retires the session.
package finalize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"water-abstraction-admin/internal/audit"
	auditdomain "water-abstraction-admin/internal/audit/domain"
	"water-abstraction-admin/internal/returnreqs/domain"
	returnsdomain "water-abstraction-admin/internal/returns/domain"
)

// Sentinel errors; handlers map them to HTTP statuses.
var (
	ErrNoRequirements        = errors.New("journey has no requirements to finalize")
	ErrIncompleteRequirement = errors.New("requirement is missing required answers")
)

// VersionStore is the minimal returns repository surface the finalizer needs.
// CreateVersion must be atomic: either every record lands or none do.
type VersionStore interface {
	CreateVersion(ctx context.Context, v *returnsdomain.ReturnVersion, reqs []*returnsdomain.ReturnRequirement) error
}

// SessionDeleter removes the session once the records are committed.
type SessionDeleter interface {
	DeleteByID(ctx context.Context, id string) error
}

// Finalizer materializes a journey document into permanent records.
type Finalizer struct {
	versions VersionStore
	sessions SessionDeleter
	auditLog audit.AuditLogger
}

// New returns a Finalizer. auditLog may be nil.
func New(versions VersionStore, sessions SessionDeleter, auditLog audit.AuditLogger) *Finalizer {
	return &Finalizer{versions: versions, sessions: sessions, auditLog: auditLog}
}

// Finalize writes the return version and requirements in one transaction, then
// deletes the session. If record creation fails the session is left intact so
// the operator can retry from the check page.
func (f *Finalizer) Finalize(ctx context.Context, sessionID string, doc *domain.Document) (*returnsdomain.ReturnVersion, error) {
	if doc.JourneyType == domain.JourneyReturnsRequired && len(doc.Requirements) == 0 {
		return nil, ErrNoRequirements
	}

	now := time.Now().UTC()
	version := &returnsdomain.ReturnVersion{
		ID:        uuid.New().String(),
		LicenceID: doc.Licence.ID,
		Status:    returnsdomain.StatusCurrent,
		Reason:    doc.Reason,
		StartDate: doc.EffectiveStartDate(),
		Notes:     doc.Note,
		CreatedAt: now,
	}

	reqs := make([]*returnsdomain.ReturnRequirement, 0, len(doc.Requirements))
	if doc.JourneyType == domain.JourneyReturnsRequired {
		for i, entry := range doc.Requirements {
			rec, err := requirementRecord(version.ID, doc.Licence.RegionID, &entry, now)
			if err != nil {
				return nil, fmt.Errorf("requirement %d: %w", i, err)
			}
			reqs = append(reqs, rec)
		}
	}

	if err := f.versions.CreateVersion(ctx, version, reqs); err != nil {
		return nil, fmt.Errorf("create return version: %w", err)
	}

	if err := f.sessions.DeleteByID(ctx, sessionID); err != nil {
		// Records are committed; the orphaned session is swept by cleanup.
		return version, fmt.Errorf("delete session after finalization: %w", err)
	}

	if f.auditLog != nil {
		f.auditLog.LogEvent(ctx, doc.Licence.ID, sessionID, auditdomain.ActionJourneyFinalized, version.ID)
	}
	return version, nil
}

func requirementRecord(versionID, regionID string, entry *domain.Requirement, now time.Time) (*returnsdomain.ReturnRequirement, error) {
	if len(entry.Purposes) == 0 || len(entry.Points) == 0 || entry.AbstractionPeriod == nil ||
		entry.ReturnsCycle == "" || entry.SiteDescription == "" ||
		entry.FrequencyCollected == "" || entry.FrequencyReported == "" {
		return nil, ErrIncompleteRequirement
	}
	return &returnsdomain.ReturnRequirement{
		ID:                 uuid.New().String(),
		ReturnVersionID:    versionID,
		RegionID:           regionID,
		SiteDescription:    entry.SiteDescription,
		ReturnsCycle:       entry.ReturnsCycle,
		FrequencyCollected: entry.FrequencyCollected,
		FrequencyReported:  entry.FrequencyReported,
		AbstractionPeriod: returnsdomain.AbstractionPeriod{
			StartDay:   entry.AbstractionPeriod.StartDay,
			StartMonth: entry.AbstractionPeriod.StartMonth,
			EndDay:     entry.AbstractionPeriod.EndDay,
			EndMonth:   entry.AbstractionPeriod.EndMonth,
		},
		AgreementsExceptions: entry.AgreementsExceptions,
		PurposeIDs:           entry.Purposes,
		PointIDs:             entry.Points,
		CreatedAt:            now,
	}, nil
}
