// Package journey owns the shape the return-requirements setup wizard imposes
// on a session: seeding the document from a licence, the requirement group
// mutations, and the step-to-step routing rules.
package journey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	licencedomain "water-abstraction-admin/internal/licence/domain"
	"water-abstraction-admin/internal/returnreqs/domain"
	sessiondomain "water-abstraction-admin/internal/session/domain"
)

// Sentinel errors; handlers map them to HTTP statuses.
var (
	ErrSessionNotFound   = errors.New("setup session not found")
	ErrNoSuchRequirement = errors.New("requirement index out of range")
)

// SessionStore is the minimal session repository surface the journey needs.
type SessionStore interface {
	GetByID(ctx context.Context, id string) (*sessiondomain.Session, error)
	Create(ctx context.Context, s *sessiondomain.Session) error
	Update(ctx context.Context, s *sessiondomain.Session) error
	DeleteByID(ctx context.Context, id string) error
}

// Journeys reads and writes setup documents through the session store. Every
// mutation is a full read-modify-write of the whole document.
type Journeys struct {
	sessions SessionStore
}

// New returns a Journeys backed by the given session store.
func New(sessions SessionStore) *Journeys {
	return &Journeys{sessions: sessions}
}

// Start creates a new session seeded from the licence and returns its id.
func (j *Journeys) Start(ctx context.Context, lic *licencedomain.Licence) (string, error) {
	doc := &domain.Document{
		Journey: domain.JourneyTag,
		Licence: domain.LicenceDetails{
			ID:          lic.ID,
			LicenceRef:  lic.LicenceRef,
			HolderName:  lic.HolderName,
			RegionID:    lic.RegionID,
			StartDate:   lic.StartDate,
			ExpiredDate: lic.ExpiredDate,
		},
	}
	raw, err := doc.Encode()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	s := &sessiondomain.Session{
		ID:        uuid.New().String(),
		Data:      raw,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := j.sessions.Create(ctx, s); err != nil {
		return "", fmt.Errorf("create setup session: %w", err)
	}
	return s.ID, nil
}

// Load returns the session and its decoded document, or ErrSessionNotFound.
func (j *Journeys) Load(ctx context.Context, sessionID string) (*sessiondomain.Session, *domain.Document, error) {
	s, err := j.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if s == nil {
		return nil, nil, ErrSessionNotFound
	}
	doc, err := domain.Decode(s.Data)
	if err != nil {
		return nil, nil, err
	}
	return s, doc, nil
}

// Save encodes the document and writes the whole session back.
func (j *Journeys) Save(ctx context.Context, s *sessiondomain.Session, doc *domain.Document) error {
	raw, err := doc.Encode()
	if err != nil {
		return err
	}
	s.Data = raw
	return j.sessions.Update(ctx, s)
}

// Update loads the session, applies mutate to its document, and saves.
func (j *Journeys) Update(ctx context.Context, sessionID string, mutate func(*domain.Document) error) error {
	s, doc, err := j.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := mutate(doc); err != nil {
		return err
	}
	return j.Save(ctx, s, doc)
}

// AddRequirement appends an empty requirement entry and clears the
// check-page-visited flag so the new entry's sub-steps run linearly before
// the operator returns to the check page. Returns the new entry's index.
func (j *Journeys) AddRequirement(ctx context.Context, sessionID string) (int, error) {
	index := 0
	err := j.Update(ctx, sessionID, func(doc *domain.Document) error {
		doc.Requirements = append(doc.Requirements, domain.Requirement{})
		doc.CheckPageVisited = false
		index = len(doc.Requirements) - 1
		return nil
	})
	return index, err
}

// RemoveRequirement deletes the requirement at index.
func (j *Journeys) RemoveRequirement(ctx context.Context, sessionID string, index int) error {
	return j.Update(ctx, sessionID, func(doc *domain.Document) error {
		if index < 0 || index >= len(doc.Requirements) {
			return ErrNoSuchRequirement
		}
		doc.Requirements = append(doc.Requirements[:index], doc.Requirements[index+1:]...)
		return nil
	})
}

// MarkCheckPageVisited records that the operator has reached the check page.
// Writes only when the flag actually changes, so reloading the check page
// leaves the session untouched.
func (j *Journeys) MarkCheckPageVisited(ctx context.Context, s *sessiondomain.Session, doc *domain.Document) error {
	if doc.CheckPageVisited {
		return nil
	}
	doc.CheckPageVisited = true
	return j.Save(ctx, s, doc)
}

// Delete removes the session. Used on cancel.
func (j *Journeys) Delete(ctx context.Context, sessionID string) error {
	return j.sessions.DeleteByID(ctx, sessionID)
}

// Requirement returns the entry at index or ErrNoSuchRequirement.
func Requirement(doc *domain.Document, index int) (*domain.Requirement, error) {
	if index < 0 || index >= len(doc.Requirements) {
		return nil, ErrNoSuchRequirement
	}
	return &doc.Requirements[index], nil
}
