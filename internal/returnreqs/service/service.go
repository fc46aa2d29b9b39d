// Package service implements the per-page services behind the
// return-requirements setup wizard. Each page has a GET method that shapes a
// view model without mutating the session, and a Submit method that
// normalizes and validates the form, writes the session document back, and
// decides the next route.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"water-abstraction-admin/internal/audit"
	auditdomain "water-abstraction-admin/internal/audit/domain"
	licencedomain "water-abstraction-admin/internal/licence/domain"
	refdomain "water-abstraction-admin/internal/refdata/domain"
	"water-abstraction-admin/internal/returnreqs/domain"
	"water-abstraction-admin/internal/returnreqs/journey"
	returnsdomain "water-abstraction-admin/internal/returns/domain"
)

// Sentinel errors; handlers map them to HTTP statuses. Missing sessions and
// requirement indexes reuse the journey package's errors.
var (
	ErrLicenceNotFound   = errors.New("licence not found")
	ErrSessionNotFound   = journey.ErrSessionNotFound
	ErrNoSuchRequirement = journey.ErrNoSuchRequirement
)

// StepResult is the contract every submission returns. A non-empty Error
// means the page redisplays with the submitted values echoed back in
// PageData; otherwise NextPath names the route to redirect to.
type StepResult struct {
	Error    string
	PageData any
	NextPath string
}

// Failed reports whether the submission was rejected by validation.
func (r *StepResult) Failed() bool { return r.Error != "" }

// LicenceRepo is the minimal licence repository needed by the setup service.
type LicenceRepo interface {
	GetByID(ctx context.Context, id string) (*licencedomain.Licence, error)
}

// RefDataRepo is the minimal reference-data repository needed by the setup service.
type RefDataRepo interface {
	ListPurposesForLicence(ctx context.Context, licenceID string) ([]*refdomain.Purpose, error)
	ListPointsForLicence(ctx context.Context, licenceID string) ([]*refdomain.Point, error)
}

// Finalizer materializes a completed journey into permanent records.
type Finalizer interface {
	Finalize(ctx context.Context, sessionID string, doc *domain.Document) (*returnsdomain.ReturnVersion, error)
}

// SetupService drives the return-requirements setup journey.
type SetupService struct {
	journeys  *journey.Journeys
	licences  LicenceRepo
	refdata   RefDataRepo
	finalizer Finalizer
	auditLog  audit.AuditLogger
}

// NewSetupService returns a SetupService with the given dependencies. auditLog may be nil.
func NewSetupService(
	journeys *journey.Journeys,
	licences LicenceRepo,
	refdata RefDataRepo,
	finalizer Finalizer,
	auditLog audit.AuditLogger,
) *SetupService {
	return &SetupService{
		journeys:  journeys,
		licences:  licences,
		refdata:   refdata,
		finalizer: finalizer,
		auditLog:  auditLog,
	}
}

// StartJourney creates a setup session seeded from the licence and returns
// the path of the journey's first step.
func (s *SetupService) StartJourney(ctx context.Context, licenceID string) (string, error) {
	lic, err := s.licences.GetByID(ctx, licenceID)
	if err != nil {
		return "", fmt.Errorf("load licence: %w", err)
	}
	if lic == nil {
		return "", ErrLicenceNotFound
	}

	sessionID, err := s.journeys.Start(ctx, lic)
	if err != nil {
		return "", err
	}
	if s.auditLog != nil {
		s.auditLog.LogEvent(ctx, licenceID, sessionID, auditdomain.ActionJourneyStarted, "")
	}
	return journey.StepPath(sessionID, journey.StepStart, 0), nil
}

// Cancel deletes the session; the journey leaves no other trace.
func (s *SetupService) Cancel(ctx context.Context, sessionID string) (string, error) {
	_, doc, err := s.journeys.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if err := s.journeys.Delete(ctx, sessionID); err != nil {
		return "", err
	}
	if s.auditLog != nil {
		s.auditLog.LogEvent(ctx, doc.Licence.ID, sessionID, auditdomain.ActionJourneyCancelled, "")
	}
	return "/licences/" + doc.Licence.ID, nil
}

// formValues normalizes a multi-select field: the raw form layer hands back a
// bare value when only one option is checked, so a single value and a
// one-element list must come out identical. Blank entries are dropped.
func formValues(form url.Values, key string) []string {
	raw := form[key]
	if len(raw) == 0 {
		raw = form[key+"[]"]
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// formValue returns the trimmed first value for key.
func formValue(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

// parseDate builds a date from day/month/year fields, rejecting overflowing
// values like 31 February that time.Date would silently normalize.
func parseDate(day, month, year string) (time.Time, bool) {
	d, err1 := strconv.Atoi(day)
	m, err2 := strconv.Atoi(month)
	y, err3 := strconv.Atoi(year)
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if y < 1000 || m < 1 || m > 12 || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m || t.Year() != y {
		return time.Time{}, false
	}
	return t, true
}
