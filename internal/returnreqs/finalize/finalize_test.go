package finalize

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"water-abstraction-admin/internal/returnreqs/domain"
	returnsdomain "water-abstraction-admin/internal/returns/domain"
)

type memVersionStore struct {
	mu       sync.Mutex
	versions []*returnsdomain.ReturnVersion
	reqs     []*returnsdomain.ReturnRequirement
	failErr  error
}

func (s *memVersionStore) CreateVersion(ctx context.Context, v *returnsdomain.ReturnVersion, reqs []*returnsdomain.ReturnRequirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.versions = append(s.versions, v)
	s.reqs = append(s.reqs, reqs...)
	return nil
}

type memDeleter struct {
	mu      sync.Mutex
	deleted []string
}

func (d *memDeleter) DeleteByID(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleted = append(d.deleted, id)
	return nil
}

func completeDoc() *domain.Document {
	return &domain.Document{
		Journey:     domain.JourneyTag,
		JourneyType: domain.JourneyReturnsRequired,
		Licence: domain.LicenceDetails{
			ID:        "licence-1",
			RegionID:  "region-1",
			StartDate: time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		Reason: "new-licence",
		Requirements: []domain.Requirement{
			{
				Purposes:           []string{"p1"},
				Points:             []string{"pt1"},
				AbstractionPeriod:  &domain.AbstractionPeriod{StartDay: 1, StartMonth: 4, EndDay: 31, EndMonth: 10},
				ReturnsCycle:       "summer",
				SiteDescription:    "Main site",
				FrequencyCollected: "day",
				FrequencyReported:  "month",
			},
		},
	}
}

func TestFinalize_CreatesRecordsAndDeletesSession(t *testing.T) {
	versions := &memVersionStore{}
	deleter := &memDeleter{}
	f := New(versions, deleter, nil)

	v, err := f.Finalize(context.Background(), "session-1", completeDoc())
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if v == nil || v.LicenceID != "licence-1" {
		t.Fatalf("version = %+v", v)
	}
	if v.Status != returnsdomain.StatusCurrent {
		t.Errorf("Status = %q, want %q", v.Status, returnsdomain.StatusCurrent)
	}
	if len(versions.reqs) != 1 {
		t.Fatalf("requirements created = %d, want 1", len(versions.reqs))
	}
	if versions.reqs[0].RegionID != "region-1" {
		t.Errorf("requirement RegionID = %q, want region-1", versions.reqs[0].RegionID)
	}
	if len(deleter.deleted) != 1 || deleter.deleted[0] != "session-1" {
		t.Errorf("deleted sessions = %v, want [session-1]", deleter.deleted)
	}
}

func TestFinalize_FailureKeepsSession(t *testing.T) {
	versions := &memVersionStore{failErr: errors.New("constraint violation")}
	deleter := &memDeleter{}
	f := New(versions, deleter, nil)

	if _, err := f.Finalize(context.Background(), "session-1", completeDoc()); err == nil {
		t.Fatal("Finalize should fail when record creation fails")
	}
	if len(deleter.deleted) != 0 {
		t.Errorf("session must survive a failed finalization, deleted = %v", deleter.deleted)
	}
}

func TestFinalize_NoReturnsRequired(t *testing.T) {
	versions := &memVersionStore{}
	deleter := &memDeleter{}
	f := New(versions, deleter, nil)

	doc := completeDoc()
	doc.JourneyType = domain.JourneyNoReturnsRequired
	doc.Requirements = nil

	v, err := f.Finalize(context.Background(), "session-1", doc)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if v == nil {
		t.Fatal("version should be created")
	}
	if len(versions.reqs) != 0 {
		t.Errorf("no-returns-required journey must create zero requirements, got %d", len(versions.reqs))
	}
}

func TestFinalize_EmptyReturnsRequired(t *testing.T) {
	f := New(&memVersionStore{}, &memDeleter{}, nil)

	doc := completeDoc()
	doc.Requirements = nil

	if _, err := f.Finalize(context.Background(), "session-1", doc); !errors.Is(err, ErrNoRequirements) {
		t.Fatalf("Finalize error = %v, want ErrNoRequirements", err)
	}
}

func TestFinalize_IncompleteRequirement(t *testing.T) {
	f := New(&memVersionStore{}, &memDeleter{}, nil)

	doc := completeDoc()
	doc.Requirements[0].SiteDescription = ""

	if _, err := f.Finalize(context.Background(), "session-1", doc); !errors.Is(err, ErrIncompleteRequirement) {
		t.Fatalf("Finalize error = %v, want ErrIncompleteRequirement", err)
	}
}
