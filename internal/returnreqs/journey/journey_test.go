package journey

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	licencedomain "water-abstraction-admin/internal/licence/domain"
	"water-abstraction-admin/internal/returnreqs/domain"
	sessiondomain "water-abstraction-admin/internal/session/domain"
)

type memSessionStore struct {
	mu sync.Mutex
	m  map[string]*sessiondomain.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{m: map[string]*sessiondomain.Session{}}
}

func (r *memSessionStore) GetByID(ctx context.Context, id string) (*sessiondomain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	s2 := *s
	return &s2, nil
}

func (r *memSessionStore) Create(ctx context.Context, s *sessiondomain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s2 := *s
	r.m[s.ID] = &s2
	return nil
}

func (r *memSessionStore) Update(ctx context.Context, s *sessiondomain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s2 := *s
	r.m[s.ID] = &s2
	return nil
}

func (r *memSessionStore) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
	return nil
}

func testLicence() *licencedomain.Licence {
	return &licencedomain.Licence{
		ID:         "licence-1",
		LicenceRef: "01/123",
		HolderName: "Riverside Farms Ltd",
		RegionID:   "region-1",
		StartDate:  time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func startJourney(t *testing.T) (*Journeys, string) {
	t.Helper()
	j := New(newMemSessionStore())
	id, err := j.Start(context.Background(), testLicence())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return j, id
}

func TestStart_SeedsLicenceDetails(t *testing.T) {
	j, id := startJourney(t)

	_, doc, err := j.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Journey != domain.JourneyTag {
		t.Errorf("Journey = %q, want %q", doc.Journey, domain.JourneyTag)
	}
	if doc.Licence.LicenceRef != "01/123" {
		t.Errorf("Licence.LicenceRef = %q, want %q", doc.Licence.LicenceRef, "01/123")
	}
	if doc.CheckPageVisited {
		t.Error("CheckPageVisited should start false")
	}
	if len(doc.Requirements) != 0 {
		t.Errorf("Requirements = %d entries, want 0", len(doc.Requirements))
	}
}

func TestLoad_UnknownSession(t *testing.T) {
	j := New(newMemSessionStore())
	_, _, err := j.Load(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Load error = %v, want ErrSessionNotFound", err)
	}
}

func TestAddRequirement_ResetsCheckPageVisited(t *testing.T) {
	j, id := startJourney(t)
	ctx := context.Background()

	s, doc, _ := j.Load(ctx, id)
	if err := j.MarkCheckPageVisited(ctx, s, doc); err != nil {
		t.Fatalf("MarkCheckPageVisited: %v", err)
	}

	index, err := j.AddRequirement(ctx, id)
	if err != nil {
		t.Fatalf("AddRequirement: %v", err)
	}
	if index != 0 {
		t.Errorf("index = %d, want 0", index)
	}

	_, doc, _ = j.Load(ctx, id)
	if doc.CheckPageVisited {
		t.Error("AddRequirement should reset CheckPageVisited")
	}
	if len(doc.Requirements) != 1 {
		t.Fatalf("Requirements = %d entries, want 1", len(doc.Requirements))
	}
}

func TestRemoveRequirement(t *testing.T) {
	j, id := startJourney(t)
	ctx := context.Background()

	if _, err := j.AddRequirement(ctx, id); err != nil {
		t.Fatalf("AddRequirement: %v", err)
	}
	if _, err := j.AddRequirement(ctx, id); err != nil {
		t.Fatalf("AddRequirement: %v", err)
	}
	err := j.Update(ctx, id, func(doc *domain.Document) error {
		doc.Requirements[0].SiteDescription = "first"
		doc.Requirements[1].SiteDescription = "second"
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := j.RemoveRequirement(ctx, id, 0); err != nil {
		t.Fatalf("RemoveRequirement: %v", err)
	}

	_, doc, _ := j.Load(ctx, id)
	if len(doc.Requirements) != 1 {
		t.Fatalf("Requirements = %d entries, want 1", len(doc.Requirements))
	}
	if doc.Requirements[0].SiteDescription != "second" {
		t.Errorf("surviving requirement = %q, want %q", doc.Requirements[0].SiteDescription, "second")
	}

	if err := j.RemoveRequirement(ctx, id, 5); !errors.Is(err, ErrNoSuchRequirement) {
		t.Errorf("RemoveRequirement out of range error = %v, want ErrNoSuchRequirement", err)
	}
}

func TestMarkCheckPageVisited_Idempotent(t *testing.T) {
	j, id := startJourney(t)
	ctx := context.Background()

	s, doc, _ := j.Load(ctx, id)
	if err := j.MarkCheckPageVisited(ctx, s, doc); err != nil {
		t.Fatalf("MarkCheckPageVisited: %v", err)
	}
	s, doc, _ = j.Load(ctx, id)
	before := string(s.Data)

	if err := j.MarkCheckPageVisited(ctx, s, doc); err != nil {
		t.Fatalf("MarkCheckPageVisited (second): %v", err)
	}
	s, _, _ = j.Load(ctx, id)
	if string(s.Data) != before {
		t.Error("second MarkCheckPageVisited should not rewrite the document")
	}
}

func TestNextPath_LinearFirstPass(t *testing.T) {
	doc := &domain.Document{Journey: domain.JourneyTag, JourneyType: domain.JourneyReturnsRequired}

	cases := []struct {
		step  string
		index int
		want  string
	}{
		{StepStart, 0, "/return-requirements/setup/s1/start-date"},
		{StepStartDate, 0, "/return-requirements/setup/s1/reason"},
		{StepReason, 0, "/return-requirements/setup/s1/method"},
		{StepPurpose, 0, "/return-requirements/setup/s1/points/0"},
		{StepPoints, 1, "/return-requirements/setup/s1/abstraction-period/1"},
		{StepAgreementsExceptions, 0, "/return-requirements/setup/s1/check"},
	}
	for _, tc := range cases {
		if got := NextPath(doc, "s1", tc.step, tc.index); got != tc.want {
			t.Errorf("NextPath(%s) = %q, want %q", tc.step, got, tc.want)
		}
	}
}

func TestNextPath_ChecksVisitedRoutesToCheck(t *testing.T) {
	doc := &domain.Document{
		Journey:          domain.JourneyTag,
		JourneyType:      domain.JourneyReturnsRequired,
		CheckPageVisited: true,
	}
	for _, step := range []string{StepStartDate, StepReason, StepPurpose, StepSiteDescription} {
		want := "/return-requirements/setup/s1/check"
		if got := NextPath(doc, "s1", step, 0); got != want {
			t.Errorf("NextPath(%s) after check visited = %q, want %q", step, got, want)
		}
	}
}

func TestNextPath_Forks(t *testing.T) {
	noReturns := &domain.Document{Journey: domain.JourneyTag, JourneyType: domain.JourneyNoReturnsRequired}
	if got := NextPath(noReturns, "s1", StepReason, 0); got != "/return-requirements/setup/s1/check" {
		t.Errorf("no-returns-required reason next = %q, want check", got)
	}

	abstraction := &domain.Document{
		Journey:     domain.JourneyTag,
		JourneyType: domain.JourneyReturnsRequired,
		Method:      domain.MethodAbstractionData,
	}
	if got := NextPath(abstraction, "s1", StepMethod, 0); got != "/return-requirements/setup/s1/check" {
		t.Errorf("use-abstraction-data method next = %q, want check", got)
	}

	manual := &domain.Document{
		Journey:     domain.JourneyTag,
		JourneyType: domain.JourneyReturnsRequired,
		Method:      domain.MethodManual,
	}
	if got := NextPath(manual, "s1", StepMethod, 0); got != "/return-requirements/setup/s1/purpose/0" {
		t.Errorf("set-up-manually method next = %q, want purpose/0", got)
	}
}

func TestNextPath_NoteAlwaysReturnsToCheck(t *testing.T) {
	doc := &domain.Document{Journey: domain.JourneyTag, JourneyType: domain.JourneyReturnsRequired}
	if got := NextPath(doc, "s1", StepNote, 0); got != "/return-requirements/setup/s1/check" {
		t.Errorf("note next = %q, want check", got)
	}
}
