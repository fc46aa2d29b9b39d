package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	licencedomain "water-abstraction-admin/internal/licence/domain"
	refdomain "water-abstraction-admin/internal/refdata/domain"
	"water-abstraction-admin/internal/returnreqs/domain"
	"water-abstraction-admin/internal/returnreqs/journey"
	"water-abstraction-admin/internal/returnreqs/service"
	returnsdomain "water-abstraction-admin/internal/returns/domain"
	sessiondomain "water-abstraction-admin/internal/session/domain"
)

type memSessionStore struct {
	m map[string]*sessiondomain.Session
}

func (r *memSessionStore) GetByID(ctx context.Context, id string) (*sessiondomain.Session, error) {
	s, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	s2 := *s
	return &s2, nil
}

func (r *memSessionStore) Create(ctx context.Context, s *sessiondomain.Session) error {
	s2 := *s
	r.m[s.ID] = &s2
	return nil
}

func (r *memSessionStore) Update(ctx context.Context, s *sessiondomain.Session) error {
	s2 := *s
	r.m[s.ID] = &s2
	return nil
}

func (r *memSessionStore) DeleteByID(ctx context.Context, id string) error {
	delete(r.m, id)
	return nil
}

type fakeLicences struct{}

func (fakeLicences) GetByID(ctx context.Context, id string) (*licencedomain.Licence, error) {
	if id != "licence-1" {
		return nil, nil
	}
	return &licencedomain.Licence{
		ID:         "licence-1",
		LicenceRef: "01/123",
		HolderName: "Acme Farms Ltd",
		RegionID:   "region-1",
		StartDate:  time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

type fakeRefData struct{}

func (fakeRefData) ListPurposesForLicence(ctx context.Context, licenceID string) ([]*refdomain.Purpose, error) {
	return []*refdomain.Purpose{{ID: "purpose-1", Description: "Spray Irrigation"}}, nil
}

func (fakeRefData) ListPointsForLicence(ctx context.Context, licenceID string) ([]*refdomain.Point, error) {
	return []*refdomain.Point{{ID: "point-1", Description: "Borehole A", NGR1: "TQ 123 456"}}, nil
}

type fakeFinalizer struct{}

func (fakeFinalizer) Finalize(ctx context.Context, sessionID string, doc *domain.Document) (*returnsdomain.ReturnVersion, error) {
	return &returnsdomain.ReturnVersion{ID: "version-1", LicenceID: doc.Licence.ID}, nil
}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	store := &memSessionStore{m: map[string]*sessiondomain.Session{}}
	svc := service.NewSetupService(journey.New(store), fakeLicences{}, fakeRefData{}, fakeFinalizer{}, nil)
	r := mux.NewRouter()
	NewSetup(svc).Register(r)
	return r
}

func startJourney(t *testing.T, r *mux.Router) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/licences/licence-1/return-requirements/setup", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("start journey status = %d, body %s", rec.Code, rec.Body.String())
	}
	loc := rec.Header().Get("Location")
	parts := strings.Split(loc, "/")
	if len(parts) < 4 {
		t.Fatalf("unexpected redirect %q", loc)
	}
	return parts[3]
}

func postForm(r *mux.Router, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestStartJourneyRedirectsToFirstStep(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/licences/licence-1/return-requirements/setup", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/return-requirements/setup/") || !strings.HasSuffix(loc, "/start") {
		t.Errorf("unexpected redirect %q", loc)
	}
}

func TestStartJourneyUnknownLicence(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/licences/nope/return-requirements/setup", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetPageRendersViewModel(t *testing.T) {
	r := newTestRouter(t)
	sessionID := startJourney(t, r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/return-requirements/setup/"+sessionID+"/start", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var page struct {
		LicenceRef string `json:"licenceRef"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if page.LicenceRef != "01/123" {
		t.Errorf("licenceRef = %q", page.LicenceRef)
	}
}

func TestGetPageUnknownSession(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/return-requirements/setup/a4f9e2d0-0000-0000-0000-000000000000/start", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetUnknownPage(t *testing.T) {
	r := newTestRouter(t)
	sessionID := startJourney(t, r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/return-requirements/setup/"+sessionID+"/bogus", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSubmitValidSelectionRedirects(t *testing.T) {
	r := newTestRouter(t)
	sessionID := startJourney(t, r)

	rec := postForm(r, "/return-requirements/setup/"+sessionID+"/start", url.Values{
		"journeyType": {domain.JourneyReturnsRequired},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if want := "/return-requirements/setup/" + sessionID + "/start-date"; rec.Header().Get("Location") != want {
		t.Errorf("redirect = %q, want %q", rec.Header().Get("Location"), want)
	}
}

func TestSubmitInvalidSelectionRedisplays(t *testing.T) {
	r := newTestRouter(t)
	sessionID := startJourney(t, r)

	rec := postForm(r, "/return-requirements/setup/"+sessionID+"/start", url.Values{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Error    string          `json:"error"`
		PageData json.RawMessage `json:"pageData"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "Select if returns are required" {
		t.Errorf("error = %q", body.Error)
	}
	if len(body.PageData) == 0 {
		t.Error("page data missing from validation response")
	}
}

func TestFullJourneyFinalizes(t *testing.T) {
	r := newTestRouter(t)
	sessionID := startJourney(t, r)
	base := "/return-requirements/setup/" + sessionID

	steps := []struct {
		path string
		form url.Values
	}{
		{base + "/start", url.Values{"journeyType": {domain.JourneyReturnsRequired}}},
		{base + "/start-date", url.Values{"option": {domain.StartDateLicence}}},
		{base + "/reason", url.Values{"reason": {"new-licence"}}},
		{base + "/method", url.Values{"method": {domain.MethodAbstractionData}}},
	}
	for _, step := range steps {
		if rec := postForm(r, step.path, step.form); rec.Code != http.StatusSeeOther {
			t.Fatalf("POST %s: status = %d, body %s", step.path, rec.Code, rec.Body.String())
		}
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, base+"/check", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET check: status = %d", rec.Code)
	}

	rec = postForm(r, base+"/check", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST check: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if want := "/licences/licence-1/return-versions/version-1"; rec.Header().Get("Location") != want {
		t.Errorf("redirect = %q, want %q", rec.Header().Get("Location"), want)
	}
}

func TestRemoveRequirementRedirectsToCheck(t *testing.T) {
	r := newTestRouter(t)
	sessionID := startJourney(t, r)
	base := "/return-requirements/setup/" + sessionID

	if rec := postForm(r, base+"/check/add", nil); rec.Code != http.StatusSeeOther {
		t.Fatalf("add: status = %d", rec.Code)
	}
	rec := postForm(r, base+"/check/remove/0", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("remove: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if want := base + "/check"; rec.Header().Get("Location") != want {
		t.Errorf("redirect = %q, want %q", rec.Header().Get("Location"), want)
	}

	if rec := postForm(r, base+"/check/remove/5", nil); rec.Code != http.StatusNotFound {
		t.Errorf("remove out of range: status = %d, want 404", rec.Code)
	}
}

func TestCancelDeletesSession(t *testing.T) {
	r := newTestRouter(t)
	sessionID := startJourney(t, r)
	base := "/return-requirements/setup/" + sessionID

	rec := postForm(r, base+"/cancel", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("cancel: status = %d", rec.Code)
	}
	if want := "/licences/licence-1"; rec.Header().Get("Location") != want {
		t.Errorf("redirect = %q, want %q", rec.Header().Get("Location"), want)
	}

	getRec := httptest.NewRecorder()
	r.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, base+"/start", nil))
	if getRec.Code != http.StatusNotFound {
		t.Errorf("after cancel: status = %d, want 404", getRec.Code)
	}
}
