package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	auditdomain "water-abstraction-admin/internal/audit/domain"
	refdomain "water-abstraction-admin/internal/refdata/domain"
	"water-abstraction-admin/internal/returns/domain"
)

type fakeVersions struct {
	version      *domain.ReturnVersion
	requirements []*domain.ReturnRequirement
}

func (f *fakeVersions) CreateVersion(ctx context.Context, v *domain.ReturnVersion, reqs []*domain.ReturnRequirement) error {
	return nil
}

func (f *fakeVersions) GetVersionByID(ctx context.Context, id string) (*domain.ReturnVersion, error) {
	if f.version == nil || f.version.ID != id {
		return nil, nil
	}
	return f.version, nil
}

func (f *fakeVersions) ListRequirementsByVersion(ctx context.Context, versionID string) ([]*domain.ReturnRequirement, error) {
	return f.requirements, nil
}

type fakeRegions struct{}

func (fakeRegions) GetRegionByID(ctx context.Context, id string) (*refdomain.Region, error) {
	if id != "region-1" {
		return nil, nil
	}
	return &refdomain.Region{ID: "region-1", Name: "Anglian", NALDRegionID: 1}, nil
}

type fakeAudits struct {
	logs []*auditdomain.AuditLog
}

func (f *fakeAudits) ListByLicence(ctx context.Context, licenceID string, limit, offset int32) ([]*auditdomain.AuditLog, error) {
	if licenceID != "licence-1" {
		return nil, nil
	}
	if int(offset) >= len(f.logs) {
		return nil, nil
	}
	return f.logs[offset:], nil
}

func newTestRouter(versions *fakeVersions, audits *fakeAudits) *mux.Router {
	r := mux.NewRouter()
	NewVersions(versions, fakeRegions{}, audits).Register(r)
	return r
}

func testVersion() (*domain.ReturnVersion, []*domain.ReturnRequirement) {
	v := &domain.ReturnVersion{
		ID:        "version-1",
		LicenceID: "licence-1",
		Version:   3,
		Status:    domain.StatusCurrent,
		Reason:    "major-change",
		StartDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
	}
	reqs := []*domain.ReturnRequirement{{
		ID:                   "requirement-1",
		ReturnVersionID:      "version-1",
		RegionID:             "region-1",
		LegacyID:             12,
		SiteDescription:      "Borehole at Mill Farm",
		ReturnsCycle:         "summer",
		FrequencyCollected:   "week",
		FrequencyReported:    "month",
		AbstractionPeriod:    domain.AbstractionPeriod{StartDay: 1, StartMonth: 4, EndDay: 31, EndMonth: 10},
		AgreementsExceptions: []string{"gravity-fill"},
	}}
	return v, reqs
}

func TestGetVersion(t *testing.T) {
	v, reqs := testVersion()
	router := newTestRouter(&fakeVersions{version: v, requirements: reqs}, &fakeAudits{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/licences/licence-1/return-versions/version-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body versionView
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Version != 3 || body.StartDate != "1 April 2025" {
		t.Fatalf("version = %d, startDate = %q", body.Version, body.StartDate)
	}
	if len(body.Requirements) != 1 {
		t.Fatalf("requirements = %d, want 1", len(body.Requirements))
	}
	req := body.Requirements[0]
	if req.Region != "Anglian" {
		t.Errorf("region = %q, want Anglian", req.Region)
	}
	if req.LegacyID != 12 {
		t.Errorf("legacyId = %d, want 12", req.LegacyID)
	}
	if req.AbstractionPeriod != "From 1 April to 31 October" {
		t.Errorf("abstractionPeriod = %q", req.AbstractionPeriod)
	}
}

func TestGetVersionWrongLicence(t *testing.T) {
	v, reqs := testVersion()
	router := newTestRouter(&fakeVersions{version: v, requirements: reqs}, &fakeAudits{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/licences/licence-2/return-versions/version-1", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetVersionUnknown(t *testing.T) {
	router := newTestRouter(&fakeVersions{}, &fakeAudits{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/licences/licence-1/return-versions/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestListAuditLogs(t *testing.T) {
	audits := &fakeAudits{logs: []*auditdomain.AuditLog{
		{ID: "log-2", LicenceID: "licence-1", Action: auditdomain.ActionJourneyFinalized, CreatedAt: time.Date(2025, time.May, 2, 9, 0, 0, 0, time.UTC)},
		{ID: "log-1", LicenceID: "licence-1", SessionID: "session-1", Action: auditdomain.ActionJourneyStarted, CreatedAt: time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)},
	}}
	router := newTestRouter(&fakeVersions{}, audits)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/licences/licence-1/audit-logs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body []auditLogView
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("logs = %d, want 2", len(body))
	}
	if body[0].Action != auditdomain.ActionJourneyFinalized {
		t.Errorf("action = %q", body[0].Action)
	}
	if body[1].SessionID != "session-1" {
		t.Errorf("sessionId = %q", body[1].SessionID)
	}
	if body[0].CreatedAt != "2025-05-02T09:00:00Z" {
		t.Errorf("createdAt = %q", body[0].CreatedAt)
	}
}

func TestListAuditLogsEmpty(t *testing.T) {
	router := newTestRouter(&fakeVersions{}, &fakeAudits{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/licences/licence-2/audit-logs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != "[]\n" && got != "[]" {
		t.Errorf("body = %q, want empty array", got)
	}
}
