// Package handler serves the read-only views of finalized return versions.
// The setup journey redirects here after finalization.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	auditdomain "water-abstraction-admin/internal/audit/domain"
	"water-abstraction-admin/internal/httputil"
	refdomain "water-abstraction-admin/internal/refdata/domain"
	"water-abstraction-admin/internal/returnreqs/presenter"
	"water-abstraction-admin/internal/returns/repository"
)

// RegionGetter resolves region ids to their catalog entries.
type RegionGetter interface {
	GetRegionByID(ctx context.Context, id string) (*refdomain.Region, error)
}

// AuditReader lists the audit trail of a licence.
type AuditReader interface {
	ListByLicence(ctx context.Context, licenceID string, limit, offset int32) ([]*auditdomain.AuditLog, error)
}

// Versions handles the return-version read routes.
type Versions struct {
	versions repository.Repository
	regions  RegionGetter
	audits   AuditReader
}

// NewVersions returns a Versions handler.
func NewVersions(versions repository.Repository, regions RegionGetter, audits AuditReader) *Versions {
	return &Versions{versions: versions, regions: regions, audits: audits}
}

// Register mounts the read routes on r.
func (h *Versions) Register(r *mux.Router) {
	r.HandleFunc("/licences/{licenceId}/return-versions/{versionId}", h.getVersion).Methods(http.MethodGet)
	r.HandleFunc("/licences/{licenceId}/audit-logs", h.listAuditLogs).Methods(http.MethodGet)
}

type requirementView struct {
	ID                   string   `json:"id"`
	LegacyID             int      `json:"legacyId"`
	Region               string   `json:"region,omitempty"`
	SiteDescription      string   `json:"siteDescription"`
	ReturnsCycle         string   `json:"returnsCycle"`
	FrequencyCollected   string   `json:"frequencyCollected"`
	FrequencyReported    string   `json:"frequencyReported"`
	AbstractionPeriod    string   `json:"abstractionPeriod"`
	AgreementsExceptions []string `json:"agreementsExceptions"`
}

type versionView struct {
	ID           string            `json:"id"`
	LicenceID    string            `json:"licenceId"`
	Version      int               `json:"version"`
	Status       string            `json:"status"`
	Reason       string            `json:"reason"`
	StartDate    string            `json:"startDate"`
	Notes        string            `json:"notes,omitempty"`
	Requirements []requirementView `json:"requirements"`
}

func (h *Versions) getVersion(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx := r.Context()

	version, err := h.versions.GetVersionByID(ctx, vars["versionId"])
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if version == nil || version.LicenceID != vars["licenceId"] {
		httputil.NotFound(w, "return version not found")
		return
	}

	reqs, err := h.versions.ListRequirementsByVersion(ctx, version.ID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	// Region names are cached per request; every requirement of a licence
	// normally shares one region.
	regionNames := map[string]string{}
	view := versionView{
		ID:           version.ID,
		LicenceID:    version.LicenceID,
		Version:      version.Version,
		Status:       version.Status,
		Reason:       version.Reason,
		StartDate:    presenter.FormatLongDate(version.StartDate),
		Notes:        version.Notes,
		Requirements: make([]requirementView, 0, len(reqs)),
	}
	for _, req := range reqs {
		name, ok := regionNames[req.RegionID]
		if !ok {
			if region, err := h.regions.GetRegionByID(ctx, req.RegionID); err == nil && region != nil {
				name = region.Name
			}
			regionNames[req.RegionID] = name
		}
		view.Requirements = append(view.Requirements, requirementView{
			ID:                 req.ID,
			LegacyID:           req.LegacyID,
			Region:             name,
			SiteDescription:    req.SiteDescription,
			ReturnsCycle:       req.ReturnsCycle,
			FrequencyCollected: req.FrequencyCollected,
			FrequencyReported:  req.FrequencyReported,
			AbstractionPeriod: presenter.FormatAbstractionPeriod(
				req.AbstractionPeriod.StartDay, req.AbstractionPeriod.StartMonth,
				req.AbstractionPeriod.EndDay, req.AbstractionPeriod.EndMonth),
			AgreementsExceptions: req.AgreementsExceptions,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

type auditLogView struct {
	ID        string `json:"id"`
	LicenceID string `json:"licenceId"`
	SessionID string `json:"sessionId,omitempty"`
	Action    string `json:"action"`
	Metadata  string `json:"metadata,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func (h *Versions) listAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	logs, err := h.audits.ListByLicence(r.Context(), mux.Vars(r)["licenceId"], int32(limit), int32(offset))
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	views := make([]auditLogView, 0, len(logs))
	for _, l := range logs {
		views = append(views, auditLogView{
			ID:        l.ID,
			LicenceID: l.LicenceID,
			SessionID: l.SessionID,
			Action:    l.Action,
			Metadata:  l.Metadata,
			CreatedAt: l.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
