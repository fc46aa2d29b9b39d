// Package handler exposes the return-requirements setup journey over HTTP.
// GET renders a page's view model as JSON; POST submits the page's form and
// either redirects with 303 or redisplays with 422.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"water-abstraction-admin/internal/httputil"
	"water-abstraction-admin/internal/metrics"
	"water-abstraction-admin/internal/returnreqs/journey"
	"water-abstraction-admin/internal/returnreqs/service"
)

// Setup handles the setup wizard routes.
type Setup struct {
	svc *service.SetupService
}

// NewSetup returns a Setup handler backed by svc.
func NewSetup(svc *service.SetupService) *Setup {
	return &Setup{svc: svc}
}

// Register mounts the wizard routes on r.
func (h *Setup) Register(r *mux.Router) {
	r.HandleFunc("/licences/{licenceId}/return-requirements/setup", h.start).Methods(http.MethodPost)

	s := r.PathPrefix("/return-requirements/setup/{sessionId}").Subrouter()
	s.HandleFunc("/check/add", h.addRequirement).Methods(http.MethodPost)
	s.HandleFunc("/check/remove/{index:[0-9]+}", h.removeRequirement).Methods(http.MethodPost)
	s.HandleFunc("/cancel", h.cancel).Methods(http.MethodPost)
	s.HandleFunc("/{page}", h.getPage).Methods(http.MethodGet)
	s.HandleFunc("/{page}", h.submitPage).Methods(http.MethodPost)
	s.HandleFunc("/{page}/{index:[0-9]+}", h.getPage).Methods(http.MethodGet)
	s.HandleFunc("/{page}/{index:[0-9]+}", h.submitPage).Methods(http.MethodPost)
}

func (h *Setup) start(w http.ResponseWriter, r *http.Request) {
	licenceID := mux.Vars(r)["licenceId"]
	path, err := h.svc.StartJourney(r.Context(), licenceID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	metrics.RecordJourneyEvent("started")
	httputil.SeeOther(w, r, path)
}

func (h *Setup) cancel(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	path, err := h.svc.Cancel(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	metrics.RecordJourneyEvent("cancelled")
	httputil.SeeOther(w, r, path)
}

func (h *Setup) addRequirement(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	path, err := h.svc.AddRequirement(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.SeeOther(w, r, path)
}

func (h *Setup) removeRequirement(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, _ := strconv.Atoi(vars["index"])
	path, err := h.svc.RemoveRequirement(r.Context(), vars["sessionId"], index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.SeeOther(w, r, path)
}

func (h *Setup) getPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx := r.Context()
	sessionID := vars["sessionId"]
	index, _ := strconv.Atoi(vars["index"])

	var (
		page any
		err  error
	)
	switch vars["page"] {
	case journey.StepStart:
		page, err = h.svc.GetStart(ctx, sessionID)
	case journey.StepStartDate:
		page, err = h.svc.GetStartDate(ctx, sessionID)
	case journey.StepReason:
		page, err = h.svc.GetReason(ctx, sessionID)
	case journey.StepMethod:
		page, err = h.svc.GetMethod(ctx, sessionID)
	case journey.StepPurpose:
		page, err = h.svc.GetPurpose(ctx, sessionID, index)
	case journey.StepPoints:
		page, err = h.svc.GetPoints(ctx, sessionID, index)
	case journey.StepAbstractionPeriod:
		page, err = h.svc.GetAbstractionPeriod(ctx, sessionID, index)
	case journey.StepReturnsCycle:
		page, err = h.svc.GetReturnsCycle(ctx, sessionID, index)
	case journey.StepSiteDescription:
		page, err = h.svc.GetSiteDescription(ctx, sessionID, index)
	case journey.StepFrequencyCollected:
		page, err = h.svc.GetFrequencyCollected(ctx, sessionID, index)
	case journey.StepFrequencyReported:
		page, err = h.svc.GetFrequencyReported(ctx, sessionID, index)
	case journey.StepAgreementsExceptions:
		page, err = h.svc.GetAgreementsExceptions(ctx, sessionID, index)
	case journey.StepNote:
		page, err = h.svc.GetNote(ctx, sessionID)
	case journey.StepCheck:
		page, err = h.svc.GetCheck(ctx, sessionID)
	default:
		httputil.NotFound(w, "unknown setup page")
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, page)
}

func (h *Setup) submitPage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "malformed form data")
		return
	}
	vars := mux.Vars(r)
	ctx := r.Context()
	sessionID := vars["sessionId"]
	index, _ := strconv.Atoi(vars["index"])
	form := r.PostForm

	var (
		res *service.StepResult
		err error
	)
	switch vars["page"] {
	case journey.StepStart:
		res, err = h.svc.SubmitStart(ctx, sessionID, form)
	case journey.StepStartDate:
		res, err = h.svc.SubmitStartDate(ctx, sessionID, form)
	case journey.StepReason:
		res, err = h.svc.SubmitReason(ctx, sessionID, form)
	case journey.StepMethod:
		res, err = h.svc.SubmitMethod(ctx, sessionID, form)
	case journey.StepPurpose:
		res, err = h.svc.SubmitPurpose(ctx, sessionID, index, form)
	case journey.StepPoints:
		res, err = h.svc.SubmitPoints(ctx, sessionID, index, form)
	case journey.StepAbstractionPeriod:
		res, err = h.svc.SubmitAbstractionPeriod(ctx, sessionID, index, form)
	case journey.StepReturnsCycle:
		res, err = h.svc.SubmitReturnsCycle(ctx, sessionID, index, form)
	case journey.StepSiteDescription:
		res, err = h.svc.SubmitSiteDescription(ctx, sessionID, index, form)
	case journey.StepFrequencyCollected:
		res, err = h.svc.SubmitFrequencyCollected(ctx, sessionID, index, form)
	case journey.StepFrequencyReported:
		res, err = h.svc.SubmitFrequencyReported(ctx, sessionID, index, form)
	case journey.StepAgreementsExceptions:
		res, err = h.svc.SubmitAgreementsExceptions(ctx, sessionID, index, form)
	case journey.StepNote:
		res, err = h.svc.SubmitNote(ctx, sessionID, form)
	case journey.StepCheck:
		res, err = h.svc.SubmitCheck(ctx, sessionID)
		if err == nil && !res.Failed() {
			metrics.RecordJourneyEvent("finalized")
		}
	default:
		httputil.NotFound(w, "unknown setup page")
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	if res.Failed() {
		httputil.UnprocessableEntity(w, res.Error, res.PageData)
		return
	}
	httputil.SeeOther(w, r, res.NextPath)
}

func (h *Setup) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		httputil.NotFound(w, "setup session not found or expired")
	case errors.Is(err, service.ErrLicenceNotFound):
		httputil.NotFound(w, "licence not found")
	case errors.Is(err, service.ErrNoSuchRequirement):
		httputil.NotFound(w, "no such requirement")
	default:
		httputil.InternalError(w, err)
	}
}
