// Package server assembles the HTTP router from the per-domain handlers.
package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"water-abstraction-admin/internal/httputil"
	"water-abstraction-admin/internal/metrics"
	"water-abstraction-admin/internal/middleware"
	setuphandler "water-abstraction-admin/internal/returnreqs/handler"
	"water-abstraction-admin/internal/returnreqs/service"
	returnshandler "water-abstraction-admin/internal/returns/handler"
	returnsrepo "water-abstraction-admin/internal/returns/repository"
)

// Deps holds the handler dependencies.
//
// Route → handler mapping:
//   - /licences/{licenceId}/return-requirements/setup → internal/returnreqs/handler
//   - /return-requirements/setup/{sessionId}/...      → internal/returnreqs/handler
//   - /licences/{licenceId}/return-versions/{id}      → internal/returns/handler
//   - /licences/{licenceId}/audit-logs                → internal/returns/handler
//   - /healthz                                        → liveness and DB ping
//   - /metrics                                        → Prometheus registry
type Deps struct {
	// Setup drives the return-requirements wizard routes.
	Setup *service.SetupService
	// Versions serves read views of finalized return versions. Optional;
	// the routes are skipped when nil.
	Versions returnsrepo.Repository
	Regions  returnshandler.RegionGetter
	Audits   returnshandler.AuditReader
	// DB is pinged by /healthz readiness. If nil, the ping is skipped.
	DB *sql.DB
}

// NewRouter builds the full route tree with logging and metrics middleware.
func NewRouter(deps Deps) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging(), middleware.Metrics())

	r.HandleFunc("/healthz", healthz(deps.DB)).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	setuphandler.NewSetup(deps.Setup).Register(r)
	if deps.Versions != nil {
		returnshandler.NewVersions(deps.Versions, deps.Regions, deps.Audits).Register(r)
	}
	return r
}

func healthz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "db": err.Error()})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
