package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/pkg/httpx"
	"github.com/aussiebroadwan/snip/pkg/snipsdk"
)

// Pinger is a dependency readiness can be checked against.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LivezHandler godoc
//
//	@Summary		Liveness Check Endpoint
//	@Description	Returns 200 while the process is running, with uptime and version
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	snipsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, snipsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Checks the database and, when configured, the redis cache
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	snipsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	snipsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := &snipsdk.HealthChecks{Database: "ok", Cache: "disabled"}
		status, code := "ok", http.StatusOK

		if err := st.Ping(ctx); err != nil {
			checks.Database = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}

		// The cache is an optimisation; losing it degrades but does not
		// take the service out of rotation.
		if cache != nil {
			checks.Cache = "ok"
			if err := cache.Ping(ctx); err != nil {
				checks.Cache = "error: " + err.Error()
				status = "degraded"
			}
		}

		httpx.WriteJSON(w, code, snipsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// HealthHandler godoc
//
//	@Summary		Health Check
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	snipsdk.HealthResponse	"status"
//	@Router			/health [get].
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, snipsdk.HealthResponse{Status: "ok"})
}
