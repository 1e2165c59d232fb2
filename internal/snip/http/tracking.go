package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/service"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/aussiebroadwan/snip/pkg/httpx"
	"github.com/aussiebroadwan/snip/pkg/snipsdk"
)

type TrackingHandler struct {
	Visits  *service.VisitService
	Proxies httpx.TrustedProxies
}

// analyticsQuery is the parsed query string of the analytics endpoint.
type analyticsQuery struct {
	URLID string    `json:"urlId" validate:"required"`
	From  time.Time `json:"from"`
	To    time.Time `json:"to" validate:"omitempty,gtefield=From"`
}

// HandleTrack godoc
//
//	@Summary		Record a visit
//	@Description	Accepts the visit immediately; it is written in the background from the request's
//	@Description	user agent, referrer, language and client address.
//	@Tags			Tracking
//	@Produce		json
//	@Param			urlId	path		string					true	"Link ID (ULID)"
//	@Success		202		{object}	snipsdk.TrackResponse	"success"
//	@Failure		400		{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/urls/trackings/{urlId} [post].
func (h *TrackingHandler) HandleTrack(w http.ResponseWriter, r *http.Request) {
	urlID := r.PathValue("urlId")
	if urlID == "" {
		writeError(w, r, errx.Validation("url id is required"))
		return
	}

	h.Visits.TrackAsync(r.Context(), urlID, visitRequest(r, h.Proxies))
	httpx.WriteJSON(w, http.StatusAccepted, snipsdk.TrackResponse{Success: true})
}

// HandleAnalytics godoc
//
//	@Summary		Visit analytics for a link
//	@Description	Visits of one of the caller's links between from and to (RFC3339). Defaults to the last 24 hours.
//	@Tags			Tracking
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Produce		json
//	@Param			urlId	path		string						true	"Link ID (ULID)"
//	@Param			from	query		string						false	"Range start (RFC3339)"
//	@Param			to		query		string						false	"Range end (RFC3339)"
//	@Success		200		{object}	snipsdk.AnalyticsResponse	"visits and summary"
//	@Failure		400		{object}	snipsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	snipsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	snipsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/urls/trackings/{urlId} [get].
func (h *TrackingHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q, err := parseAnalyticsQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := h.Visits.Analytics(ctx, httpx.UserID(ctx), q.URLID, q.From, q.To)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Success bool             `json:"success"`
		Data    domain.Analytics `json:"data"`
	}{Success: true, Data: report})
}

func parseAnalyticsQuery(r *http.Request) (analyticsQuery, error) {
	q := analyticsQuery{URLID: r.PathValue("urlId")}

	for name, dst := range map[string]*time.Time{"from": &q.From, "to": &q.To} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return q, errx.Validation("%s must be an RFC3339 timestamp", name)
		}
		*dst = t
	}

	if err := validateStruct(q); err != nil {
		return q, err
	}
	return q, nil
}
