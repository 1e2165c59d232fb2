package http

import (
	"net/http"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/service"
	"github.com/aussiebroadwan/snip/pkg/httpx"
	"github.com/aussiebroadwan/snip/pkg/snipsdk"
)

// URLsHandler serves short link management and slug redirects.
type URLsHandler struct {
	URLs    *service.URLService
	Visits  *service.VisitService
	Proxies httpx.TrustedProxies
}

// HandleShorten godoc
//
//	@Summary		Shorten a URL
//	@Description	Creates a short link. Signed-in callers own the link, anonymous links have no owner.
//	@Description	A URL without scheme is stored with https://. When slug is omitted one is generated.
//	@Tags			URLs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		snipsdk.ShortenRequest	true	"url and optional custom slug"
//	@Success		201		{object}	snipsdk.URL				"created link"
//	@Failure		400		{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/urls [post].
func (h *URLsHandler) HandleShorten(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req snipsdk.ShortenRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.URLs.Shorten(ctx, service.ShortenInput{
		URL:    req.URL,
		Slug:   req.Slug,
		UserID: httpx.UserID(ctx),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, u)
}

// HandleGet godoc
//
//	@Summary		Look up a short link
//	@Tags			URLs
//	@Produce		json
//	@Param			slug	path		string					true	"Slug"
//	@Success		200		{object}	snipsdk.URL				"link"
//	@Failure		404		{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/urls/{slug} [get].
func (h *URLsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.URLs.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// HandleList godoc
//
//	@Summary		List my links
//	@Description	Returns the caller's live links, newest first.
//	@Tags			URLs
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	snipsdk.ListURLsResponse	"links"
//	@Failure		401	{object}	snipsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/urls [get].
func (h *URLsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	urls, err := h.URLs.ListMine(ctx, httpx.UserID(ctx))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		URLs []domain.URL `json:"urls"`
	}{URLs: urls})
}

// HandleUpdateSlug godoc
//
//	@Summary		Change a link's slug
//	@Tags			URLs
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Link ID (ULID)"
//	@Param			request	body		snipsdk.UpdateSlugRequest	true	"new slug"
//	@Success		200		{object}	snipsdk.URL					"updated link"
//	@Failure		400		{object}	snipsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	snipsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	snipsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	snipsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/urls/{id}/slug [patch].
func (h *URLsHandler) HandleUpdateSlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req snipsdk.UpdateSlugRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.URLs.UpdateSlug(ctx, httpx.UserID(ctx), r.PathValue("id"), req.Slug)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// HandleDelete godoc
//
//	@Summary		Delete a link
//	@Description	Soft deletes one of the caller's links. Its slug stops resolving and may be claimed again.
//	@Tags			URLs
//	@Security		CookieAuth
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Link ID (ULID)"
//	@Success		204	"Link deleted"
//	@Failure		401	{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/urls/{id} [delete].
func (h *URLsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.URLs.Delete(ctx, httpx.UserID(ctx), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRedirect godoc
//
//	@Summary		Follow a short link
//	@Description	Redirects to the link's target. The visit is recorded in the background.
//	@Tags			URLs
//	@Param			slug	path	string	true	"Slug"
//	@Success		302		"Redirect to the target"
//	@Failure		404		{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Router			/{slug} [get].
func (h *URLsHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	u, err := h.URLs.GetBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Visits.TrackAsync(ctx, u.ID, visitRequest(r, h.Proxies))

	httpx.NoCache(w)
	http.Redirect(w, r, u.URL, http.StatusFound)
}

func visitRequest(r *http.Request, proxies httpx.TrustedProxies) domain.VisitRequest {
	return domain.VisitRequest{
		UserAgent:      r.UserAgent(),
		Referer:        r.Referer(),
		AcceptLanguage: r.Header.Get("Accept-Language"),
		ClientIP:       proxies.ClientIP(r),
	}
}
