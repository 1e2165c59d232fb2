package snipsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// VisitMeta is the browser metadata a visit is recorded with.
type VisitMeta struct {
	UserAgent      string
	Referer        string
	AcceptLanguage string
}

func (m VisitMeta) headers() map[string]string {
	h := map[string]string{}
	if m.UserAgent != "" {
		h["User-Agent"] = m.UserAgent
	}
	if m.Referer != "" {
		h["Referer"] = m.Referer
	}
	if m.AcceptLanguage != "" {
		h["Accept-Language"] = m.AcceptLanguage
	}
	return h
}

// TrackVisit records a visit on urlID. The server accepts it before it is
// written, so a nil error does not mean the visit is stored yet.
func (c *Client) TrackVisit(ctx context.Context, urlID string, meta VisitMeta) error {
	path := "/v1/urls/trackings/" + url.PathEscape(urlID)
	resp, err := c.doRequest(ctx, http.MethodPost, path, nil, meta.headers())
	if err != nil {
		return err
	}

	var out TrackResponse
	return decodeJSON(resp, &out, http.StatusAccepted)
}

// GetAnalytics returns the visit report of a link the caller owns. Zero
// bounds use the server defaults (the last 24 hours).
func (c *Client) GetAnalytics(ctx context.Context, urlID string, from, to time.Time) (*Analytics, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.UTC().Format(time.RFC3339))
	}
	if !to.IsZero() {
		q.Set("to", to.UTC().Format(time.RFC3339))
	}

	path := "/v1/urls/trackings/" + url.PathEscape(urlID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out AnalyticsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
