package snipsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Shorten creates a short link, owned by the signed-in user if there is one.
func (c *Client) Shorten(ctx context.Context, req ShortenRequest) (*URL, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/urls", req, nil)
	if err != nil {
		return nil, err
	}

	var u URL
	if err := decodeJSON(resp, &u, http.StatusCreated); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetURL looks up a live link by slug.
func (c *Client) GetURL(ctx context.Context, slug string) (*URL, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/urls/"+url.PathEscape(slug), nil, nil)
	if err != nil {
		return nil, err
	}

	var u URL
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListURLs returns the signed-in user's links, newest first.
func (c *Client) ListURLs(ctx context.Context) ([]URL, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/urls", nil, nil)
	if err != nil {
		return nil, err
	}

	var out ListURLsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.URLs, nil
}

func (c *Client) UpdateSlug(ctx context.Context, id, slug string) (*URL, error) {
	path := "/v1/urls/" + url.PathEscape(id) + "/slug"
	resp, err := c.doRequest(ctx, http.MethodPatch, path, UpdateSlugRequest{Slug: slug}, nil)
	if err != nil {
		return nil, err
	}

	var u URL
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteURL(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/urls/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// Resolve follows nothing: it returns the redirect target of slug.
func (c *Client) Resolve(ctx context.Context, slug string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/"+url.PathEscape(slug), nil, nil)
	if err != nil {
		return "", err
	}
	if err := checkStatus(resp, http.StatusFound); err != nil {
		return "", err
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("redirect without location")
	}
	return location, nil
}
