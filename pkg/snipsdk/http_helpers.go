package snipsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doRequest sends body as JSON (when non-nil) with the client's session
// cookies and absorbs any token cookies in the reply.
func (c *Client) doRequest(
	ctx context.Context,
	method, path string,
	body any,
	headers map[string]string,
) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	access, refresh := c.tokens()
	if access != "" {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "Bearer " + access})
	}
	if refresh != "" {
		req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "Bearer " + refresh})
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	c.absorbCookies(resp)
	return resp, nil
}

// decodeJSON decodes the body into target when the status matches, and
// returns an *APIError otherwise.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// checkStatus drains the body and returns an *APIError unless the status
// matches.
func checkStatus(resp *http.Response, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}
	return nil
}
