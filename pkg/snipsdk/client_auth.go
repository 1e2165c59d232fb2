package snipsdk

import (
	"context"
	"net/http"
)

// Refresh exchanges the refresh token for a new access token, which the
// client then uses.
func (c *Client) Refresh(ctx context.Context) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/refresh", nil, nil)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignOut clears the session cookies on the server side and forgets the
// client's tokens.
func (c *Client) SignOut(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/signout", nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// GetProfile returns the signed-in user.
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/users/profile", nil, nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}
