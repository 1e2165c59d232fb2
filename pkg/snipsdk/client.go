package snipsdk

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Cookie names the API reads session tokens from.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// Client talks to one snip deployment. The zero value is not usable; build
// one with NewClient. A Client is safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// NewClient returns an anonymous client. Redirects are not followed so
// Resolve can report where a slug points.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// WithTokens returns a copy of c that authenticates with the given tokens.
// Either may be empty.
func (c *Client) WithTokens(accessToken, refreshToken string) *Client {
	return &Client{
		BaseURL:      c.BaseURL,
		HTTPClient:   c.HTTPClient,
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

// AccessToken returns the access token currently in use. It changes when
// the server silently refreshes the session.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Client) RefreshToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken
}

func (c *Client) tokens() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

// absorbCookies picks up tokens the server set or cleared.
func (c *Client) absorbCookies(resp *http.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ck := range resp.Cookies() {
		var dst *string
		switch ck.Name {
		case AccessTokenCookie:
			dst = &c.accessToken
		case RefreshTokenCookie:
			dst = &c.refreshToken
		default:
			continue
		}

		if ck.MaxAge < 0 || ck.Value == "" {
			*dst = ""
			continue
		}
		*dst = strings.TrimPrefix(ck.Value, "Bearer ")
	}
}
