// Package oauth signs users in through an external identity provider and
// reports the provider's view of their profile.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"golang.org/x/oauth2"
)

// ProfileProvider runs the authorization code flow against one provider.
type ProfileProvider interface {
	// AuthCodeURL is the consent page the browser is sent to.
	AuthCodeURL(state string) string

	// Exchange trades the callback code for the user's profile.
	Exchange(ctx context.Context, code string) (domain.OAuthProfile, error)
}

// Google endpoints.
const (
	GoogleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	GoogleTokenURL    = "https://oauth2.googleapis.com/token"
	GoogleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Endpoint overrides, empty means Google's.
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

// Google implements ProfileProvider with OpenID Connect userinfo.
type Google struct {
	oauth       *oauth2.Config
	userInfoURL string
}

func NewGoogle(cfg GoogleConfig) *Google {
	return &Google{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   orDefault(cfg.AuthURL, GoogleAuthURL),
				TokenURL:  orDefault(cfg.TokenURL, GoogleTokenURL),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		userInfoURL: orDefault(cfg.UserInfoURL, GoogleUserInfoURL),
	}
}

func (g *Google) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (g *Google) Exchange(ctx context.Context, code string) (domain.OAuthProfile, error) {
	if strings.TrimSpace(code) == "" {
		return domain.OAuthProfile{}, errx.Validation("authorization code is required")
	}

	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil && re.Response.StatusCode < 500 {
			return domain.OAuthProfile{}, errx.Unauthorized("authorization code rejected")
		}
		return domain.OAuthProfile{}, errx.Upstream("identity provider unavailable", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return domain.OAuthProfile{}, errx.Upstream("identity provider unavailable", err)
	}

	resp, err := g.oauth.Client(ctx, tok).Do(req)
	if err != nil {
		return domain.OAuthProfile{}, errx.Upstream("identity provider unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.OAuthProfile{}, errx.Upstream("identity provider unavailable",
			fmt.Errorf("userinfo returned %d", resp.StatusCode))
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return domain.OAuthProfile{}, errx.Upstream("identity provider unavailable", err)
	}

	if info.Sub == "" {
		return domain.OAuthProfile{}, errx.Upstream("identity provider unavailable", errors.New("userinfo without sub"))
	}
	if !info.EmailVerified {
		return domain.OAuthProfile{}, errx.Unauthorized("email address is not verified")
	}

	return domain.OAuthProfile{
		ProviderID: info.Sub,
		Email:      info.Email,
		Name:       info.Name,
		AvatarURL:  info.Picture,
	}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
