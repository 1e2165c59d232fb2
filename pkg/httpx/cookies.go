package httpx

import (
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Cookie names carrying the two session tokens.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// BearerPrefix precedes token values in cookies and the Authorization header.
const BearerPrefix = "Bearer "

// RequestHost returns the request host without port, lower cased.
func RequestHost(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(strings.TrimSuffix(host, "."))
}

// CookieDomain returns the registrable domain of host with a leading dot so
// cookies are shared across its subdomains: "api.example.com" gives
// ".example.com" and "snip.example.co.uk" gives ".example.co.uk". A host that
// is itself the registrable domain is returned as is. Localhost, IP literals
// and bare public suffixes yield "" (host only).
func CookieDomain(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))

	if host == "" || host == "localhost" || net.ParseIP(host) != nil {
		return ""
	}

	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	if site == host {
		return host
	}
	return "." + site
}

// SetTokenCookie writes an httpOnly, lax, path-wide cookie holding
// "Bearer <token>". It is secure unless the request targets localhost.
func SetTokenCookie(w http.ResponseWriter, r *http.Request, name, token string, ttl time.Duration) {
	host := RequestHost(r)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    BearerPrefix + token,
		Path:     "/",
		Domain:   CookieDomain(host),
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   host != "localhost",
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookies expires both session cookies.
func ClearTokenCookies(w http.ResponseWriter, r *http.Request) {
	host := RequestHost(r)
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   CookieDomain(host),
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   host != "localhost",
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// TokenFromRequest returns the raw token from the named cookie, falling back
// to the Authorization header. The cookie wins when both are present.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if tok := CookieToken(r, cookieName); tok != "" {
		return tok
	}
	if authz := r.Header.Get("Authorization"); authz != "" {
		return stripBearer(authz)
	}
	return ""
}

// CookieToken returns the raw token from the named cookie only.
func CookieToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return stripBearer(c.Value)
	}
	return ""
}

func stripBearer(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= len(BearerPrefix) && strings.EqualFold(v[:len(BearerPrefix)], BearerPrefix) {
		v = v[len(BearerPrefix):]
	}
	return strings.TrimSpace(v)
}
