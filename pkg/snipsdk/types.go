package snipsdk

import "time"

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez, /readyz and /health. Checks is only
// set by /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks is the status of each dependency ("ok", "disabled" or
// "error: ...").
type HealthChecks struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// ============================================================================
// Errors
// ============================================================================

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Auth
// ============================================================================

type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	ProviderID string    `json:"providerId"`
	AvatarURL  string    `json:"avatarUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type AuthToken struct {
	Token            string `json:"token"`
	ExpiresInSeconds int64  `json:"expiresIn"`
}

// AuthResponse is returned by sign-in and refresh. RefreshToken is absent
// after a refresh, which only re-issues the access token.
type AuthResponse struct {
	User         User       `json:"user"`
	AccessToken  AuthToken  `json:"accessToken"`
	RefreshToken *AuthToken `json:"refreshToken,omitempty"`
}

// ============================================================================
// URLs
// ============================================================================

// ShortenRequest creates a short link. Slug is optional; one is generated
// when it is empty.
type ShortenRequest struct {
	URL  string `json:"url" validate:"required,max=2048"`
	Slug string `json:"slug,omitempty" validate:"omitempty,max=64,slug"`
}

type UpdateSlugRequest struct {
	Slug string `json:"slug" validate:"required,max=64,slug"`
}

type URL struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Slug      string     `json:"slug"`
	UserID    *string    `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

type ListURLsResponse struct {
	URLs []URL `json:"urls"`
}

// ============================================================================
// Tracking
// ============================================================================

type TrackResponse struct {
	Success bool `json:"success"`
}

type Visit struct {
	ID              string    `json:"id"`
	URLID           string    `json:"urlId"`
	ReferrerDomain  string    `json:"referrerDomain,omitempty"`
	Browser         string    `json:"browser,omitempty"`
	OperatingSystem string    `json:"operatingSystem,omitempty"`
	DeviceType      string    `json:"deviceType"`
	Language        string    `json:"language,omitempty"`
	VisitorHash     string    `json:"visitorHash,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type AnalyticsSummary struct {
	Total          int            `json:"total"`
	UniqueVisitors int            `json:"uniqueVisitors"`
	PerDay         map[string]int `json:"perDay"`
	Browsers       map[string]int `json:"browsers"`
	Systems        map[string]int `json:"operatingSystems"`
	Devices        map[string]int `json:"devices"`
	Referrers      map[string]int `json:"referrers"`
	Languages      map[string]int `json:"languages"`
}

type Analytics struct {
	From    time.Time        `json:"from"`
	To      time.Time        `json:"to"`
	Visits  []Visit          `json:"visits"`
	Summary AnalyticsSummary `json:"summary"`
}

type AnalyticsResponse struct {
	Success bool      `json:"success"`
	Data    Analytics `json:"data"`
}
