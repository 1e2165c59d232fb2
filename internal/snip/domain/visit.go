package domain

import "time"

// Device types recorded for a visit.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
)

// Visit is one tracked hit on a short link. The client address is kept only
// as a keyed hash.
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

// VisitRequest is the raw request metadata a visit is derived from.
type VisitRequest struct {
	UserAgent      string
	Referer        string
	AcceptLanguage string
	ClientIP       string
}

// Analytics is the visit report for one link over a time range.
type Analytics struct {
	From    time.Time        `json:"from"`
	To      time.Time        `json:"to"`
	Visits  []Visit          `json:"visits"`
	Summary AnalyticsSummary `json:"summary"`
}

type AnalyticsSummary struct {
	Total          int            `json:"total"`
	UniqueVisitors int            `json:"uniqueVisitors"`
	PerDay         map[string]int `json:"perDay"` // keyed by YYYY-MM-DD (UTC)
	Browsers       map[string]int `json:"browsers"`
	Systems        map[string]int `json:"operatingSystems"`
	Devices        map[string]int `json:"devices"`
	Referrers      map[string]int `json:"referrers"`
	Languages      map[string]int `json:"languages"`
}
