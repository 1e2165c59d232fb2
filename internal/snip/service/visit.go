package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/pkg/cryptox"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/aussiebroadwan/snip/pkg/idx"
	"github.com/aussiebroadwan/snip/pkg/slogx"
	"github.com/mssola/useragent"
)

const (
	// DefaultAnalyticsWindow is used when a report has no lower bound.
	DefaultAnalyticsWindow = 24 * time.Hour

	defaultTrackTimeout = 5 * time.Second
)

type VisitService struct {
	Store  store.Store
	Hasher *cryptox.VisitorHasher // optional, visitor hashes are left empty without it
	Now    func() time.Time

	// TrackTimeout bounds background writes started by TrackAsync.
	TrackTimeout time.Duration

	wg sync.WaitGroup
}

func (s *VisitService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Track records a visit on a live link.
func (s *VisitService) Track(ctx context.Context, urlID string, req domain.VisitRequest) (domain.Visit, error) {
	urlID = strings.TrimSpace(urlID)
	if urlID == "" {
		return domain.Visit{}, errx.Validation("url id is required")
	}

	if _, err := s.Store.URLs().GetURLByID(ctx, urlID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Visit{}, errx.NotFound("url not found")
		}
		return domain.Visit{}, errx.Upstream("failed to load url", err)
	}

	v := DescribeVisit(req)
	v.ID = idx.New().String()
	v.URLID = urlID
	v.CreatedAt = s.now()
	if s.Hasher != nil {
		v.VisitorHash = s.Hasher.Hash(req.ClientIP)
	}

	if err := s.Store.Visits().CreateVisit(ctx, v); err != nil {
		return domain.Visit{}, errx.Upstream("failed to record visit", err)
	}
	return v, nil
}

// TrackAsync records the visit in the background. The write outlives the
// request but not TrackTimeout; failures are only logged.
func (s *VisitService) TrackAsync(ctx context.Context, urlID string, req domain.VisitRequest) {
	timeout := s.TrackTimeout
	if timeout <= 0 {
		timeout = defaultTrackTimeout
	}

	bg := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(bg, timeout)
		defer cancel()

		if _, err := s.Track(ctx, urlID, req); err != nil {
			slogx.FromContext(ctx).WarnContext(ctx, "background visit tracking failed",
				"url_id", urlID, "error", err)
		}
	}()
}

// Wait blocks until background tracking writes have finished.
func (s *VisitService) Wait() { s.wg.Wait() }

// DescribeVisit derives the stored visit attributes from request metadata.
func DescribeVisit(req domain.VisitRequest) domain.Visit {
	v := domain.Visit{
		DeviceType:     domain.DeviceDesktop,
		ReferrerDomain: referrerHost(req.Referer),
		Language:       primaryLanguage(req.AcceptLanguage),
	}

	raw := strings.TrimSpace(req.UserAgent)
	if raw == "" {
		return v
	}

	ua := useragent.New(raw)
	v.Browser, _ = ua.Browser()
	v.OperatingSystem = ua.OSInfo().Name

	switch {
	case ua.Bot():
		v.DeviceType = domain.DeviceBot
	case isTablet(raw, ua):
		v.DeviceType = domain.DeviceTablet
	case ua.Mobile():
		v.DeviceType = domain.DeviceMobile
	}
	return v
}

func isTablet(raw string, ua *useragent.UserAgent) bool {
	lower := strings.ToLower(raw)
	if ua.Platform() == "iPad" || strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet") {
		return true
	}
	// Android phones announce "Mobile", tablets do not.
	return strings.Contains(lower, "android") && !strings.Contains(lower, "mobile")
}

func referrerHost(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func primaryLanguage(header string) string {
	tag, _, _ := strings.Cut(header, ",")
	tag, _, _ = strings.Cut(tag, ";")
	tag, _, _ = strings.Cut(strings.TrimSpace(tag), "-")
	if tag == "*" {
		return ""
	}
	return strings.ToLower(tag)
}

// Analytics reports visits of an owned link between from and to inclusive.
// A zero to means now and a zero from means DefaultAnalyticsWindow before to.
func (s *VisitService) Analytics(ctx context.Context, userID, urlID string, from, to time.Time) (domain.Analytics, error) {
	urlID = strings.TrimSpace(urlID)
	if urlID == "" {
		return domain.Analytics{}, errx.Validation("url id is required")
	}
	if userID == "" {
		return domain.Analytics{}, errx.Unauthorized("not signed in")
	}

	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.Add(-DefaultAnalyticsWindow)
	}
	from, to = from.UTC(), to.UTC()
	if from.After(to) {
		return domain.Analytics{}, errx.Validation("invalid time range")
	}

	u, err := s.Store.URLs().GetURLByID(ctx, urlID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Analytics{}, errx.NotFound("url not found")
		}
		return domain.Analytics{}, errx.Upstream("failed to load url", err)
	}
	if !u.OwnedBy(userID) {
		return domain.Analytics{}, errx.Unauthorized("url belongs to another user")
	}

	visits, err := s.Store.Visits().ListVisitsByURL(ctx, urlID, from, to)
	if err != nil {
		return domain.Analytics{}, errx.Upstream("failed to load visits", err)
	}
	if visits == nil {
		visits = []domain.Visit{}
	}

	return domain.Analytics{
		From:    from,
		To:      to,
		Visits:  visits,
		Summary: Summarize(visits),
	}, nil
}

// Summarize aggregates visits into per day counts and breakdowns. Empty
// attributes are counted as "unknown".
func Summarize(visits []domain.Visit) domain.AnalyticsSummary {
	sum := domain.AnalyticsSummary{
		Total:     len(visits),
		PerDay:    map[string]int{},
		Browsers:  map[string]int{},
		Systems:   map[string]int{},
		Devices:   map[string]int{},
		Referrers: map[string]int{},
		Languages: map[string]int{},
	}

	unique := make(map[string]struct{})
	for _, v := range visits {
		sum.PerDay[v.CreatedAt.UTC().Format(time.DateOnly)]++
		sum.Browsers[orUnknown(v.Browser)]++
		sum.Systems[orUnknown(v.OperatingSystem)]++
		sum.Devices[orUnknown(v.DeviceType)]++
		sum.Referrers[orUnknown(v.ReferrerDomain)]++
		sum.Languages[orUnknown(v.Language)]++

		if v.VisitorHash != "" {
			unique[v.VisitorHash] = struct{}{}
		}
	}
	sum.UniqueVisitors = len(unique)

	return sum
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
