package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/snip/pkg/snipsdk"
	"github.com/stretchr/testify/require"
)

const (
	chromeDesktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	safariIPhoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
)

func TestTrackingAndAnalytics(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	owner, _ := f.signIn(t, "google-analytics", "analytics@example.com")
	other, _ := f.signIn(t, "google-nosy", "nosy@example.com")

	link, err := owner.Shorten(ctx, snipsdk.ShortenRequest{URL: "https://example.com/launch"})
	require.NoError(t, err)

	require.NoError(t, f.client.TrackVisit(ctx, link.ID, snipsdk.VisitMeta{
		UserAgent:      chromeDesktopUA,
		Referer:        "https://news.ycombinator.com/item?id=1",
		AcceptLanguage: "en-AU,en;q=0.9",
	}))
	require.NoError(t, f.client.TrackVisit(ctx, link.ID, snipsdk.VisitMeta{
		UserAgent: safariIPhoneUA,
	}))

	// Following the link records a visit too.
	_, err = f.client.Resolve(ctx, link.Slug)
	require.NoError(t, err)

	f.visits.Wait()

	report, err := owner.GetAnalytics(ctx, link.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, report.Visits, 3)
	require.Equal(t, 3, report.Summary.Total)
	require.Equal(t, 1, report.Summary.UniqueVisitors, "all visits come from the test client address")
	require.Equal(t, 1, report.Summary.Browsers["Chrome"])
	require.Equal(t, 1, report.Summary.Devices["mobile"])
	require.Equal(t, 1, report.Summary.Referrers["news.ycombinator.com"])
	require.Equal(t, 1, report.Summary.Languages["en"])

	for _, v := range report.Visits {
		require.Equal(t, link.ID, v.URLID)
		require.NotEmpty(t, v.VisitorHash)
		require.NotContains(t, v.VisitorHash, "127.0.0.1")
	}

	t.Run("range excludes older visits", func(t *testing.T) {
		from := f.clock.Now().Add(time.Hour)
		report, err := owner.GetAnalytics(ctx, link.ID, from, from.Add(time.Hour))
		require.NoError(t, err)
		require.Empty(t, report.Visits)
		require.Equal(t, 0, report.Summary.Total)
	})

	t.Run("from after to", func(t *testing.T) {
		now := f.clock.Now()
		_, err := owner.GetAnalytics(ctx, link.ID, now, now.Add(-time.Hour))
		requireAPIError(t, err, http.StatusBadRequest, snipsdk.ErrorCodeInvalidRequest)
	})

	t.Run("only the owner sees analytics", func(t *testing.T) {
		_, err := other.GetAnalytics(ctx, link.ID, time.Time{}, time.Time{})
		requireAPIError(t, err, http.StatusUnauthorized, snipsdk.ErrorCodeUnauthorized)

		_, err = f.client.GetAnalytics(ctx, link.ID, time.Time{}, time.Time{})
		requireAPIError(t, err, http.StatusUnauthorized, snipsdk.ErrorCodeUnauthorized)
	})
}

func TestTrackUnknownLinkIsAccepted(t *testing.T) {
	f := newFixture(t)

	// The write fails in the background; the caller is not told.
	require.NoError(t, f.client.TrackVisit(t.Context(), "01HZZZZZZZZZZZZZZZZZZZZZZZ", snipsdk.VisitMeta{}))
	f.visits.Wait()
}

func TestAnalyticsRejectsBadTimestamps(t *testing.T) {
	f := newFixture(t)
	owner, _ := f.signIn(t, "google-ts", "ts@example.com")

	link, err := owner.Shorten(t.Context(), snipsdk.ShortenRequest{URL: "example.com"})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet,
		f.srv.URL+"/v1/urls/trackings/"+link.ID+"?from=yesterday", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "Bearer " + owner.AccessToken()})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
