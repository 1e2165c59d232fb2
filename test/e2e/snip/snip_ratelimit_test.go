package snip_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/snip/pkg/snipsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitRefreshEndpoint verifies the strict limit (5 req/min per IP)
// on /v1/auth/refresh.
func TestRateLimitRefreshEndpoint(t *testing.T) {
	baseURL, cleanup := setupSnipContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := snipsdk.NewClient(baseURL)
	ctx := t.Context()

	for i := range 5 {
		_, err := client.Refresh(ctx)
		require.True(t, snipsdk.IsStatus(err, http.StatusUnauthorized), "request %d: %v", i+1, err)
	}

	_, err := client.Refresh(ctx)
	require.True(t, snipsdk.IsStatus(err, http.StatusTooManyRequests), "sixth request: %v", err)

	var apiErr *snipsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, snipsdk.ErrorCodeRateLimited, apiErr.Code)
}
