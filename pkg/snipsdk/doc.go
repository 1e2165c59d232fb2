// Package snipsdk is a Go client for the snip URL shortener API.
//
// Unauthenticated calls (health probes, shortening anonymously, resolving
// slugs, tracking) go through a Client directly. Calls that need a principal
// use a Client carrying tokens:
//
//	c := snipsdk.NewClient("http://localhost:8080").WithTokens(access, refresh)
//	link, err := c.Shorten(ctx, snipsdk.ShortenRequest{URL: "example.com"})
//
// Tokens are sent as cookies, the same way a browser would, so the server's
// silent refresh applies: when the access token has expired and the refresh
// token is still good the server re-issues an access cookie, which the
// client picks up and uses from then on.
package snipsdk
