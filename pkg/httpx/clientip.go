package httpx

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// TrustedProxies are the peers whose X-Forwarded-For and X-Real-IP headers
// are believed. The zero value trusts nobody, so clients cannot pick the
// address their requests are counted against.
type TrustedProxies []netip.Prefix

// ParseTrustedProxies reads a comma separated list of addresses and CIDR
// ranges, e.g. "10.0.0.0/8, 192.168.1.10".
func ParseTrustedProxies(raw string) (TrustedProxies, error) {
	var out TrustedProxies
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "/") {
			p, err := netip.ParsePrefix(part)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", part, err)
			}
			out = append(out, p.Masked())
			continue
		}

		addr, err := netip.ParseAddr(part)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", part, err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

func (t TrustedProxies) trusts(ip string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return false
	}
	addr = addr.WithZone("").Unmap()

	for _, p := range t {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP is the address visits and rate limits are attributed to. It is
// the peer address unless the peer is a trusted proxy. Behind one it is the
// rightmost X-Forwarded-For hop that is not itself trusted, then X-Real-IP.
func (t TrustedProxies) ClientIP(r *http.Request) string {
	peer := peerIP(r)
	if !t.trusts(peer) {
		return peer
	}

	var leftmost string
	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !t.trusts(hop) {
			return hop
		}
		leftmost = hop
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if leftmost != "" {
		return leftmost
	}
	return peer
}

func peerIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
