package cryptox

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// VisitorHasher turns client IPs into stable pseudonymous identifiers so
// unique visitors can be counted without storing addresses.
type VisitorHasher struct {
	key []byte
}

// NewVisitorHasher keys the hash with key. blake2b accepts at most 64 bytes.
func NewVisitorHasher(key []byte) (*VisitorHasher, error) {
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("cryptox: visitor key longer than %d bytes", blake2b.Size)
	}
	return &VisitorHasher{key: key}, nil
}

// Hash returns the hex blake2b-256 MAC of ip. An empty ip hashes to "".
func (h *VisitorHasher) Hash(ip string) string {
	if ip == "" {
		return ""
	}

	// Only errors for oversized keys, which NewVisitorHasher rejects
	mac, _ := blake2b.New256(h.key)
	mac.Write([]byte(ip))
	return hex.EncodeToString(mac.Sum(nil))
}
