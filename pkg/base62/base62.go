// Package base62 converts non-negative integers to and from the compact
// alphabet used for short link slugs.
package base62

import (
	"errors"
	"math"
	"math/bits"
)

// Alphabet is digits, then lowercase, then uppercase. Some write-ups of the
// slug format put uppercase first (0-9A-Za-z); that order does not reproduce
// the issued values (10000 is "2Bi", 4567 is "1bF"). Reordering it changes
// every slug ever issued.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const base = uint64(len(Alphabet))

// ErrMalformedInput reports an empty string, a character outside the
// alphabet, or a value that does not fit in 64 bits.
var ErrMalformedInput = errors.New("base62: malformed input")

// reverse maps an input byte to its digit value, -1 when it is not in the
// alphabet.
var reverse = func() [256]int8 {
	var r [256]int8
	for i := range r {
		r[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		r[Alphabet[i]] = int8(i)
	}
	return r
}()

// Encode returns the minimal-length representation of n, most significant
// digit first. Encode(0) is "0".
func Encode(n uint64) string {
	if n == 0 {
		return "0"
	}

	// 11 digits cover math.MaxUint64.
	var buf [11]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Alphabet[n%base]
		n /= base
	}
	return string(buf[i:])
}

// Decode is the inverse of Encode.
func Decode(s string) (uint64, error) {
	if s == "" {
		return 0, ErrMalformedInput
	}

	var n uint64
	for i := 0; i < len(s); i++ {
		d := reverse[s[i]]
		if d < 0 {
			return 0, ErrMalformedInput
		}

		hi, lo := bits.Mul64(n, base)
		if hi != 0 || lo > math.MaxUint64-uint64(d) {
			return 0, ErrMalformedInput
		}
		n = lo + uint64(d)
	}
	return n, nil
}
