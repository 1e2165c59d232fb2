// Package idx issues the ULID identifiers used for users, urls, visits and
// request ids.
package idx

import (
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

// Zero represents the zero value ID, don't use this unless its a placeholder.
const Zero ID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

// Generator hands out monotonic ULIDs. It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	clock   func() time.Time
	entropy *ulid.MonotonicEntropy
}

// NewGenerator creates a generator reading time from clock and randomness
// from entropy. Nil arguments fall back to time.Now and crypto/rand.
func NewGenerator(clock func() time.Time, entropy io.Reader) *Generator {
	if clock == nil {
		clock = time.Now
	}
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Generator{clock: clock, entropy: ulid.Monotonic(entropy, 0)}
}

// New returns an ID stamped with the generator's clock.
func (g *Generator) New() ID {
	return g.NewAt(g.clock())
}

// NewAt returns an ID stamped with t.
func (g *Generator) NewAt(t time.Time) ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t.UTC()), g.entropy).String())
}

var (
	globalOnce sync.Once
	global     *Generator
)

func std() *Generator {
	globalOnce.Do(func() { global = NewGenerator(nil, nil) })
	return global
}

// New returns a new lexicographically sortable ID from the shared generator.
func New() ID { return std().New() }

// NewAt is New with an explicit timestamp, useful for tests and seeding.
func NewAt(t time.Time) ID { return std().NewAt(t) }

// Parse validates s as a ULID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}

	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}

	return ID(s), nil
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

// String returns the canonical string form.
func (id ID) String() string { return string(id) }

// Time extracts the embedded UTC timestamp. Invalid IDs yield the zero time.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(id.String())
	if err != nil {
		return time.Time{}
	}

	// ULID time component is in ms since epoch.
	return ulid.Time(u.Time()).UTC()
}
