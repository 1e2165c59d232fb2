package idx_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/snip/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z"} {
		_, err := idx.Parse(in)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", in)
	}
}

func TestGeneratorClock(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	g := idx.NewGenerator(func() time.Time { return at }, nil)

	a, b := g.New(), g.New()

	// Same millisecond, still strictly increasing
	require.Less(t, a.String(), b.String())
	require.WithinDuration(t, at, a.Time(), time.Millisecond)
}

func TestConcurrentUnique(t *testing.T) {
	const n = 500

	var (
		mu   sync.Mutex
		seen = make(map[idx.ID]struct{}, n)
		wg   sync.WaitGroup
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := idx.New()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, n)
}
