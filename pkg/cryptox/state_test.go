package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateState(t *testing.T) {
	a, err := GenerateState(StateSize)
	require.NoError(t, err)
	require.Len(t, a, 43, "32 bytes base64url should be 43 chars")

	b, err := GenerateState(StateSize)
	require.NoError(t, err)
	require.NotEqual(t, a, b, "states should be unique")
}

func TestGenerateState_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		state, err := GenerateState(size)
		require.Error(t, err)
		require.Empty(t, state)
	}
}

func TestEqualState(t *testing.T) {
	require.True(t, EqualState("abc", "abc"))
	require.False(t, EqualState("abc", "abd"))
	require.False(t, EqualState("", ""))
	require.False(t, EqualState("abc", ""))
}
