package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testCandidates = []string{"臺北市", "新北市", "桃園市", "臺中市", "高雄市"}

func TestCorrectAliasBeforeFuzzy(t *testing.T) {
	c := NewCorrector(75)
	got, ok := c.Correct("台北", testCandidates)
	require.True(t, ok)
	require.Equal(t, "臺北市", got)
}

func TestCorrectIdempotentOnCanonicalName(t *testing.T) {
	c := NewCorrector(75)
	for _, name := range testCandidates {
		got, ok := c.Correct(name, testCandidates)
		require.True(t, ok)
		require.Equal(t, name, got)
	}
}

func TestCorrectFuzzyMatch(t *testing.T) {
	c := NewCorrector(75)
	// One trailing character away from the canonical spelling.
	got, ok := c.Correct("臺北市區", testCandidates)
	require.True(t, ok)
	require.Equal(t, "臺北市", got)
}

func TestCorrectNoMatchBelowThreshold(t *testing.T) {
	c := NewCorrector(75)
	_, ok := c.Correct("東京都千代田區", testCandidates)
	require.False(t, ok)
}

func TestCorrectTieBreaksOnCandidateOrder(t *testing.T) {
	c := NewCorrector(50)
	// Both candidates score identically against the input; the first in
	// slice order must win.
	got, ok := c.Correct("淡水市", []string{"淡海市", "淡水鎮"})
	require.True(t, ok)
	require.Equal(t, "淡海市", got)
}

func TestCorrectEmptyCandidates(t *testing.T) {
	c := NewCorrector(75)
	_, ok := c.Correct("臺北市", nil)
	require.False(t, ok)
}
