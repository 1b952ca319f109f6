package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	require.Equal(t, "1 year full-time", CleanText("  1 year\nfull-time\t"))
	require.Equal(t, "a b c", CleanText("a\n\nb   c"))
	require.Equal(t, "", CleanText(" \n\t "))
}

func TestMatchKeyword(t *testing.T) {
	require.True(t, MatchKeyword("Tuition Fee", []string{"fee"}))
	require.True(t, MatchKeyword("Programme\nDuration", []string{"duration"}))
	require.False(t, MatchKeyword("Mode of Study", []string{"fee", "duration"}))
}

func TestTokens(t *testing.T) {
	require.Equal(t, []string{"application", "deadline"}, Tokens(" Application\nDeadline "))
}
