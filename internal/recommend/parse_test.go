package recommend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractArray(t *testing.T) {
	arr, err := extractArray("Sure [see below]:\n[{\"id\":\"a\",\"rank\":1}] trailing [1,2]")
	require.NoError(t, err)
	require.Len(t, arr, 1)

	_, err = extractArray("   ")
	require.ErrorIs(t, err, errEmptyReply)

	_, err = extractArray(`{"rankings": "none"}`)
	require.ErrorIs(t, err, errNoArray)
}

func TestParseRankings(t *testing.T) {
	entries, err := parseRankings(`[
		{"id": "a", "rank": 1, "score": 0.9, "reason": " close by "},
		{"id": "b", "rank": 2.0},
		{"id": "c", "rank": -1},
		{"id": "", "rank": 3},
		"junk"
	]`)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "a", entries[0].ID)
	require.NotNil(t, entries[0].Score)
	require.Equal(t, 0.9, *entries[0].Score)
	require.Equal(t, "close by", entries[0].Reason)

	require.Equal(t, 2, entries[1].Rank)
	require.Nil(t, entries[1].Score)
	require.Empty(t, entries[1].Reason)

	_, err = parseRankings("[]")
	require.ErrorIs(t, err, errEmptyArray)
}

func TestFailureReason(t *testing.T) {
	require.Equal(t, "parse", failureReason(errNoArray))
	require.Equal(t, "empty", failureReason(errEmptyArray))
	require.Equal(t, "invalid", failureReason(errNoUsableEntries))
}
