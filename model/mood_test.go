package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodScoresRoundTrip(t *testing.T) {
	in := MoodScores{
		{Label: "joy", Score: 0.82},
		{Label: "fear", Score: 0.1},
	}

	raw, err := in.Value()
	require.NoError(t, err)

	var out MoodScores
	require.NoError(t, out.Scan(raw))

	assert.Equal(t, in, out)
}

func TestMoodScoresScanEmpty(t *testing.T) {
	var out MoodScores

	require.NoError(t, out.Scan(""))
	assert.Empty(t, out)

	require.NoError(t, out.Scan(nil))
	assert.Empty(t, out)
}

func TestMoodScoresScanCorrupt(t *testing.T) {
	var out MoodScores
	assert.Error(t, out.Scan("{definitely not json"))
}

func TestMoodScoresScanBytes(t *testing.T) {
	var out MoodScores

	require.NoError(t, out.Scan([]byte(`[{"label":"joy","score":0.5}]`)))
	require.Len(t, out, 1)
	assert.Equal(t, "joy", out[0].Label)
}
