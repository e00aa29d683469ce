package mood

import (
	"testing"
	"time"

	"dreamcatcher/dream-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dreamAt(t time.Time, scores ...model.MoodScore) model.Dream {
	return model.Dream{
		Mood:      model.MoodScores(scores),
		CreatedAt: t.UnixMilli(),
	}
}

func TestTopForDayNoDreams(t *testing.T) {
	_, _, ok := TopForDay(nil, time.Now())
	assert.False(t, ok)
}

func TestTopForDayIgnoresOtherDays(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	dreams := []model.Dream{
		dreamAt(yesterday, model.MoodScore{Label: "fear", Score: 0.9}),
	}

	_, _, ok := TopForDay(dreams, now)
	assert.False(t, ok)
}

func TestTopForDayPicksLargestSum(t *testing.T) {
	now := time.Now()

	dreams := []model.Dream{
		dreamAt(now,
			model.MoodScore{Label: "joy", Score: 0.6},
			model.MoodScore{Label: "fear", Score: 0.4},
		),
		dreamAt(now,
			model.MoodScore{Label: "fear", Score: 0.7},
			model.MoodScore{Label: "joy", Score: 0.3},
		),
	}

	label, share, ok := TopForDay(dreams, now)
	require.True(t, ok)

	// fear sums to 1.1 of 2.0 total
	assert.Equal(t, "fear", label)
	assert.InDelta(t, 1.1/2.0, share, 1e-9)
}

func TestTopForDayTieGoesToFirstEncountered(t *testing.T) {
	now := time.Now()

	dreams := []model.Dream{
		dreamAt(now,
			model.MoodScore{Label: "joy", Score: 0.5},
			model.MoodScore{Label: "fear", Score: 0.5},
		),
	}

	label, _, ok := TopForDay(dreams, now)
	require.True(t, ok)
	assert.Equal(t, "joy", label)
}

func TestTopForDayEmptyMoodLists(t *testing.T) {
	now := time.Now()

	dreams := []model.Dream{
		dreamAt(now),
		dreamAt(now),
	}

	_, _, ok := TopForDay(dreams, now)
	assert.False(t, ok)
}

func TestAggregateSumsToOne(t *testing.T) {
	now := time.Now()

	dreams := []model.Dream{
		dreamAt(now,
			model.MoodScore{Label: "joy", Score: 0.8},
			model.MoodScore{Label: "sadness", Score: 0.15},
		),
		dreamAt(now.AddDate(0, 0, -2),
			model.MoodScore{Label: "fear", Score: 0.33},
		),
		dreamAt(now.AddDate(0, 0, -6),
			model.MoodScore{Label: "joy", Score: 0.5},
		),
	}

	out := Aggregate(dreams, 7, now)
	require.NotEmpty(t, out)

	var sum float64
	for _, v := range out {
		sum += v
	}

	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestAggregateWindowExcludesOlderDreams(t *testing.T) {
	now := time.Now()

	dreams := []model.Dream{
		dreamAt(now, model.MoodScore{Label: "joy", Score: 0.5}),
		// One day outside a 7-day trailing window
		dreamAt(now.AddDate(0, 0, -7), model.MoodScore{Label: "anger", Score: 0.9}),
	}

	out := Aggregate(dreams, 7, now)

	assert.Contains(t, out, "joy")
	assert.NotContains(t, out, "anger")
}

func TestAggregateEmptyInput(t *testing.T) {
	out := Aggregate(nil, 7, time.Now())
	assert.Empty(t, out)
}

func TestAggregateNonPositiveDays(t *testing.T) {
	now := time.Now()

	dreams := []model.Dream{
		dreamAt(now, model.MoodScore{Label: "joy", Score: 0.5}),
	}

	assert.Empty(t, Aggregate(dreams, 0, now))
	assert.Empty(t, Aggregate(dreams, -3, now))
}

func TestPercentTruncates(t *testing.T) {
	assert.Equal(t, 33.3, Percent(1.0/3.0))
	assert.Equal(t, 50.0, Percent(0.5))
	assert.Equal(t, 99.9, Percent(0.99999))
}
