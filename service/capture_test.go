package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"dreamcatcher/dream-api/model"
	"dreamcatcher/dream-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Fakes instead of a mock framework, so the tests read top to bottom

type fakeClassifier struct {
	scores model.MoodScores
	err    error
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (model.MoodScores, error) {
	return f.scores, f.err
}

type fakeResolver struct {
	err error
}

func (f *fakeResolver) Resolve(ctx context.Context, ref string) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	return ref, nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.User{}, model.Dream{}, model.Setting{}))

	return store.New(db)
}

func defaultScores() model.MoodScores {
	return model.MoodScores{
		{Label: "joy", Score: 0.52},
		{Label: "surprise", Score: 0.21},
		{Label: "fear", Score: 0.12},
		{Label: "sadness", Score: 0.08},
		{Label: "anger", Score: 0.04},
		{Label: "disgust", Score: 0.03},
	}
}

func TestSaveDreamHappyPath(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &model.User{Email: "a@b.com", PasswordHash: "x"}
	_, err := s.InsertUser(ctx, u)
	require.NoError(t, err)

	capture := NewCapture(s, &fakeClassifier{scores: defaultScores()}, &fakeResolver{})

	dream, top, err := capture.SaveDream(ctx, u.ID, "", "I flew over mountains", "/data/local.jpg")
	require.NoError(t, err)

	assert.Equal(t, "I flew over mountains", dream.Content)
	assert.Equal(t, "/data/local.jpg", dream.ImageRef)
	assert.Equal(t, "Generated Dream", dream.Title)
	assert.NotZero(t, dream.CreatedAt)

	// Top moods are capped at 4 and rescaled to 0-100
	require.Len(t, top, 4)
	assert.Equal(t, TopMood{Label: "joy", Score: 52}, top[0])
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Score, top[i].Score)
	}

	// Exactly one row was written, carrying the full mood list
	stored, err := s.DreamsByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Len(t, stored[0].Mood, 6)
	for i := 1; i < len(stored[0].Mood); i++ {
		assert.GreaterOrEqual(t, stored[0].Mood[i-1].Score, stored[0].Mood[i].Score)
	}

	assert.Equal(t, []string{"/data/local.jpg"}, capture.SessionImages())
}

func TestSaveDreamEmptyText(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &model.User{Email: "a@b.com", PasswordHash: "x"}
	_, err := s.InsertUser(ctx, u)
	require.NoError(t, err)

	capture := NewCapture(s, &fakeClassifier{scores: defaultScores()}, &fakeResolver{})

	_, _, err = capture.SaveDream(ctx, u.ID, "", "", "/data/local.jpg")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.ErrorIs(t, err, ErrEmptyText)

	stored, err := s.DreamsByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSaveDreamUnknownUser(t *testing.T) {
	s := newTestStore(t)

	capture := NewCapture(s, &fakeClassifier{scores: defaultScores()}, &fakeResolver{})

	_, _, err := capture.SaveDream(context.Background(), 999, "", "some dream", "/data/local.jpg")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestSaveDreamClassifierFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &model.User{Email: "a@b.com", PasswordHash: "x"}
	_, err := s.InsertUser(ctx, u)
	require.NoError(t, err)

	capture := NewCapture(s, &fakeClassifier{err: errors.New("inference down")}, &fakeResolver{})

	_, _, err = capture.SaveDream(ctx, u.ID, "", "some dream", "/data/local.jpg")
	require.Error(t, err)
	assert.False(t, IsValidation(err))

	var fe *FlowError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StageClassify, fe.Stage)

	stored, err := s.DreamsByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSaveDreamImageFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &model.User{Email: "a@b.com", PasswordHash: "x"}
	_, err := s.InsertUser(ctx, u)
	require.NoError(t, err)

	capture := NewCapture(s, &fakeClassifier{scores: defaultScores()}, &fakeResolver{err: errors.New("download failed")})

	_, _, err = capture.SaveDream(ctx, u.ID, "", "some dream", "https://cdn.example.com/img.png")
	require.Error(t, err)

	var fe *FlowError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, StageImage, fe.Stage)

	stored, err := s.DreamsByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSessionImagesReset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &model.User{Email: "a@b.com", PasswordHash: "x"}
	_, err := s.InsertUser(ctx, u)
	require.NoError(t, err)

	capture := NewCapture(s, &fakeClassifier{scores: defaultScores()}, &fakeResolver{})

	_, _, err = capture.SaveDream(ctx, u.ID, "", "first", "/data/a.jpg")
	require.NoError(t, err)
	_, _, err = capture.SaveDream(ctx, u.ID, "", "second", "/data/b.jpg")
	require.NoError(t, err)

	assert.Len(t, capture.SessionImages(), 2)

	capture.Reset()
	assert.Empty(t, capture.SessionImages())
}
