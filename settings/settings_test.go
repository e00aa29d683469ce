package settings

import (
	"context"
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

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.Setting{}))

	return New(db, store.NewHub()), db
}

func TestDarkModeDefaultsFalse(t *testing.T) {
	s, _ := newTestStore(t)

	v, err := s.DarkMode(context.Background())
	require.NoError(t, err)
	assert.False(t, v)
}

func TestDarkModeRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetDarkMode(ctx, true))

	v, err := s.DarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestHomeCardsDefaultWithoutWrite(t *testing.T) {
	s, _ := newTestStore(t)

	cards, err := s.HomeCards(context.Background())
	require.NoError(t, err)

	require.Len(t, cards, 5)
	for label, shown := range cards {
		assert.True(t, shown, "default for %q should be true", label)
	}
}

func TestHomeCardsRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	in := DefaultHomeCards()
	in["Show Nearby Therapists"] = false

	require.NoError(t, s.SetHomeCards(ctx, in))

	out, err := s.HomeCards(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestHomeCardsCorruptPayloadFallsBack(t *testing.T) {
	s, db := newTestStore(t)

	// Corrupt the stored payload behind the store's back
	require.NoError(t, db.Create(&model.Setting{
		Name:  "home_screen_settings",
		Value: []byte("{not even close to json"),
	}).Error)

	cards, err := s.HomeCards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultHomeCards(), cards)
}

func TestLoginStateDefaultsLoggedOut(t *testing.T) {
	s, _ := newTestStore(t)

	loggedIn, userID, err := s.LoginState(context.Background())
	require.NoError(t, err)
	assert.False(t, loggedIn)
	assert.Zero(t, userID)
}

func TestLoginStateRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetLoginState(ctx, true, 42))

	loggedIn, userID, err := s.LoginState(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)
	assert.Equal(t, uint(42), userID)

	require.NoError(t, s.SetLoginState(ctx, false, 42))

	loggedIn, userID, err = s.LoginState(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)
	assert.Zero(t, userID)
}

func TestReminderTimeDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	hour, minute, err := s.ReminderTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, hour)
	assert.Equal(t, 0, minute)
}

func TestReminderTimeRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetReminderTime(ctx, 22, 30))

	hour, minute, err := s.ReminderTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, 22, hour)
	assert.Equal(t, 30, minute)
}

func TestReminderTimeRejectsOutOfRange(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.SetReminderTime(ctx, 24, 0), ErrInvalidReminderTime)
	assert.ErrorIs(t, s.SetReminderTime(ctx, -1, 0), ErrInvalidReminderTime)
	assert.ErrorIs(t, s.SetReminderTime(ctx, 9, 60), ErrInvalidReminderTime)
}

func TestWatchFiresOnWrite(t *testing.T) {
	s, _ := newTestStore(t)

	updates, cancel := s.Watch()
	defer cancel()

	require.NoError(t, s.SetDarkMode(context.Background(), true))

	select {
	case <-updates:
	default:
		t.Fatal("expected a settings change notification")
	}
}
