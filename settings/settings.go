// Package settings is the durable preference store. Values live in
// the settings table, one key per row, and defaults are supplied on
// read so nothing is ever written eagerly
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"dreamcatcher/dream-api/model"
	"dreamcatcher/dream-api/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	keyDarkMode       = "dark_mode"
	keyHomeCards      = "home_screen_settings"
	keyLoggedIn       = "is_logged_in"
	keyUserID         = "user_id"
	keyReminderHour   = "reminder_hour"
	keyReminderMinute = "reminder_minute"
)

const (
	defaultReminderHour   = 9
	defaultReminderMinute = 0
)

var (
	ErrInvalidReminderTime = errors.New("reminder time out of range")
)

type Store struct {
	db  *gorm.DB
	hub *store.Hub
}

func New(db *gorm.DB, hub *store.Hub) *Store {
	return &Store{
		db:  db,
		hub: hub,
	}
}

// DefaultHomeCards is the fallback home screen card visibility map,
// used when nothing was stored yet or the stored payload is corrupt
func DefaultHomeCards() map[string]bool {
	return map[string]bool{
		"Show Today's Dream":     true,
		"Show Log Dream":         true,
		"Show Dream Calendar":    true,
		"Show Nearby Therapists": true,
		"Show Trend Analysis":    true,
	}
}

// get returns the raw value for a key and whether it was present
func (s *Store) get(ctx context.Context, name string) ([]byte, bool, error) {
	var row model.Setting

	err := s.db.
		WithContext(ctx).
		Where("name = ?", name).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to read setting %s, %w", name, err)
	}

	return row.Value, true, nil
}

func (s *Store) set(ctx context.Context, name string, value []byte) error {
	err := s.db.
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&model.Setting{Name: name, Value: value}).
		Error
	if err != nil {
		return fmt.Errorf("failed to write setting %s, %w", name, err)
	}

	s.hub.Broadcast(store.TopicSettings)
	return nil
}

func (s *Store) getBool(ctx context.Context, name string, def bool) (bool, error) {
	raw, ok, err := s.get(ctx, name)
	if err != nil {
		return def, err
	}

	if !ok {
		return def, nil
	}

	v, err := strconv.ParseBool(string(raw))
	if err != nil {
		return def, nil
	}

	return v, nil
}

func (s *Store) getInt(ctx context.Context, name string, def int) (int, error) {
	raw, ok, err := s.get(ctx, name)
	if err != nil {
		return def, err
	}

	if !ok {
		return def, nil
	}

	v, err := strconv.Atoi(string(raw))
	if err != nil {
		return def, nil
	}

	return v, nil
}

func (s *Store) DarkMode(ctx context.Context) (bool, error) {
	return s.getBool(ctx, keyDarkMode, false)
}

func (s *Store) SetDarkMode(ctx context.Context, enabled bool) error {
	return s.set(ctx, keyDarkMode, []byte(strconv.FormatBool(enabled)))
}

// HomeCards returns the home screen card visibility map. A corrupt or
// incompatible stored payload falls back to the default map instead
// of surfacing an error to the caller
func (s *Store) HomeCards(ctx context.Context) (map[string]bool, error) {
	raw, ok, err := s.get(ctx, keyHomeCards)
	if err != nil {
		return nil, err
	}

	if !ok {
		return DefaultHomeCards(), nil
	}

	var cards map[string]bool
	if err := json.Unmarshal(raw, &cards); err != nil || cards == nil {
		zap.L().Warn("Stored home screen settings are corrupt, falling back to defaults", zap.Error(err))
		return DefaultHomeCards(), nil
	}

	return cards, nil
}

func (s *Store) SetHomeCards(ctx context.Context, cards map[string]bool) error {
	raw, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("failed to serialize home screen settings, %w", err)
	}

	return s.set(ctx, keyHomeCards, raw)
}

// LoginState returns whether a user session is active and for whom.
// The user id is only meaningful when the first value is true
func (s *Store) LoginState(ctx context.Context) (bool, uint, error) {
	loggedIn, err := s.getBool(ctx, keyLoggedIn, false)
	if err != nil {
		return false, 0, err
	}

	if !loggedIn {
		return false, 0, nil
	}

	id, err := s.getInt(ctx, keyUserID, 0)
	if err != nil {
		return false, 0, err
	}

	return true, uint(id), nil
}

func (s *Store) SetLoginState(ctx context.Context, loggedIn bool, userID uint) error {
	if err := s.set(ctx, keyLoggedIn, []byte(strconv.FormatBool(loggedIn))); err != nil {
		return err
	}

	if !loggedIn {
		userID = 0
	}

	return s.set(ctx, keyUserID, []byte(strconv.Itoa(int(userID))))
}

func (s *Store) ReminderTime(ctx context.Context) (hour, minute int, err error) {
	hour, err = s.getInt(ctx, keyReminderHour, defaultReminderHour)
	if err != nil {
		return 0, 0, err
	}

	minute, err = s.getInt(ctx, keyReminderMinute, defaultReminderMinute)
	if err != nil {
		return 0, 0, err
	}

	return hour, minute, nil
}

func (s *Store) SetReminderTime(ctx context.Context, hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ErrInvalidReminderTime
	}

	if err := s.set(ctx, keyReminderHour, []byte(strconv.Itoa(hour))); err != nil {
		return err
	}

	return s.set(ctx, keyReminderMinute, []byte(strconv.Itoa(minute)))
}

// Watch fires whenever any setting changes
func (s *Store) Watch() (<-chan struct{}, func()) {
	return s.hub.Subscribe(store.TopicSettings)
}
