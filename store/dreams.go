package store

import (
	"context"
	"fmt"
	"time"

	"dreamcatcher/dream-api/model"
)

// dayBounds returns the unix millisecond range [start, end) of the
// calendar day containing t, in t's location
func dayBounds(t time.Time) (int64, int64) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1)

	return start.UnixMilli(), end.UnixMilli()
}

func (s *Store) InsertDream(ctx context.Context, d *model.Dream) (uint, error) {
	err := s.db.
		WithContext(ctx).
		Create(d).
		Error
	if err != nil {
		return 0, fmt.Errorf("failed to insert dream, %w", err)
	}

	s.hub.Broadcast(TopicDreams)
	return d.ID, nil
}

func (s *Store) DeleteDream(ctx context.Context, d *model.Dream) error {
	err := s.db.
		WithContext(ctx).
		Delete(d).
		Error
	if err != nil {
		return fmt.Errorf("failed to delete dream, %w", err)
	}

	s.hub.Broadcast(TopicDreams)
	return nil
}

// DreamByID scopes the lookup to the owning user so nobody can read
// or delete somebody else's dream by guessing ids
func (s *Store) DreamByID(ctx context.Context, userID, id uint) (*model.Dream, error) {
	var dream model.Dream

	err := s.db.
		WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&dream).
		Error
	if err != nil {
		return nil, err
	}

	return &dream, nil
}

func (s *Store) DreamsByUserID(ctx context.Context, userID uint) ([]model.Dream, error) {
	var dreams []model.Dream

	err := s.db.
		WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&dreams).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list dreams, %w", err)
	}

	return dreams, nil
}

// DreamsByUserAndDate filters a user's dreams to those created on the
// calendar day containing day
func (s *Store) DreamsByUserAndDate(ctx context.Context, userID uint, day time.Time) ([]model.Dream, error) {
	start, end := dayBounds(day)

	var dreams []model.Dream

	err := s.db.
		WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Order("created_at ASC").
		Find(&dreams).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list dreams by date, %w", err)
	}

	return dreams, nil
}

// DreamsByDate searches across all users, on purpose. The date search
// is a shared lookup, not a per-user one
func (s *Store) DreamsByDate(ctx context.Context, day time.Time) ([]model.Dream, error) {
	start, end := dayBounds(day)

	var dreams []model.Dream

	err := s.db.
		WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&dreams).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to search dreams by date, %w", err)
	}

	return dreams, nil
}

// WatchDreams is the live form of DreamsByUserID: the current
// snapshot plus a channel that fires on any dream table change
func (s *Store) WatchDreams(ctx context.Context, userID uint) ([]model.Dream, <-chan struct{}, func(), error) {
	updates, cancel := s.hub.Subscribe(TopicDreams)

	dreams, err := s.DreamsByUserID(ctx, userID)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}

	return dreams, updates, cancel, nil
}
