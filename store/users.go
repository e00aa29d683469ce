package store

import (
	"context"
	"fmt"

	"dreamcatcher/dream-api/model"

	"gorm.io/gorm/clause"
)

// InsertUser writes a user row and returns its id. An insert with an
// id that already exists replaces the row (last write wins)
func (s *Store) InsertUser(ctx context.Context, u *model.User) (uint, error) {
	err := s.db.
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(u).
		Error
	if err != nil {
		return 0, fmt.Errorf("failed to insert user, %w", err)
	}

	s.hub.Broadcast(TopicUsers)
	return u.ID, nil
}

// GetUserByEmail returns gorm.ErrRecordNotFound when no user has the
// given email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := s.db.
		WithContext(ctx).
		Where("email = ?", email).
		First(&user).
		Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User

	err := s.db.
		WithContext(ctx).
		Where("id = ?", id).
		First(&user).
		Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteUser removes a user row. Their dreams go with it through the
// foreign key cascade
func (s *Store) DeleteUser(ctx context.Context, u *model.User) error {
	err := s.db.
		WithContext(ctx).
		Delete(u).
		Error
	if err != nil {
		return fmt.Errorf("failed to delete user, %w", err)
	}

	s.hub.Broadcast(TopicUsers)
	s.hub.Broadcast(TopicDreams)
	return nil
}

func (s *Store) AllUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User

	err := s.db.
		WithContext(ctx).
		Order("id ASC").
		Find(&users).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users, %w", err)
	}

	return users, nil
}

// WatchUsers is the live form of AllUsers: the current snapshot plus
// a channel that fires whenever the user table changes
func (s *Store) WatchUsers(ctx context.Context) ([]model.User, <-chan struct{}, func(), error) {
	updates, cancel := s.hub.Subscribe(TopicUsers)

	users, err := s.AllUsers(ctx)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}

	return users, updates, cancel, nil
}
