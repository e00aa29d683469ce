// Package store wraps the database behind the operations the rest of
// the app needs. Reads that feed the UI are available as live queries:
// a current snapshot plus a change-notification channel from the Hub
package store

import (
	"gorm.io/gorm"
)

type Store struct {
	db  *gorm.DB
	hub *Hub
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:  db,
		hub: NewHub(),
	}
}

// Hub exposes the notification hub so other components (settings
// store, reminder scheduler) can share it
func (s *Store) Hub() *Hub {
	return s.hub
}

// DB exposes the raw handle. Only the settings store uses it, for its
// own table
func (s *Store) DB() *gorm.DB {
	return s.db
}
