package service

import (
	"context"
	"fmt"
	"sync"

	"dreamcatcher/dream-api/settings"
	"dreamcatcher/dream-api/store"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Reminder fires a daily "record your dream" event at the time kept
// in the settings store and re-schedules itself when that setting
// changes. The event is just a log line plus a hub broadcast, a push
// gateway would subscribe there
type Reminder struct {
	cron     *cron.Cron
	settings *settings.Store
	hub      *store.Hub

	mu    sync.Mutex
	entry cron.EntryID
	stop  func()
}

func NewReminder(st *settings.Store, hub *store.Hub) *Reminder {
	return &Reminder{
		cron:     cron.New(),
		settings: st,
		hub:      hub,
	}
}

func (r *Reminder) Start() error {
	if err := r.schedule(); err != nil {
		return err
	}

	r.cron.Start()

	updates, cancel := r.settings.Watch()
	r.stop = cancel

	go func() {
		for range updates {
			if err := r.schedule(); err != nil {
				zap.L().Error("Failed to re-schedule dream reminder", zap.Error(err))
			}
		}
	}()

	zap.L().Debug("Dream reminder attached")
	return nil
}

func (r *Reminder) schedule() error {
	hour, minute, err := r.settings.ReminderTime(context.Background())
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entry != 0 {
		r.cron.Remove(r.entry)
	}

	spec := fmt.Sprintf("%d %d * * *", minute, hour)

	entry, err := r.cron.AddFunc(spec, func() {
		zap.L().Info("Dream reminder due", zap.Int("hour", hour), zap.Int("minute", minute))
		r.hub.Broadcast(store.TopicReminder)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder, %w", err)
	}

	r.entry = entry
	return nil
}

func (r *Reminder) Stop() {
	if r.stop != nil {
		r.stop()
	}

	r.cron.Stop()
}
