// Package worker keeps the served calendar feed up to date.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-mmcal/internal/config"
	"github.com/tartampluch/go-mmcal/internal/engine"
	"github.com/zalando/go-keyring"
)

// Publisher receives each freshly generated feed.
type Publisher interface {
	Update(data []byte)
}

// Worker regenerates the feed on a fixed interval and hands it to a Publisher.
type Worker struct {
	Generator *engine.Generator
	Publisher Publisher
	Settings  *config.Settings

	mu         sync.RWMutex
	contacts   []engine.BirthdayEntry
	countToday int
}

// New creates a worker for the given settings.
func New(gen *engine.Generator, pub Publisher, settings *config.Settings) *Worker {
	return &Worker{
		Generator: gen,
		Publisher: pub,
		Settings:  settings,
	}
}

// Interval returns the refresh period. Zero means the feed is built once.
func (w *Worker) Interval() time.Duration {
	if w.Settings.RefreshInterval <= config.DisabledInterval {
		return 0
	}
	return time.Duration(w.Settings.RefreshInterval) * time.Minute
}

// Run syncs once, then on every tick until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	_ = w.Sync(ctx)

	interval := w.Interval()
	if interval == 0 {
		<-ctx.Done()
		log.Info(config.MsgWorkerStop)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-ticker.C:
			_ = w.Sync(ctx)
		}
	}
}

// Sync runs the generator once and publishes the result. On failure the
// previous feed stays in place.
func (w *Worker) Sync(ctx context.Context) error {
	ics, contacts, countToday, err := w.Generator.RunSync(ctx, SyncConfig(w.Settings))
	if err != nil {
		slog.Error(config.MsgSyncFailed,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyError, err,
		)
		return err
	}

	w.mu.Lock()
	w.contacts = contacts
	w.countToday = countToday
	w.mu.Unlock()

	w.Publisher.Update(ics)
	return nil
}

// Contacts returns the contacts found by the last successful sync and the
// number of birthdays falling today.
func (w *Worker) Contacts() ([]engine.BirthdayEntry, int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.contacts, w.countToday
}

// SyncConfig assembles the generator configuration from the settings and the
// password stored in the system keyring.
func SyncConfig(s *config.Settings) engine.SyncConfig {
	cfg := engine.SyncConfig{
		Mode:            s.SourceMode,
		LocalPath:       s.LocalPath,
		WebURL:          s.WebURL,
		WebUser:         s.WebUser,
		ReminderTrigger: s.ReminderTrigger,
		Holidays:        s.IncludeHolidays,
		Anniversaries:   s.IncludeAnniversaries,
	}

	if cfg.Mode == config.SourceModeWeb && cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompWorker)
		}
	}
	return cfg
}

// StorePassword saves the contacts web password for user in the system keyring.
func StorePassword(user, password string) error {
	return keyring.Set(config.KeyringService, user, password)
}
