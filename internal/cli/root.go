package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitburn/internal/backup"
	"github.com/julianstephens/habitburn/internal/config"
	"github.com/julianstephens/habitburn/internal/logger"
	"github.com/julianstephens/habitburn/internal/reminder"
	"github.com/julianstephens/habitburn/internal/storage"
	"github.com/julianstephens/habitburn/internal/storage/sqlite"
	"github.com/julianstephens/habitburn/internal/tracker"
)

type Context struct {
	Store      storage.Provider
	Config     config.Config
	ConfigPath string
	// Clock defaults to time.Now. Tests pin it.
	Clock func() time.Time

	reminders *reminder.Service
	tracker   *tracker.Tracker
}

// Now returns the current time in the configured timezone.
func (c *Context) Now() time.Time {
	clock := c.Clock
	if clock == nil {
		clock = time.Now
	}
	return clock().In(c.Config.Location())
}

// Reminders loads the store and the persisted reminder schedule once.
func (c *Context) Reminders() (*reminder.Service, error) {
	if c.reminders != nil {
		return c.reminders, nil
	}
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	svc := reminder.NewService(c.Store, c.Config.Location())
	if err := svc.Load(); err != nil {
		return nil, err
	}
	c.reminders = svc
	return svc, nil
}

// Tracker returns the loaded tracker, building it on first use. Building it
// also rebuilds the reminder schedule from the loaded habits.
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	reminders, err := c.Reminders()
	if err != nil {
		return nil, err
	}
	t := tracker.New(c.Store, reminders,
		tracker.WithClock(c.Now),
		tracker.WithWeekStart(c.Config.WeekStart()),
		tracker.WithBeforeReset(c.PerformAutomaticBackup),
	)
	if err := t.Load(); err != nil {
		return nil, fmt.Errorf("failed to load habit data: %w", err)
	}
	t.SyncReminders()
	c.tracker = t
	return t, nil
}

// BackupManager returns a backup manager for file-backed sqlite storage.
func (c *Context) BackupManager() (*backup.Manager, bool) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, false
	}
	return backup.NewManager(c.Store.GetConfigPath()), true
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, ok := c.BackupManager()
	if !ok {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
