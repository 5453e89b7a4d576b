// Package reminder keeps the daily reminder schedule for habits and works out
// which reminders are due. Delivery is handled by a Sender, normally the tray
// notifier.
package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/habitburn/internal/constants"
	"github.com/julianstephens/habitburn/internal/logger"
	"github.com/julianstephens/habitburn/internal/storage"
	"github.com/julianstephens/habitburn/internal/utils"
)

// Scheduler is what the tracker needs from a reminder backend.
type Scheduler interface {
	// Schedule installs or replaces the daily reminder for habitID at HH:MM.
	Schedule(habitID, title, at string) error
	Cancel(habitID string) error
	CancelAll() error
}

// Sender delivers one notification.
type Sender interface {
	Notify(ctx context.Context, title, body string) error
}

type Entry struct {
	HabitID  string `json:"habit_id"`
	Title    string `json:"title"`
	Time     string `json:"time"`                // HH:MM
	LastSent string `json:"last_sent,omitempty"` // day key of the last delivery
}

// Service is a Scheduler persisted under the reminders record.
type Service struct {
	mu      sync.Mutex
	store   storage.Provider
	entries map[string]Entry
	loc     *time.Location
}

func NewService(store storage.Provider, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store:   store,
		entries: make(map[string]Entry),
		loc:     loc,
	}
}

// Load reads the persisted schedule. A missing record is an empty schedule;
// an unreadable one is logged and discarded.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Get(constants.RecordReminders)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read reminders: %w", err)
	}

	var list []Entry
	if err := json.Unmarshal(data, &list); err != nil {
		logger.Warn("Discarding unreadable reminder schedule", "key", constants.RecordReminders, "error", err)
		return nil
	}
	s.entries = make(map[string]Entry, len(list))
	for _, e := range list {
		s.entries[e.HabitID] = e
	}
	return nil
}

func (s *Service) saveLocked() error {
	data, err := json.Marshal(s.listLocked())
	if err != nil {
		return err
	}
	return s.store.Set(constants.RecordReminders, data)
}

func (s *Service) listLocked() []Entry {
	list := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Time != list[j].Time {
			return list[i].Time < list[j].Time
		}
		return list[i].HabitID < list[j].HabitID
	})
	return list
}

func (s *Service) Schedule(habitID, title, at string) error {
	if !utils.ValidateTimeFormat(at) {
		return fmt.Errorf("invalid reminder time format (expected HH:MM): %s", at)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e := Entry{HabitID: habitID, Title: title, Time: at}
	if prev, ok := s.entries[habitID]; ok && prev.Time == at {
		e.LastSent = prev.LastSent
	}
	s.entries[habitID] = e
	return s.saveLocked()
}

func (s *Service) Cancel(habitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[habitID]; !ok {
		return nil
	}
	delete(s.entries, habitID)
	return s.saveLocked()
}

func (s *Service) CancelAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]Entry)
	return s.saveLocked()
}

// Entries returns the schedule ordered by time of day.
func (s *Service) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

// Due returns the reminders whose HH:MM is now's minute and that have not
// been sent today.
func (s *Service) Due(now time.Time) []Entry {
	now = now.In(s.loc)
	minute := now.Format(constants.TimeFormat)
	today := utils.DayKey(now, s.loc)

	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Entry
	for _, e := range s.listLocked() {
		if e.Time == minute && e.LastSent != today {
			due = append(due, e)
		}
	}
	return due
}

func (s *Service) MarkSent(habitID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[habitID]
	if !ok {
		return nil
	}
	e.LastSent = utils.DayKey(now, s.loc)
	s.entries[habitID] = e
	return s.saveLocked()
}

// Dispatch sends every due reminder. A failed send is logged and left unsent
// so the next run in the same minute retries it. It returns the number sent.
func (s *Service) Dispatch(ctx context.Context, now time.Time, sender Sender) (int, error) {
	sent := 0
	for _, e := range s.Due(now) {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		title := fmt.Sprintf(constants.ReminderTitleFormat, e.Title)
		if err := sender.Notify(ctx, title, constants.ReminderBody); err != nil {
			logger.Warn("Failed to deliver reminder", "habit_id", e.HabitID, "error", err)
			continue
		}
		if err := s.MarkSent(e.HabitID, now); err != nil {
			return sent, fmt.Errorf("failed to record reminder delivery: %w", err)
		}
		sent++
	}
	return sent, nil
}
