package models

import (
	"time"

	"github.com/julianstephens/habitburn/internal/constants"
)

type User struct {
	Name                 string    `json:"name"`
	CreatedAt            time.Time `json:"created_at"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	OnboardingCompleted  bool      `json:"onboarding_completed"`
}

func NewUser(name string, now time.Time) User {
	return User{
		Name:                 name,
		CreatedAt:            now,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
	}
}

// AppSettings represents application-wide settings
type AppSettings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"`   // whether habit reminders are delivered
	ReminderTime         string `json:"reminder_time,omitempty"` // default reminder for new habits, HH:MM
	Theme                string `json:"theme"`                   // theme tag, e.g. "fire"
}

func DefaultAppSettings() AppSettings {
	return AppSettings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		Theme:                constants.DefaultTheme,
	}
}
