package settings

import (
	"fmt"

	"github.com/julianstephens/habitburn/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Notifications *bool   `help:"Enable or disable habit reminders."`
	Reminder      *string `help:"Default reminder time for new habits (HH:MM); empty clears it."`
	Theme         *string `help:"Color theme."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if c.List {
		s := t.Settings()
		reminder := s.ReminderTime
		if reminder == "" {
			reminder = "(none)"
		}
		fmt.Println("Current Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", s.NotificationsEnabled)
		fmt.Printf("  Default Reminder:      %s\n", reminder)
		fmt.Printf("  Theme:                 %s\n", s.Theme)
		fmt.Println("\nCalendar:")
		fmt.Printf("  Timezone:              %s\n", ctx.Config.Location())
		fmt.Printf("  Week Start:            %s\n", t.WeekStart())
		return nil
	}

	updated := false
	if c.Notifications != nil {
		t.UpdateNotificationSettings(*c.Notifications)
		updated = true
	}
	if c.Reminder != nil {
		if err := t.SetDefaultReminderTime(*c.Reminder); err != nil {
			return err
		}
		updated = true
	}
	if c.Theme != nil {
		if err := t.SetTheme(*c.Theme); err != nil {
			return err
		}
		updated = true
	}

	if updated {
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}
