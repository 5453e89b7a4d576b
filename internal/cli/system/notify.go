package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitburn/internal/cli"
	"github.com/julianstephens/habitburn/internal/constants"
	"github.com/julianstephens/habitburn/internal/notifier"
	"github.com/julianstephens/habitburn/internal/reminder"
)

// NotifyCmd sends the reminders due this minute. It is meant to run from
// cron or a systemd timer once a minute.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`

	sender reminder.Sender
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if !t.Settings().NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	reminders, err := ctx.Reminders()
	if err != nil {
		return err
	}
	now := ctx.Now()

	if c.DryRun {
		due := reminders.Due(now)
		if len(due) == 0 {
			fmt.Println("No reminders due.")
		}
		for _, e := range due {
			fmt.Printf("[DryRun] "+constants.ReminderTitleFormat+": %s\n", e.Title, constants.ReminderBody)
		}
		return nil
	}

	sender := c.sender
	if sender == nil {
		sender = notifier.New()
	}
	if _, err := reminders.Dispatch(context.Background(), now, sender); err != nil {
		return fmt.Errorf("failed to dispatch reminders: %w", err)
	}
	return nil
}
