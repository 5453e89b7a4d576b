package account

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitburn/internal/cli"
	"github.com/julianstephens/habitburn/internal/constants"
)

type UserCmd struct {
	Show    UserShowCmd    `cmd:"" help:"Show the user profile." default:"1"`
	Name    UserNameCmd    `cmd:"" help:"Set the user name."`
	Onboard UserOnboardCmd `cmd:"" help:"Mark onboarding as completed."`
}

type UserShowCmd struct{}

func (c *UserShowCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	u := t.User()
	name := u.Name
	if name == "" {
		name = "(not set)"
	}
	fmt.Printf("Name:          %s\n", name)
	fmt.Printf("Member since:  %s\n", u.CreatedAt.In(t.Now().Location()).Format(constants.DateFormat))
	fmt.Printf("Notifications: %v\n", u.NotificationsEnabled)
	fmt.Printf("Onboarded:     %v\n", t.OnboardingCompleted())
	return nil
}

type UserNameCmd struct {
	Name string `arg:"" help:"Display name."`
}

func (c *UserNameCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	t.UpdateUserName(c.Name)
	fmt.Printf("Name set to %s\n", t.User().Name)
	return nil
}

type UserOnboardCmd struct{}

func (c *UserOnboardCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	t.CompleteOnboarding()
	fmt.Println("Onboarding completed.")
	return nil
}
