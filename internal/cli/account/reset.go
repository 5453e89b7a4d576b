package account

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/habitburn/internal/cli"
)

type ResetCmd struct {
	Stats ResetStatsCmd `cmd:"" help:"Clear every habit's completion history."`
	All   ResetAllCmd   `cmd:"" help:"Delete habits, profile and settings. Unlocked achievements are kept."`
}

type ResetStatsCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ResetStatsCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if !c.Yes && !confirm(os.Stdin, "This clears all completion history. Experience and goals are kept.") {
		fmt.Println("Reset cancelled.")
		return nil
	}
	t.ResetStats()
	fmt.Println("✓ Completion history cleared.")
	return nil
}

type ResetAllCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ResetAllCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if !c.Yes && !confirm(os.Stdin, "⚠️  This deletes all habits, your profile and settings. A backup is created first when possible.") {
		fmt.Println("Reset cancelled.")
		return nil
	}
	t.ResetAllData()
	fmt.Println("✓ All data reset.")
	return nil
}

func confirm(in io.Reader, warning string) bool {
	fmt.Println(warning)
	fmt.Print("Continue? [y/N]: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
