package account

import (
	"fmt"

	"github.com/julianstephens/habitburn/internal/cli"
	"github.com/julianstephens/habitburn/internal/constants"
)

type SeedCmd struct{}

func (c *SeedCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	n := t.LoadSampleData()
	if n == 0 {
		return fmt.Errorf("habit limit reached: at most %d habits can be tracked", constants.MaxHabits)
	}
	fmt.Printf("Added %d sample habits.\n", n)
	return nil
}
