package progress

import (
	"testing"
	"time"

	"github.com/julianstephens/habitburn/internal/cli"
	"github.com/julianstephens/habitburn/internal/config"
	"github.com/julianstephens/habitburn/internal/storage"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	cfg := config.Default()
	cfg.Calendar.Timezone = "UTC"
	now := time.Date(2025, time.December, 31, 15, 0, 0, 0, time.UTC)
	return &cli.Context{Store: store, Config: cfg, Clock: func() time.Time { return now }}
}

func TestStatsCmd(t *testing.T) {
	ctx := setupTestContext(t)
	tr, err := ctx.Tracker()
	if err != nil {
		t.Fatal(err)
	}
	tr.LoadSampleData()
	for _, h := range tr.Habits()[:2] {
		tr.ToggleCompletion(h.ID)
	}

	if err := (&StatsCmd{}).Run(ctx); err != nil {
		t.Errorf("stats failed: %v", err)
	}
}

func TestAchievementsCmd(t *testing.T) {
	tests := []struct {
		name string
		cmd  AchievementsCmd
	}{
		{"all", AchievementsCmd{}},
		{"unlocked", AchievementsCmd{Unlocked: true}},
		{"recent", AchievementsCmd{Recent: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestContext(t)
			tr, err := ctx.Tracker()
			if err != nil {
				t.Fatal(err)
			}
			tr.AddHabit(tr.NewHabit("Read"))
			if err := tt.cmd.Run(ctx); err != nil {
				t.Errorf("achievements failed: %v", err)
			}
		})
	}
}

func TestAchievementsCmd_Empty(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&AchievementsCmd{Unlocked: true}).Run(ctx); err != nil {
		t.Errorf("achievements failed: %v", err)
	}
}
