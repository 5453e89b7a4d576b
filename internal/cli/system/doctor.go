package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitburn/internal/achievements"
	"github.com/julianstephens/habitburn/internal/cli"
	"github.com/julianstephens/habitburn/internal/constants"
	"github.com/julianstephens/habitburn/internal/models"
	"github.com/julianstephens/habitburn/internal/reminder"
	"github.com/julianstephens/habitburn/internal/storage"
	"github.com/julianstephens/habitburn/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when storage is unreachable.
	needsDB bool
	// warnOnly checks never fail the run.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Records decodable", needsDB: true, run: checkRecordsDecodable},
	{name: "Habit integrity", needsDB: true, run: checkHabitsIntegrity},
	{name: "Achievement catalog", needsDB: true, warnOnly: true, run: checkAchievementCatalog},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true
	for i, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if i == 0 {
				dbReachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if sqlStore, ok := ctx.Store.(storage.SQLProvider); ok {
		db := sqlStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqlStore, ok := ctx.Store.(storage.SQLProvider)
	if !ok {
		// File and memory stores have no schema
		return nil
	}
	current, latest, err := sqlStore.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkRecordsDecodable reports records that would silently fall back to defaults on load.
func checkRecordsDecodable(ctx *cli.Context) error {
	targets := map[string]any{
		constants.RecordHabits:              &[]models.Habit{},
		constants.RecordUser:                &models.User{},
		constants.RecordSettings:            &models.AppSettings{},
		constants.RecordOnboardingCompleted: new(bool),
		constants.RecordAchievements:        &achievements.Record{},
		constants.RecordReminders:           &[]reminder.Entry{},
	}

	var bad []string
	for key, target := range targets {
		data, err := ctx.Store.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := json.Unmarshal(data, target); err != nil {
			bad = append(bad, fmt.Sprintf("%s (%v)", key, err))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("undecodable records will be reset to defaults: %v", bad)
	}
	return nil
}

func checkHabitsIntegrity(ctx *cli.Context) error {
	data, err := ctx.Store.Get(constants.RecordHabits)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var habits []models.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		// Reported by checkRecordsDecodable
		return nil
	}

	if len(habits) > constants.MaxHabits {
		return fmt.Errorf("found %d habits, more than the limit of %d", len(habits), constants.MaxHabits)
	}
	seen := make(map[string]bool)
	for _, h := range habits {
		if seen[h.ID] {
			return fmt.Errorf("duplicate habit ID found: %s", h.ID)
		}
		seen[h.ID] = true
		if err := h.Validate(); err != nil {
			return fmt.Errorf("habit %s: %w", h.ID, err)
		}
	}
	return nil
}

func checkAchievementCatalog(ctx *cli.Context) error {
	data, err := ctx.Store.Get(constants.RecordAchievements)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no achievements saved yet; the catalog is created on first use")
	}
	if err != nil {
		return err
	}
	var rec achievements.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil
	}
	if rec.CatalogVersion < constants.AchievementCatalogVersion {
		return fmt.Errorf("catalog version %d is older than %d and will be upgraded on next load", rec.CatalogVersion, constants.AchievementCatalogVersion)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, ok := ctx.BackupManager()
	if !ok {
		return nil
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitburn backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if !utils.ValidateTimezone(ctx.Config.Calendar.Timezone) {
		return fmt.Errorf("invalid timezone %q", ctx.Config.Calendar.Timezone)
	}
	return nil
}
