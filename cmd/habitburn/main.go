package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitburn/internal/cli"
	"github.com/julianstephens/habitburn/internal/cli/account"
	"github.com/julianstephens/habitburn/internal/cli/backups"
	"github.com/julianstephens/habitburn/internal/cli/habits"
	"github.com/julianstephens/habitburn/internal/cli/progress"
	"github.com/julianstephens/habitburn/internal/cli/settings"
	"github.com/julianstephens/habitburn/internal/cli/system"
	"github.com/julianstephens/habitburn/internal/config"
	"github.com/julianstephens/habitburn/internal/constants"
	"github.com/julianstephens/habitburn/internal/errors"
	"github.com/julianstephens/habitburn/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to config.toml." type:"string" default:"${config_path}"`
	DSN     string `help:"Storage override: sqlite or .json path, PostgreSQL URL without credentials, or 'keyring'." name:"dsn"`
	Debug   bool   `help:"Log at debug level and mirror logs to stderr."`

	Init         system.InitCmd           `cmd:"" help:"Initialize habitburn storage."`
	Doctor       system.DoctorCmd         `cmd:"" help:"Run health checks and diagnostics."`
	Tui          system.TuiCmd            `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Habit        habits.HabitCmd          `cmd:"" help:"Manage habits and track completions."`
	Stats        progress.StatsCmd        `cmd:"" help:"Show overall statistics."`
	Achievements progress.AchievementsCmd `cmd:"" help:"Show achievements."`
	Settings     settings.SettingsCmd     `cmd:"" help:"Manage application settings."`
	User         account.UserCmd          `cmd:"" help:"Show or update the user profile."`
	Reset        account.ResetCmd         `cmd:"" help:"Reset statistics or all data."`
	Seed         account.SeedCmd          `cmd:"" help:"Load sample habits."`
	Backup       struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Notify  system.NotifyCmd  `cmd:"" hidden:"" help:"Deliver due reminders (run periodically)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, experience levels and achievements"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": config.DefaultPath(),
		},
	)

	configPath := config.ExpandHome(CLI.Config)
	cfg, err := config.Load(configPath)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.DSN != "" {
		cfg.Storage.DSN = config.ExpandHome(CLI.DSN)
	}
	if CLI.Debug {
		cfg.Logging.Debug = true
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Logging.Debug,
		ConfigDir: cfg.Dir(),
		LogDir:    cfg.Logging.Dir,
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	store, err := cli.OpenProvider(cfg.Storage.DSN)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:      store,
		Config:     cfg,
		ConfigPath: configPath,
	}

	logger.Debug("Running command", "command", ctx.Command())
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
