package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitburn/internal/cli"
	"github.com/julianstephens/habitburn/internal/config"
	"github.com/julianstephens/habitburn/internal/storage"
	"github.com/julianstephens/habitburn/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy records from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	isFile := !postgres.IsConnString(dbPath) && dbPath != "postgresql"

	if c.Force && isFile {
		if c.Source != "" {
			absDB, _ := filepath.Abs(dbPath)
			absSource, _ := filepath.Abs(c.Source)
			if absDB == absSource {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habitburn storage at: %s\n", dbPath)

	if ctx.ConfigPath != "" {
		if err := writeDefaultConfig(ctx); err != nil {
			return err
		}
	}

	if c.Source != "" {
		fmt.Printf("Copying records from: %s\n", c.Source)
		n, err := copyRecords(c.Source, ctx.Store)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("Copied %d records.\n", n)
	}
	return nil
}

// writeDefaultConfig saves the active configuration if no config file exists yet.
func writeDefaultConfig(ctx *cli.Context) error {
	path := config.ExpandHome(ctx.ConfigPath)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access config file: %w", err)
	}
	if err := config.Save(path, ctx.Config); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	fmt.Printf("Wrote config file: %s\n", path)
	return nil
}

// copyRecords copies every record from the store named by source into dst.
// Records are opaque JSON, so this works between any two backends.
func copyRecords(source string, dst storage.Provider) (int, error) {
	src, err := cli.OpenProvider(source)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source records: %w", err)
	}
	for _, key := range keys {
		value, err := src.Get(key)
		if err != nil {
			return 0, fmt.Errorf("failed to read record %s: %w", key, err)
		}
		if err := dst.Set(key, value); err != nil {
			return 0, fmt.Errorf("failed to write record %s: %w", key, err)
		}
		fmt.Printf("  Copied %s\n", key)
	}
	return len(keys), nil
}
