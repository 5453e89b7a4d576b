package backups

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitburn/internal/cli"
	"github.com/julianstephens/habitburn/internal/config"
	"github.com/julianstephens/habitburn/internal/constants"
	"github.com/julianstephens/habitburn/internal/storage"
	"github.com/julianstephens/habitburn/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *sqlite.Store, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitburn.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	ctx := &cli.Context{Store: store, Config: config.Default()}
	return ctx, store, func() { store.Close() }
}

func TestBackupCreateListRestore(t *testing.T) {
	ctx, store, cleanup := setupTestDB(t)
	defer cleanup()

	if err := store.Set(constants.RecordHabits, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}

	mgr, _ := ctx.BackupManager()
	list, err := mgr.List()
	if err != nil || len(list) != 1 {
		t.Fatalf("Expected one backup, got %d (%v)", len(list), err)
	}

	if err := store.Set(constants.RecordHabits, []byte(`[{"id":"x"}]`)); err != nil {
		t.Fatal(err)
	}
	restore := &BackupRestoreCmd{BackupFile: filepath.Base(list[0].Path), Yes: true}
	if err := restore.Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}

	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(constants.RecordHabits)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[]` {
		t.Errorf("Expected restored habits [], got %s", got)
	}
}

func TestBackup_UnsupportedStore(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := &cli.Context{Store: store}
	if err := (&BackupCreateCmd{}).Run(ctx); !errors.Is(err, errNoBackups) {
		t.Errorf("Expected errNoBackups, got %v", err)
	}
}

func TestResolveBackupPath_Missing(t *testing.T) {
	if _, err := resolveBackupPath("nope.db", t.TempDir()); err == nil {
		t.Error("Expected error for missing backup")
	}
}
