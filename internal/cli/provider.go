package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitburn/internal/keyring"
	"github.com/julianstephens/habitburn/internal/storage"
	"github.com/julianstephens/habitburn/internal/storage/postgres"
	"github.com/julianstephens/habitburn/internal/storage/sqlite"
)

// OpenProvider picks a storage backend for dsn: "keyring" resolves to the
// stored PostgreSQL connection string, postgres:// URLs use PostgreSQL,
// .json paths the JSON file store and anything else SQLite.
func OpenProvider(dsn string) (storage.Provider, error) {
	resolved, err := keyring.ResolveDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve connection string from keyring: %w", err)
	}
	fromKeyring := dsn == keyring.DSNKeyword

	switch {
	case postgres.IsConnString(resolved) || strings.Contains(resolved, "host="):
		if _, err := postgres.ValidateConnString(resolved); err != nil {
			// The keyring is encrypted, so a password kept there is acceptable.
			if !(fromKeyring && errors.Is(err, postgres.ErrEmbeddedCredentials)) {
				return nil, err
			}
		}
		return postgres.New(resolved), nil
	case strings.HasSuffix(strings.ToLower(resolved), ".json"):
		return storage.NewJSONStore(resolved), nil
	default:
		return sqlite.NewStore(resolved), nil
	}
}
