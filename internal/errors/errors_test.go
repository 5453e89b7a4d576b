package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/julianstephens/habitburn/internal/keyring"
	"github.com/julianstephens/habitburn/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("something went wrong"), "Error: something went wrong"},
		{"wrapped error", fmt.Errorf("load habits: %w", storage.ErrNotFound), "Error: load habits: record not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("habit %q not found", "Read")
	if want := `Error: habit "Read" not found`; got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		hasHint bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"not loaded", fmt.Errorf("get habits: %w", storage.ErrNotLoaded), true},
		{"keyring missing", keyring.ErrNotFound, true},
		{"keyring unavailable", fmt.Errorf("%w: dbus", keyring.ErrKeyringUnavailable), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hint(tt.err); (got != "") != tt.hasHint {
				t.Errorf("Hint(%v) = %q, hasHint want %v", tt.err, got, tt.hasHint)
			}
		})
	}
}
