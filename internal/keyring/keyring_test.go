package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/habitburn?sslmode=disable"
	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteConnectionString() on empty keyring error = %v, want %v", err, ErrNotFound)
	}
}

func TestResolveDSN(t *testing.T) {
	gokeyring.MockInit()

	got, err := ResolveDSN("/tmp/habitburn.db")
	if err != nil || got != "/tmp/habitburn.db" {
		t.Errorf("ResolveDSN(path) = %q, %v; want path unchanged", got, err)
	}

	if _, err := ResolveDSN(DSNKeyword); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResolveDSN(keyring) with empty keyring error = %v, want %v", err, ErrNotFound)
	}

	stored := "postgres://me@db.local/habitburn"
	if err := SetConnectionString(stored); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	got, err = ResolveDSN(DSNKeyword)
	if err != nil {
		t.Fatalf("ResolveDSN(keyring) failed: %v", err)
	}
	if got != stored {
		t.Errorf("ResolveDSN(keyring) = %q, want %q", got, stored)
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("Expected mock keyring to report available")
	}
}
