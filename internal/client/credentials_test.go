package client

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCredentialsSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")

	want := &Credentials{Access: "a", Refresh: "r"}
	if err := SaveCredentials(path, want); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file permissions = %o, want 600", perm)
	}

	got, err := LoadCredentials(path)
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}
	if got.Access != want.Access || got.Refresh != want.Refresh {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestLoadCredentialsMissingFile(t *testing.T) {
	_, err := LoadCredentials(filepath.Join(t.TempDir(), "missing.json"))
	if !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestLoadCredentialsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{{{"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadCredentials(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if os.IsNotExist(err) {
		t.Error("corruption must be distinguishable from absence")
	}
}

func TestRemoveCredentialsToleratesAbsence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	if err := RemoveCredentials(path); err != nil {
		t.Errorf("removing a missing file should succeed, got %v", err)
	}

	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := RemoveCredentials(path); err != nil {
		t.Errorf("RemoveCredentials failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file still present after RemoveCredentials")
	}
}
