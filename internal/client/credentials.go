package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Credentials is the last-known-good token pair persisted between runs.
// The file is cleartext JSON; the only protection is file permissions.
type Credentials struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// SaveCredentials writes the pair to path, creating the parent directory if
// needed. The file is readable by the owner only.
func SaveCredentials(path string, creds *Credentials) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	return nil
}

// LoadCredentials loads the pair from disk. A missing file surfaces as the
// underlying os.IsNotExist error so callers can tell absence from corruption.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return &creds, nil
}

// RemoveCredentials deletes the credentials file, tolerating its absence.
func RemoveCredentials(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}
