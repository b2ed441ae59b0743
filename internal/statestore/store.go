// Package statestore persists the per-environment configuration record
// between runs. The record carries the inventory fingerprint from the
// last successful configuration pass so unchanged fleets can skip
// re-configuration entirely.
//
// Two backends are provided: a local JSON file for single-operator use
// and an S3 object for shared environments.
package statestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Record is the persisted state of one environment.
type Record struct {
	Environment string `json:"environment"`

	// InventoryFingerprint is the hex SHA-256 digest of the inventory
	// document at the time of the last successful configuration run.
	InventoryFingerprint string `json:"inventory_fingerprint"`

	// Hosts are the managed addresses in inventory order.
	Hosts []string `json:"hosts,omitempty"`

	ConfiguredAt time.Time `json:"configured_at"`
}

// Store reads and writes the environment record. Get returns (nil, nil)
// when no record exists; Delete of a missing record is not an error.
type Store interface {
	Get(ctx context.Context) (*Record, error)
	Put(ctx context.Context, record *Record) error
	Delete(ctx context.Context) error
}

// FileStore keeps the record as a JSON file on local disk.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("state file path cannot be empty")
	}
	return &FileStore{path: path}, nil
}

// Get reads the record, returning (nil, nil) when the file does not exist.
func (s *FileStore) Get(_ context.Context) (*Record, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %s: %w", s.path, err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", s.path, err)
	}

	return &record, nil
}

// Put writes the record atomically via a temp file rename.
func (s *FileStore) Put(_ context.Context, record *Record) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state record: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file %s: %w", s.path, err)
	}

	return nil
}

// Delete removes the record. Missing files are tolerated.
func (s *FileStore) Delete(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file %s: %w", s.path, err)
	}
	return nil
}
