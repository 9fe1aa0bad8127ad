package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

//go:generate mockgen -destination=mocks/mock_persistence.go -package=mocks -source=persistence.go Persistence

const (
	// StatusFileName is the name of the per-account status file
	StatusFileName = "status.json"
)

// Persistence defines the interface for sync status persistence
type Persistence interface {
	// SaveStatus saves the sync status to persistent storage for an account
	SaveStatus(ctx context.Context, account string, status *SyncStatus) error

	// LoadStatus loads the sync status from persistent storage for an account.
	// Returns an empty SyncStatus if no status was saved yet (first run).
	LoadStatus(ctx context.Context, account string) (*SyncStatus, error)
}

// filePersistence implements Persistence using the local filesystem
type filePersistence struct {
	basePath string
}

// NewFilePersistence creates a new file-based status persistence.
// basePath is the base directory where per-account status files are stored.
func NewFilePersistence(basePath string) Persistence {
	return &filePersistence{
		basePath: basePath,
	}
}

// SaveStatus saves the sync status to a JSON file in an account-specific directory
func (f *filePersistence) SaveStatus(_ context.Context, account string, status *SyncStatus) error {
	accountDir := filepath.Join(f.basePath, account)
	if err := os.MkdirAll(accountDir, 0750); err != nil {
		return fmt.Errorf("failed to create status directory for account '%s': %w", account, err)
	}

	filePath := filepath.Join(accountDir, StatusFileName)

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status data for account '%s': %w", account, err)
	}

	// Write to temporary file first for atomic operation
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary status file for account '%s': %w", account, err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename status file for account '%s': %w", account, err)
	}

	return nil
}

// LoadStatus loads the sync status from a JSON file for an account
func (f *filePersistence) LoadStatus(_ context.Context, account string) (*SyncStatus, error) {
	filePath := filepath.Join(f.basePath, account, StatusFileName)

	// #nosec G304 -- filePath is constructed from trusted internal sources (basePath + account from config)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No status yet - this is OK for first run
			return &SyncStatus{}, nil
		}
		return nil, fmt.Errorf("failed to read status file for account '%s': %w", account, err)
	}

	var status SyncStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status data for account '%s': %w", account, err)
	}

	return &status, nil
}
