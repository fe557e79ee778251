package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrNotExist is returned by Read when the config file is missing
var ErrNotExist = fs.ErrNotExist

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// lockPath returns the sidecar file used for advisory locking. The config
// file itself is replaced by rename on every write, so it cannot carry the lock.
func lockPath(path string) string {
	return path + ".lock"
}

// withLock runs fn while holding the advisory lock for path
func withLock(path string, exclusive bool, fn func() error) error {
	f, err := os.OpenFile(lockPath(path), os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	defer f.Close()

	lock := lockShared
	if exclusive {
		lock = lockExclusive
	}
	if err := lock(f); err != nil {
		return fmt.Errorf("failed to lock config file: %w", err)
	}
	defer unlock(f)

	return fn()
}

// Read returns the contents of path under a shared lock. It returns an error
// matching ErrNotExist when the file is missing.
func Read(path string) ([]byte, error) {
	if !FileExists(path) {
		return nil, fmt.Errorf("read %s: %w", path, ErrNotExist)
	}

	var data []byte
	err := withLock(path, false, func() error {
		var readErr error
		data, readErr = os.ReadFile(path)
		return readErr
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// WriteOptions controls AtomicWrite
type WriteOptions struct {
	// Backups, when non-nil, snapshots the previous file before it is replaced
	// and prunes old snapshots afterwards.
	Backups *BackupManager
	// OnCleanupError receives non-fatal backup pruning failures
	OnCleanupError func(error)
}

// AtomicWrite replaces path with data. The data is written to a temporary
// file in the same directory and renamed over the target under an exclusive lock.
func AtomicWrite(path string, data []byte, opts WriteOptions) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return withLock(path, true, func() error {
		if opts.Backups != nil && FileExists(path) {
			if _, err := opts.Backups.CreateBackup(path); err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
		}

		tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
		if err != nil {
			return fmt.Errorf("failed to create temporary file: %w", err)
		}
		defer os.Remove(tmpFile.Name()) // no-op after a successful rename

		if _, err := tmpFile.Write(data); err != nil {
			tmpFile.Close()
			return fmt.Errorf("failed to write temporary file: %w", err)
		}
		if err := tmpFile.Sync(); err != nil {
			tmpFile.Close()
			return fmt.Errorf("failed to sync temporary file: %w", err)
		}
		if err := tmpFile.Close(); err != nil {
			return fmt.Errorf("failed to close temporary file: %w", err)
		}

		if err := os.Chmod(tmpFile.Name(), 0600); err != nil {
			return fmt.Errorf("failed to set permissions on temporary file: %w", err)
		}

		if err := os.Rename(tmpFile.Name(), path); err != nil {
			return fmt.Errorf("failed to rename temporary file: %w", err)
		}

		if opts.Backups != nil {
			if err := opts.Backups.CleanupOldBackups(path); err != nil && opts.OnCleanupError != nil {
				opts.OnCleanupError(err)
			}
		}
		return nil
	})
}

// MigrateConfig copies a legacy config file to newPath and renames the old
// one to <old>.backup. The old file must parse as TOML.
func MigrateConfig(oldPath, newPath string) error {
	data, err := os.ReadFile(oldPath)
	if err != nil {
		return fmt.Errorf("failed to read old config file: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("old config file is empty")
	}

	var probe map[string]any
	if err := toml.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("old config file format is invalid: %w", err)
	}

	if err := AtomicWrite(newPath, data, WriteOptions{}); err != nil {
		return fmt.Errorf("failed to write new config file: %w", err)
	}

	if err := os.Rename(oldPath, oldPath+".backup"); err != nil {
		return fmt.Errorf("config migrated but old file could not be renamed: %w", err)
	}

	return nil
}

// ShouldMigrateConfig checks if config migration should be performed
func ShouldMigrateConfig(oldPath, newPath string) bool {
	// Migrate if old config exists and new config doesn't
	return FileExists(oldPath) && !FileExists(newPath)
}
