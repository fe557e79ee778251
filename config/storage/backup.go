package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DefaultBackupRetention is the default number of backups to keep
const DefaultBackupRetention = 5

// backupTimeFormat sorts lexicographically in time order
const backupTimeFormat = "20060102150405.000000"

// BackupManager manages backup files for the config file
type BackupManager struct {
	// MaxBackups is the maximum number of backups to retain
	MaxBackups int

	now func() time.Time
}

// NewBackupManager creates a new BackupManager; non-positive maxBackups selects the default
func NewBackupManager(maxBackups int) *BackupManager {
	if maxBackups <= 0 {
		maxBackups = DefaultBackupRetention
	}
	return &BackupManager{
		MaxBackups: maxBackups,
		now:        time.Now,
	}
}

// CreateBackup copies filePath to <filePath>.backup-<timestamp>-<pid>
func (bm *BackupManager) CreateBackup(filePath string) (string, error) {
	timestamp := bm.now().Format(backupTimeFormat)
	backupPath := fmt.Sprintf("%s.backup-%s-%d", filePath, timestamp, os.Getpid())

	if err := copyFile(filePath, backupPath); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	return backupPath, nil
}

// ListBackups returns the backups of filePath, oldest first
func (bm *BackupManager) ListBackups(filePath string) ([]string, error) {
	pattern := filepath.Join(filepath.Dir(filePath), glob(filepath.Base(filePath))+".backup-*")

	backupFiles, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	sort.Strings(backupFiles)
	return backupFiles, nil
}

// CleanupOldBackups removes old backup files, retaining only the most recent MaxBackups
func (bm *BackupManager) CleanupOldBackups(filePath string) error {
	backupFiles, err := bm.ListBackups(filePath)
	if err != nil {
		return err
	}

	numToRemove := len(backupFiles) - bm.MaxBackups
	if numToRemove <= 0 {
		return nil
	}

	for _, oldBackup := range backupFiles[:numToRemove] {
		if err := os.Remove(oldBackup); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", oldBackup, err)
		}
	}

	return nil
}

// RestoreFromBackup replaces filePath with the contents of one of its
// backups. validate, when non-nil, vets the backup before anything is written.
func (bm *BackupManager) RestoreFromBackup(filePath, backupPath string, validate func([]byte) error) error {
	pattern := glob(filePath) + ".backup-*"
	match, err := filepath.Match(pattern, backupPath)
	if err != nil {
		return fmt.Errorf("invalid backup path: %w", err)
	}
	if !match {
		return fmt.Errorf("backup path %s is not a valid backup for %s", backupPath, filePath)
	}

	// Not Read: its sidecar lock would match the backup pattern
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if validate != nil {
		if err := validate(data); err != nil {
			return fmt.Errorf("backup %s rejected: %w", backupPath, err)
		}
	}

	if err := AtomicWrite(filePath, data, WriteOptions{}); err != nil {
		return fmt.Errorf("failed to restore from backup: %w", err)
	}
	return nil
}

// RestoreFromLatestBackup restores the file from the most recent backup and
// returns the backup used
func (bm *BackupManager) RestoreFromLatestBackup(filePath string, validate func([]byte) error) (string, error) {
	backupFiles, err := bm.ListBackups(filePath)
	if err != nil {
		return "", err
	}

	if len(backupFiles) == 0 {
		return "", fmt.Errorf("no backup files found for %s", filePath)
	}

	latest := backupFiles[len(backupFiles)-1]
	if err := bm.RestoreFromBackup(filePath, latest, validate); err != nil {
		return "", err
	}
	return latest, nil
}

// glob escapes the pattern metacharacters in a literal path
func glob(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

// copyFile copies a file from src to dst, keeping the source permissions
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode().Perm())
}
