package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to a file, creating directories as needed
func WriteFile(path string, data []byte, perm os.FileMode) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Write next to the target and rename so a notebook is never left half written
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// BackupSuffix is appended to a file name to name its backup
const BackupSuffix = ".bak.gz"

// BackupFile stores a gzip compressed copy of path next to it and returns the backup path
func BackupFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	compressed, err := GzipCompress(data)
	if err != nil {
		return "", err
	}

	backup := path + BackupSuffix
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if err := WriteFile(backup, compressed, info.Mode().Perm()); err != nil {
		return "", err
	}

	return backup, nil
}

// RestoreBackup replaces path with the content of the backup BackupFile made
// of it. The backup itself is kept.
func RestoreBackup(path string) error {
	compressed, err := os.ReadFile(path + BackupSuffix)
	if err != nil {
		return err
	}

	data, err := GzipDecompress(compressed)
	if err != nil {
		return fmt.Errorf("corrupt backup %s: %w", path+BackupSuffix, err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	return WriteFile(path, data, mode)
}
