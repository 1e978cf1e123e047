package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSHA256(t *testing.T) {
	tests := []struct {
		data string
		want string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tt := range tests {
		if got := SHA256([]byte(tt.data)); got != tt.want {
			t.Errorf("SHA256(%q) = %s, want %s", tt.data, got, tt.want)
		}
	}
}

func TestFileSHA256(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := FileSHA256(path)
	if err != nil {
		t.Fatalf("FileSHA256 failed: %v", err)
	}
	if got != SHA256([]byte("abc")) {
		t.Errorf("file digest does not match data digest: %s", got)
	}
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "nb.ipynb")

	if err := WriteFile(path, []byte("{}"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("unexpected content: %q", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("unexpected mode: %v", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestBackupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nb.ipynb")
	content := []byte(`{"cells": []}`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := BackupFile(path)
	if err != nil {
		t.Fatalf("BackupFile failed: %v", err)
	}
	if backup != path+".bak.gz" {
		t.Errorf("unexpected backup path: %s", backup)
	}

	compressed, err := os.ReadFile(backup)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := GzipDecompress(compressed)
	if err != nil {
		t.Fatalf("backup is not valid gzip: %v", err)
	}
	if string(restored) != string(content) {
		t.Errorf("backup content mismatch: %q", restored)
	}
}

func TestRestoreBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nb.ipynb")
	original := []byte(`{"cells": []}`)
	if err := os.WriteFile(path, original, 0600); err != nil {
		t.Fatal(err)
	}

	if err := RestoreBackup(path); err == nil {
		t.Error("expected an error without a backup")
	}

	if _, err := BackupFile(path); err != nil {
		t.Fatalf("BackupFile failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"cells": [1]}`), 0600); err != nil {
		t.Fatal(err)
	}

	if err := RestoreBackup(path); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(original) {
		t.Errorf("unexpected restored content: %q", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("restore changed the mode: %v", info.Mode().Perm())
	}

	if err := os.WriteFile(path+BackupSuffix, []byte("not gzip"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := RestoreBackup(path); err == nil {
		t.Error("expected an error for a corrupt backup")
	}
}
