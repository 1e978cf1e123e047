package scanner

import "context"

// ScannedNotebook represents a notebook file found during scanning
type ScannedNotebook struct {
	Path string
	Size int64
}

// Scanner interface for discovering notebooks
type Scanner interface {
	// Scan recursively scans a directory for notebooks
	Scan(ctx context.Context, dir string) ([]ScannedNotebook, error)

	// IsNotebook reports whether a file is a notebook
	IsNotebook(path string) (bool, error)
}
