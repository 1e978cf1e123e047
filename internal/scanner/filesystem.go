package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
)

// DefaultPatterns select every notebook below the scanned directory
var DefaultPatterns = []string{"**/*.ipynb"}

// FileSystemScanner implements Scanner interface for filesystem scanning
type FileSystemScanner struct {
	patterns []string
}

// NewFileSystemScanner creates a new filesystem scanner. Without patterns
// DefaultPatterns are used.
func NewFileSystemScanner(patterns ...string) *FileSystemScanner {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &FileSystemScanner{patterns: patterns}
}

// Scan recursively scans a directory for notebooks
func (s *FileSystemScanner) Scan(ctx context.Context, dir string) ([]ScannedNotebook, error) {
	for _, p := range s.patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern: %s", p)
		}
	}

	var notebooks []ScannedNotebook

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			// Jupyter autosaves live here
			if d.Name() == ".ipynb_checkpoints" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if !s.matches(filepath.ToSlash(rel)) {
			return nil
		}

		ok, err := s.IsNotebook(path)
		if err != nil {
			logrus.Warnf("Failed to inspect %s: %v", path, err)
			return nil
		}
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		logrus.Debugf("Found notebook: %s", path)

		notebooks = append(notebooks, ScannedNotebook{
			Path: path,
			Size: info.Size(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	logrus.Infof("Found %d notebooks in %s", len(notebooks), dir)
	return notebooks, nil
}

// IsNotebook reports whether a file is a notebook
func (s *FileSystemScanner) IsNotebook(path string) (bool, error) {
	return DetectNotebook(path)
}

func (s *FileSystemScanner) matches(rel string) bool {
	for _, p := range s.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
