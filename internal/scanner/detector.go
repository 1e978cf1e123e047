package scanner

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cermakm/nbrequirements/internal/notebook"
)

// DetectNotebook determines whether path is a notebook based on its
// extension and on the file starting like a JSON object
func DetectNotebook(path string) (bool, error) {
	if filepath.Ext(path) != notebook.Extension {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// Read first 512 bytes for sniffing
	header := make([]byte, 512)
	n, err := f.Read(header)
	if err != nil && n == 0 {
		// Empty notebooks are not notebooks
		return false, nil
	}
	header = bytes.TrimLeft(header[:n], " \t\r\n\xef\xbb\xbf")

	return bytes.HasPrefix(header, []byte("{")), nil
}
