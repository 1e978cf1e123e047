// Package notebook reads and writes Jupyter notebook documents and the
// requirements stored in their metadata.
package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/cermakm/nbrequirements/internal/utils"
	"github.com/sirupsen/logrus"
)

// Extension is the file extension of notebooks
const Extension = ".ipynb"

// Metadata keys managed by nbrequirements
const (
	KeyRequirements       = "requirements"
	KeyRequirementsLocked = "requirements_locked"
	KeyLanguageInfo       = "language_info"
	KeyKernelspec         = "kernelspec"
)

// Notebook is a parsed .ipynb document. Keys nbrequirements does not
// understand are kept as they were read.
type Notebook struct {
	Path string

	doc      map[string]json.RawMessage
	metadata map[string]json.RawMessage
	cells    []Cell
}

// Load reads a notebook from disk
func Load(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.NbReqError{
			Type:     models.ErrFileOp,
			Notebook: path,
			Err:      fmt.Errorf("failed to read notebook: %w", err),
		}
	}

	nb, err := Parse(data)
	if err != nil {
		var nbErr *models.NbReqError
		if errors.As(err, &nbErr) {
			nbErr.Notebook = path
		}
		return nil, err
	}
	nb.Path = path

	logrus.Debugf("Loaded notebook %s with %d cells", path, len(nb.cells))
	return nb, nil
}

// Parse decodes a notebook document
func Parse(data []byte) (*Notebook, error) {
	nb := &Notebook{}

	if err := json.Unmarshal(data, &nb.doc); err != nil {
		return nil, models.NewError(models.ErrNotebookParse, fmt.Errorf("invalid notebook JSON: %w", err))
	}
	if nb.doc == nil {
		return nil, models.NewError(models.ErrNotebookParse, fmt.Errorf("notebook must be a JSON object"))
	}

	nb.metadata = make(map[string]json.RawMessage)
	if raw, ok := nb.doc["metadata"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &nb.metadata); err != nil {
			return nil, models.NewError(models.ErrNotebookParse, fmt.Errorf("invalid notebook metadata: %w", err))
		}
	}

	if raw, ok := nb.doc["cells"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &nb.cells); err != nil {
			return nil, models.NewError(models.ErrNotebookParse, fmt.Errorf("invalid notebook cells: %w", err))
		}
	}

	return nb, nil
}

// Marshal encodes the notebook the way Jupyter writes it: sorted keys,
// one space indentation and a trailing newline.
func (nb *Notebook) Marshal() ([]byte, error) {
	meta, err := marshalRaw(nb.metadata)
	if err != nil {
		return nil, err
	}
	nb.doc["metadata"] = meta

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(nb.doc); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Save writes the notebook to path, or to the path it was loaded from when path is empty
func (nb *Notebook) Save(path string) error {
	if path == "" {
		path = nb.Path
	}
	if path == "" {
		return models.NewError(models.ErrInvalidConfig, fmt.Errorf("notebook has no path"))
	}

	data, err := nb.Marshal()
	if err != nil {
		return &models.NbReqError{Type: models.ErrNotebookParse, Notebook: path, Err: err}
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := utils.WriteFile(path, data, mode); err != nil {
		return &models.NbReqError{
			Type:     models.ErrFileOp,
			Notebook: path,
			Err:      fmt.Errorf("failed to write notebook: %w", err),
		}
	}

	logrus.Debugf("Saved notebook %s", path)
	return nil
}

// Cells returns the notebook cells
func (nb *Notebook) Cells() []Cell {
	return nb.cells
}

// CodeCells returns only the code cells
func (nb *Notebook) CodeCells() []Cell {
	var code []Cell
	for _, c := range nb.cells {
		if c.CellType == CellTypeCode {
			code = append(code, c)
		}
	}
	return code
}

// ExecutionCount sums the execution counts of all code cells
func (nb *Notebook) ExecutionCount() int {
	total := 0
	for _, c := range nb.CodeCells() {
		if c.ExecutionCount != nil {
			total += *c.ExecutionCount
		}
	}
	return total
}

// HasMetadata reports whether key is present in the notebook metadata
func (nb *Notebook) HasMetadata(key string) bool {
	raw, ok := nb.metadata[key]
	return ok && !isNull(raw)
}

// GetMetadata decodes the metadata value under key into v. It reports
// whether the key was present.
func (nb *Notebook) GetMetadata(key string, v interface{}) (bool, error) {
	if !nb.HasMetadata(key) {
		return false, nil
	}
	if err := json.Unmarshal(nb.metadata[key], v); err != nil {
		return true, &models.NbReqError{
			Type:     models.ErrNotebookParse,
			Notebook: nb.Path,
			Err:      fmt.Errorf("invalid %s metadata: %w", key, err),
		}
	}
	return true, nil
}

// SetMetadata stores v under key, replacing any previous value
func (nb *Notebook) SetMetadata(key string, v interface{}) error {
	raw, err := marshalRaw(v)
	if err != nil {
		return err
	}
	nb.metadata[key] = raw
	return nil
}

// AssignMetadata stores v under key. When key already holds an object, the
// top-level fields of v replace the matching fields and the rest is kept.
func (nb *Notebook) AssignMetadata(key string, v interface{}) error {
	if !nb.HasMetadata(key) {
		return nb.SetMetadata(key, v)
	}

	logrus.Debugf("Notebook %s metadata already exists. Updating.", key)

	existing := make(map[string]json.RawMessage)
	if err := json.Unmarshal(nb.metadata[key], &existing); err != nil {
		// Not an object, nothing to assign into
		return nb.SetMetadata(key, v)
	}

	raw, err := marshalRaw(v)
	if err != nil {
		return err
	}
	update := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &update); err != nil {
		return err
	}

	for k, value := range update {
		existing[k] = value
	}

	return nb.SetMetadata(key, existing)
}

// DeleteMetadata removes key from the notebook metadata
func (nb *Notebook) DeleteMetadata(key string) {
	delete(nb.metadata, key)
}

// marshalRaw encodes v without HTML escaping, so version specifiers such
// as ">=1.18" are written as they are.
func marshalRaw(v interface{}) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
