package notebook

import (
	"encoding/json"
	"strings"
)

// Cell types
const (
	CellTypeCode     = "code"
	CellTypeMarkdown = "markdown"
	CellTypeRaw      = "raw"
)

// Cell is a notebook cell
type Cell struct {
	CellType       string `json:"cell_type"`
	Source         Source `json:"source"`
	ExecutionCount *int   `json:"execution_count,omitempty"`
}

// Source is cell source. nbformat allows either a string or a list of lines.
type Source string

// UnmarshalJSON accepts both source forms
func (s *Source) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Source(str)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*s = Source(strings.Join(lines, ""))
	return nil
}

// Lines splits the source into lines
func (s Source) Lines() []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(string(s), "\r\n", "\n"), "\n")
}
