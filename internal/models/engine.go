package models

import (
	"fmt"
	"strings"
)

// ResolutionEngine selects how requirements are locked
type ResolutionEngine string

const (
	EngineThoth       ResolutionEngine = "thoth"
	EnginePipenv      ResolutionEngine = "pipenv"
	EngineMicropipenv ResolutionEngine = "micropipenv"

	DefaultEngine = EnginePipenv
)

// ParseEngine validates an engine name
func ParseEngine(s string) (ResolutionEngine, error) {
	switch e := ResolutionEngine(strings.ToLower(strings.TrimSpace(s))); e {
	case EngineThoth, EnginePipenv, EngineMicropipenv:
		return e, nil
	case "":
		return DefaultEngine, nil
	default:
		return "", NewError(ErrInvalidConfig, fmt.Errorf("unknown resolution engine: %s", s))
	}
}

// String returns the engine name
func (e ResolutionEngine) String() string {
	return string(e)
}
