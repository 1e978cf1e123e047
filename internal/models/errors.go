package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrNotebookParse ErrorType = iota
	ErrRequirements
	ErrResolution
	ErrKernel
	ErrFileOp
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrNotebookParse:
		return "NotebookParse"
	case ErrRequirements:
		return "Requirements"
	case ErrResolution:
		return "Resolution"
	case ErrKernel:
		return "Kernel"
	case ErrFileOp:
		return "FileOp"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// NbReqError represents an error while managing notebook requirements
type NbReqError struct {
	Type     ErrorType
	Notebook string
	Err      error
}

// Error implements the error interface
func (e *NbReqError) Error() string {
	if e.Notebook != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Notebook, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *NbReqError) Unwrap() error {
	return e.Err
}

// NewError wraps err with the given category.
func NewError(t ErrorType, err error) *NbReqError {
	return &NbReqError{Type: t, Err: err}
}
