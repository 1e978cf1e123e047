package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestNbReqErrorFormatting(t *testing.T) {
	cause := fmt.Errorf("boom")

	err := &NbReqError{Type: ErrKernel, Notebook: "analysis.ipynb", Err: cause}
	if got := err.Error(); got != "[Kernel] analysis.ipynb: boom" {
		t.Errorf("unexpected message: %s", got)
	}

	err = NewError(ErrResolution, cause)
	if got := err.Error(); got != "[Resolution] boom" {
		t.Errorf("unexpected message: %s", got)
	}

	if !errors.Is(err, cause) {
		t.Error("error should unwrap to its cause")
	}
}

func TestErrorTypeString(t *testing.T) {
	if ErrorType(99).String() != "Unknown" {
		t.Error("unknown types should render as Unknown")
	}
	if ErrFileOp.String() != "FileOp" {
		t.Errorf("unexpected: %s", ErrFileOp)
	}
}

func TestParseEngine(t *testing.T) {
	tests := []struct {
		in      string
		want    ResolutionEngine
		wantErr bool
	}{
		{"thoth", EngineThoth, false},
		{" Pipenv ", EnginePipenv, false},
		{"micropipenv", EngineMicropipenv, false},
		{"", DefaultEngine, false},
		{"poetry", "", true},
	}

	for _, tt := range tests {
		got, err := ParseEngine(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEngine(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEngine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	_, err := ParseEngine("poetry")
	var nbErr *NbReqError
	if !errors.As(err, &nbErr) || nbErr.Type != ErrInvalidConfig {
		t.Errorf("expected InvalidConfig error, got %v", err)
	}
}
