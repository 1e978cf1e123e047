package resolver

import (
	"context"
	"os"
	"os/exec"

	"github.com/cermakm/nbrequirements/internal/about"
)

// Runner executes external commands
type Runner interface {
	// Run executes name with args in dir and returns its combined output
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the host
type ExecRunner struct{}

// Run implements Runner
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"PIPENV_NOSPIN=1",
		"PIPENV_YES=1",
		"PIPENV_IGNORE_VIRTUALENVS=1",
		"THAMOS_USER_AGENT="+about.UserAgent(),
	)
	return cmd.CombinedOutput()
}
