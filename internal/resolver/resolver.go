// Package resolver locks notebook requirements using a resolution engine.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/cermakm/nbrequirements/internal/notebook"
	"github.com/cermakm/nbrequirements/internal/requirements"
	"github.com/cermakm/nbrequirements/internal/utils"
	"github.com/sirupsen/logrus"
)

// Options controls how requirements are locked
type Options struct {
	Dev         bool
	PreReleases bool
}

// Resolver interface for resolution engines
type Resolver interface {
	// Lock resolves requirements into a locked set
	Lock(ctx context.Context, req *models.Requirements, opts Options) (*models.RequirementsLocked, error)

	// Engine returns the engine this resolver implements
	Engine() models.ResolutionEngine
}

// New returns the resolver for engine. A nil runner executes commands on the host.
func New(engine models.ResolutionEngine, runner Runner) (Resolver, error) {
	if runner == nil {
		runner = ExecRunner{}
	}

	switch engine {
	case models.EnginePipenv:
		return &commandResolver{engine: engine, runner: runner, command: pipenvCommand}, nil
	case models.EngineThoth:
		return &commandResolver{engine: engine, runner: runner, command: thothCommand}, nil
	case models.EngineMicropipenv:
		return nil, models.NewError(models.ErrResolution,
			fmt.Errorf("Pipfile.lock must be provided for `micropipenv` engine"))
	default:
		return nil, models.NewError(models.ErrInvalidConfig, fmt.Errorf("unknown resolution engine: %s", engine))
	}
}

func pipenvCommand(opts Options) []string {
	args := []string{"pipenv", "lock"}
	if opts.Dev {
		args = append(args, "--dev")
	}
	if opts.PreReleases {
		args = append(args, "--pre")
	}
	return args
}

func thothCommand(opts Options) []string {
	args := []string{"thamos", "advise", "--no-interactive"}
	if opts.Dev {
		args = append(args, "--dev")
	}
	return args
}

// commandResolver locks requirements by running a tool that turns a
// Pipfile into a Pipfile.lock in a scratch directory
type commandResolver struct {
	engine  models.ResolutionEngine
	runner  Runner
	command func(Options) []string
}

func (r *commandResolver) Engine() models.ResolutionEngine {
	return r.engine
}

func (r *commandResolver) Lock(ctx context.Context, req *models.Requirements, opts Options) (*models.RequirementsLocked, error) {
	workDir, err := os.MkdirTemp("", "nbrequirements-")
	if err != nil {
		return nil, models.NewError(models.ErrFileOp, fmt.Errorf("failed to create work directory: %w", err))
	}
	defer os.RemoveAll(workDir)

	pipfile, err := requirements.Pipfile(req)
	if err != nil {
		return nil, err
	}
	if err := utils.WriteFile(filepath.Join(workDir, "Pipfile"), pipfile, 0644); err != nil {
		return nil, models.NewError(models.ErrFileOp, fmt.Errorf("failed to write Pipfile: %w", err))
	}

	args := r.command(opts)
	logrus.Infof("Locking requirements with %s", r.engine)
	logrus.Debugf("Running %v in %s", args, workDir)

	output, err := r.runner.Run(ctx, workDir, args[0], args[1:]...)
	if err != nil {
		return nil, models.NewError(models.ErrResolution,
			fmt.Errorf("%s failed: %w\n%s", args[0], err, output))
	}

	data, err := os.ReadFile(filepath.Join(workDir, "Pipfile.lock"))
	if err != nil {
		return nil, models.NewError(models.ErrResolution,
			fmt.Errorf("%s did not produce Pipfile.lock: %w", r.engine, err))
	}

	return ParseLock(data)
}

// ParseLock decodes a Pipfile.lock
func ParseLock(data []byte) (*models.RequirementsLocked, error) {
	var lock models.RequirementsLocked
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, models.NewError(models.ErrResolution, fmt.Errorf("invalid Pipfile.lock: %w", err))
	}
	if lock.Default == nil {
		lock.Default = map[string]models.LockedPackage{}
	}
	if lock.Develop == nil {
		lock.Develop = map[string]models.LockedPackage{}
	}
	return &lock, nil
}

// MarshalLock encodes a lock the way pipenv writes Pipfile.lock
func MarshalLock(lock *models.RequirementsLocked) ([]byte, error) {
	data, err := json.MarshalIndent(lock, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// VerifyLock checks that lock was produced from req
func VerifyLock(lock *models.RequirementsLocked, req *models.Requirements) error {
	hash, err := requirements.PipfileHash(req)
	if err != nil {
		return err
	}
	if lock.Meta.Hash.Sha256 != hash {
		return models.NewError(models.ErrResolution,
			fmt.Errorf("Pipfile.lock is out of date: hash %s does not match requirements hash %s", lock.Meta.Hash.Sha256, hash))
	}
	return nil
}

// GetLocked returns the locked requirements of a notebook. The lock stored in
// the notebook metadata is used unless it is missing or ignoreMetadata is
// set, in which case req is resolved with r.
func GetLocked(ctx context.Context, nb *notebook.Notebook, req *models.Requirements, r Resolver, opts Options, ignoreMetadata bool) (*models.RequirementsLocked, error) {
	logrus.Info("Reading notebook locked requirements.")

	stored, ok, err := nb.RequirementsLocked()
	if err != nil {
		return nil, err
	}
	if ok && !ignoreMetadata {
		return stored, nil
	}

	logrus.Info("Locked requirements are not defined.")

	if r == nil {
		return nil, models.NewError(models.ErrResolution, fmt.Errorf("no resolution engine available"))
	}

	lock, err := r.Lock(ctx, req, opts)
	if err != nil {
		var nbErr *models.NbReqError
		if errors.As(err, &nbErr) && nbErr.Notebook == "" {
			nbErr.Notebook = nb.Path
		}
		return nil, err
	}

	return lock, nil
}
