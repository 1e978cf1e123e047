// Package kernel manages the Jupyter kernel a notebook runs with.
package kernel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/cermakm/nbrequirements/internal/notebook"
	"github.com/sirupsen/logrus"
)

var whitespace = regexp.MustCompile(`\s+`)

// NameFromNotebook derives a kernel name from a notebook path
func NameFromNotebook(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), notebook.Extension)
	name = whitespace.ReplaceAllString(name, "_")
	return strings.ToLower(name)
}

// DefaultDirs returns the directories Jupyter looks up kernelspecs in,
// in order of precedence
func DefaultDirs() []string {
	var dirs []string

	if jupyterPath := os.Getenv("JUPYTER_PATH"); jupyterPath != "" {
		for _, p := range filepath.SplitList(jupyterPath) {
			dirs = append(dirs, filepath.Join(p, "kernels"))
		}
	}

	dirs = append(dirs, filepath.Join(xdg.DataHome, "jupyter", "kernels"))
	for _, d := range xdg.DataDirs {
		dirs = append(dirs, filepath.Join(d, "jupyter", "kernels"))
	}

	return dirs
}

// FindSpecs loads the kernelspecs found in dirs, keyed by lower-cased
// kernel name. Earlier directories take precedence.
func FindSpecs(dirs []string) (map[string]*models.KernelSpec, error) {
	specs := make(map[string]*models.KernelSpec)

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, models.NewError(models.ErrKernel, fmt.Errorf("failed to read kernel directory %s: %w", dir, err))
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			name := strings.ToLower(entry.Name())
			if _, ok := specs[name]; ok {
				continue
			}

			specDir := filepath.Join(dir, entry.Name())
			spec, err := loadSpec(specDir)
			if err != nil {
				logrus.Warnf("Skipping kernelspec %s: %v", specDir, err)
				continue
			}
			spec.Name = name

			logrus.Debugf("Found kernelspec %s in %s", name, specDir)
			specs[name] = spec
		}
	}

	return specs, nil
}

func loadSpec(dir string) (*models.KernelSpec, error) {
	data, err := os.ReadFile(filepath.Join(dir, "kernel.json"))
	if err != nil {
		return nil, err
	}

	var spec models.KernelSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("invalid kernel.json: %w", err)
	}
	spec.Dir = dir

	return &spec, nil
}

// Set binds the notebook to the kernel name. An empty name is derived from
// the notebook path. It returns the kernel name that was set.
func Set(nb *notebook.Notebook, name string, specs map[string]*models.KernelSpec) (string, error) {
	if name == "" {
		name = NameFromNotebook(nb.Path)
	}
	name = strings.ToLower(name)

	logrus.Infof("Setting kernel: %s.", name)

	current, ok, err := nb.Kernelspec()
	if err != nil {
		return "", err
	}
	if ok && current.Name == name {
		logrus.Infof("Kernel %s is already set.", name)
		return name, nil
	}

	// make sure kernelspec exists
	spec, ok := specs[name]
	if !ok {
		return "", &models.NbReqError{
			Type:     models.ErrKernel,
			Notebook: nb.Path,
			Err:      fmt.Errorf("missing kernel spec: %s", name),
		}
	}

	if err := nb.SetKernelspec(spec); err != nil {
		return "", &models.NbReqError{Type: models.ErrKernel, Notebook: nb.Path, Err: err}
	}

	return name, nil
}
