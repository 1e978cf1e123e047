// Package requirements builds notebook requirements from library usage and
// stored metadata.
package requirements

import (
	"fmt"
	"strings"

	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/cermakm/nbrequirements/internal/notebook"
	"github.com/cermakm/nbrequirements/internal/scanner"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// AnyVersion is the specifier of an unpinned package
const AnyVersion = "*"

// FromUsage builds requirements from the modules a notebook imports.
// Module names are lower-cased and replaced by their alias when one exists.
func FromUsage(usage []string, aliases map[string]string, pythonVersion string) *models.Requirements {
	if aliases == nil {
		aliases = map[string]string{}
	}

	packages := make(map[string]string, len(usage))
	for _, module := range usage {
		name := strings.ToLower(module)
		if alias, ok := aliases[name]; ok {
			// replace the package name by alias
			name = alias
		}
		packages[name] = AnyVersion
	}

	return &models.Requirements{
		Aliases:  aliases,
		Packages: packages,
		Requires: models.Requires{PythonVersion: pythonVersion},
		Sources:  []models.Source{models.DefaultSource()},
	}
}

// Get returns the requirements of a notebook. They are gathered from the
// notebook's imports and, unless ignoreMetadata is set, merged with the
// requirements stored in the notebook metadata. Stored requirements take
// preference since they can pin specific versions.
func Get(nb *notebook.Notebook, ignoreMetadata bool) (*models.Requirements, error) {
	logrus.Info("Reading notebook requirements.")

	stored, _, err := nb.Requirements()
	if err != nil {
		return nil, err
	}

	var aliases map[string]string
	if stored != nil {
		aliases = stored.Aliases
	}

	pythonVersion, err := nb.PythonVersion()
	if err != nil {
		return nil, &models.NbReqError{
			Type:     models.ErrRequirements,
			Notebook: nb.Path,
			Err:      fmt.Errorf("failed to determine python version: %w", err),
		}
	}

	logrus.Info("Gathering library usage.")
	usage := scanner.GatherLibraryUsage(nb.Cells())
	logrus.Debugf("Library usage: %v", usage)

	req := FromUsage(usage, lo.Assign(aliases), pythonVersion)
	if ignoreMetadata || stored == nil {
		return req, nil
	}

	return Merge(req, stored), nil
}

// Merge returns base updated with override. Maps are merged key by key,
// scalar fields and sources are taken from override when set.
func Merge(base, override *models.Requirements) *models.Requirements {
	merged := &models.Requirements{
		Aliases:     lo.Assign(base.Aliases, override.Aliases),
		Packages:    lo.Assign(base.Packages, override.Packages),
		DevPackages: lo.Assign(base.DevPackages, override.DevPackages),
		Requires:    base.Requires,
		Sources:     base.Sources,
	}

	if override.Requires.PythonVersion != "" {
		merged.Requires.PythonVersion = override.Requires.PythonVersion
	}
	if len(override.Sources) > 0 {
		merged.Sources = override.Sources
	}
	if len(merged.DevPackages) == 0 {
		merged.DevPackages = nil
	}

	return merged
}
