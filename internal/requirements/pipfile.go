package requirements

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/cermakm/nbrequirements/internal/utils"
	"github.com/pelletier/go-toml/v2"
)

// pipfile is the on-disk Pipfile layout; field order is the section order
type pipfile struct {
	Source      []pipfileSource   `toml:"source"`
	Packages    map[string]string `toml:"packages"`
	DevPackages map[string]string `toml:"dev-packages"`
	Requires    pipfileRequires   `toml:"requires"`
}

type pipfileSource struct {
	Name      string `toml:"name"`
	URL       string `toml:"url"`
	VerifySSL bool   `toml:"verify_ssl"`
}

type pipfileRequires struct {
	PythonVersion string `toml:"python_version,omitempty"`
}

// Pipfile renders requirements as a Pipfile
func Pipfile(req *models.Requirements) ([]byte, error) {
	p := pipfile{
		Packages:    req.Packages,
		DevPackages: req.DevPackages,
		Requires:    pipfileRequires{PythonVersion: req.Requires.PythonVersion},
	}
	if p.Packages == nil {
		p.Packages = map[string]string{}
	}
	if p.DevPackages == nil {
		p.DevPackages = map[string]string{}
	}

	for _, s := range sourcesOrDefault(req) {
		p.Source = append(p.Source, pipfileSource(s))
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(p); err != nil {
		return nil, models.NewError(models.ErrRequirements, fmt.Errorf("failed to render Pipfile: %w", err))
	}

	return buf.Bytes(), nil
}

// ParsePipfile reads requirements from a Pipfile. Package entries given as
// tables (e.g. {version = "==1.0", extras = [...]}) keep their version only.
func ParsePipfile(data []byte) (*models.Requirements, error) {
	var raw struct {
		Source      []pipfileSource        `toml:"source"`
		Packages    map[string]interface{} `toml:"packages"`
		DevPackages map[string]interface{} `toml:"dev-packages"`
		Requires    pipfileRequires        `toml:"requires"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, models.NewError(models.ErrRequirements, fmt.Errorf("failed to parse Pipfile: %w", err))
	}

	req := &models.Requirements{
		Requires: models.Requires{PythonVersion: raw.Requires.PythonVersion},
	}

	var err error
	if req.Packages, err = specifiers(raw.Packages); err != nil {
		return nil, err
	}
	if req.DevPackages, err = specifiers(raw.DevPackages); err != nil {
		return nil, err
	}
	if len(req.DevPackages) == 0 {
		req.DevPackages = nil
	}

	for _, s := range raw.Source {
		req.Sources = append(req.Sources, models.Source(s))
	}

	return req, nil
}

func specifiers(entries map[string]interface{}) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for name, entry := range entries {
		switch v := entry.(type) {
		case string:
			out[name] = v
		case map[string]interface{}:
			version, _ := v["version"].(string)
			if version == "" {
				version = AnyVersion
			}
			out[name] = version
		default:
			return nil, models.NewError(models.ErrRequirements, fmt.Errorf("invalid specifier for package %s", name))
		}
	}
	return out, nil
}

// PipfileHash returns the digest pipenv records in Pipfile.lock under
// _meta.hash.sha256 for these requirements
func PipfileHash(req *models.Requirements) (string, error) {
	var sources []map[string]interface{}
	for _, s := range sourcesOrDefault(req) {
		sources = append(sources, map[string]interface{}{
			"name":       s.Name,
			"url":        s.URL,
			"verify_ssl": s.VerifySSL,
		})
	}

	requires := map[string]string{}
	if req.Requires.PythonVersion != "" {
		requires["python_version"] = req.Requires.PythonVersion
	}

	content := map[string]interface{}{
		"_meta": map[string]interface{}{
			"requires": requires,
			"sources":  sources,
		},
		"default": orEmpty(req.Packages),
		"develop": orEmpty(req.DevPackages),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(content); err != nil {
		return "", err
	}

	return utils.SHA256(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// sourcesOrDefault returns the sources a rendered Pipfile lists
func sourcesOrDefault(req *models.Requirements) []models.Source {
	if len(req.Sources) == 0 {
		return []models.Source{models.DefaultSource()}
	}
	return req.Sources
}

func orEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
