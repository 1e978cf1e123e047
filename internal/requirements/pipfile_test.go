package requirements

import (
	"strings"
	"testing"

	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipfileRoundTrip(t *testing.T) {
	req := &models.Requirements{
		Packages:    map[string]string{"numpy": "==1.18.1", "scikit-learn": "*"},
		DevPackages: map[string]string{"pytest": ">=5.0"},
		Requires:    models.Requires{PythonVersion: "3.8"},
		Sources:     []models.Source{models.DefaultSource()},
	}

	data, err := Pipfile(req)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[[source]]")
	assert.Contains(t, content, "[packages]")
	assert.Contains(t, content, "[requires]")
	assert.Less(t, strings.Index(content, "[[source]]"), strings.Index(content, "[packages]"))

	parsed, err := ParsePipfile(data)
	require.NoError(t, err)
	assert.Equal(t, req.Packages, parsed.Packages)
	assert.Equal(t, req.DevPackages, parsed.DevPackages)
	assert.Equal(t, req.Requires, parsed.Requires)
	assert.Equal(t, req.Sources, parsed.Sources)
}

func TestPipfileDefaultsSource(t *testing.T) {
	data, err := Pipfile(&models.Requirements{})
	require.NoError(t, err)

	parsed, err := ParsePipfile(data)
	require.NoError(t, err)
	assert.Equal(t, []models.Source{models.DefaultSource()}, parsed.Sources)
	assert.Empty(t, parsed.Packages)
}

func TestParsePipfileTableEntries(t *testing.T) {
	data := []byte(`
[[source]]
name = "pypi"
url = "https://pypi.org/simple"
verify_ssl = true

[packages]
requests = {version = "==2.22.0", extras = ["socks"]}
flask = {git = "https://github.com/pallets/flask.git"}
numpy = "*"

[requires]
python_version = "3.7"
`)

	req, err := ParsePipfile(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"requests": "==2.22.0",
		"flask":    "*",
		"numpy":    "*",
	}, req.Packages)
	assert.Equal(t, "3.7", req.Requires.PythonVersion)
	assert.Nil(t, req.DevPackages)
}

func TestParsePipfileInvalid(t *testing.T) {
	_, err := ParsePipfile([]byte("[packages"))
	assert.Error(t, err)

	_, err = ParsePipfile([]byte("[packages]\nnumpy = 1\n"))
	assert.Error(t, err)
}

func TestPipfileHash(t *testing.T) {
	req := &models.Requirements{
		Packages: map[string]string{"numpy": "*", "pandas": "*"},
		Requires: models.Requires{PythonVersion: "3.8"},
		Sources:  []models.Source{models.DefaultSource()},
	}

	first, err := PipfileHash(req)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	same, err := PipfileHash(&models.Requirements{
		Packages: map[string]string{"pandas": "*", "numpy": "*"},
		Requires: models.Requires{PythonVersion: "3.8"},
		Sources:  []models.Source{models.DefaultSource()},
	})
	require.NoError(t, err)
	assert.Equal(t, first, same)

	req.Packages["scipy"] = "*"
	changed, err := PipfileHash(req)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestPipfileHashDefaultSource(t *testing.T) {
	withoutSources := &models.Requirements{
		Packages: map[string]string{"numpy": "*"},
		Requires: models.Requires{PythonVersion: "3.8"},
	}
	withDefault := &models.Requirements{
		Packages: map[string]string{"numpy": "*"},
		Requires: models.Requires{PythonVersion: "3.8"},
		Sources:  []models.Source{models.DefaultSource()},
	}

	got, err := PipfileHash(withoutSources)
	require.NoError(t, err)
	want, err := PipfileHash(withDefault)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	rendered, err := Pipfile(withoutSources)
	require.NoError(t, err)
	parsed, err := ParsePipfile(rendered)
	require.NoError(t, err)
	fromRendered, err := PipfileHash(parsed)
	require.NoError(t, err)
	assert.Equal(t, got, fromRendered)
}
