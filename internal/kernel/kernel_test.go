package kernel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/cermakm/nbrequirements/internal/notebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameFromNotebook(t *testing.T) {
	tests := map[string]string{
		"Analysis.ipynb":               "analysis",
		"/work/My  Data\tSet.ipynb":    "my_data_set",
		"report":                       "report",
		filepath.Join("a", "B.ipynb"): "b",
	}
	for in, want := range tests {
		assert.Equal(t, want, NameFromNotebook(in), in)
	}
}

func writeSpec(t *testing.T, dir, name, content string) {
	t.Helper()
	specDir := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(specDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(specDir, "kernel.json"), []byte(content), 0644))
}

func TestFindSpecs(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	writeSpec(t, first, "Analysis", `{"display_name": "Analysis", "language": "python", "argv": ["python", "-m", "ipykernel"]}`)
	writeSpec(t, second, "analysis", `{"display_name": "Shadowed", "language": "python"}`)
	writeSpec(t, second, "python3", `{"display_name": "Python 3", "language": "python"}`)
	writeSpec(t, second, "broken", `{`)
	require.NoError(t, os.WriteFile(filepath.Join(second, "README"), []byte("x"), 0644))

	specs, err := FindSpecs([]string{first, second, filepath.Join(first, "missing")})
	require.NoError(t, err)

	require.Len(t, specs, 2)
	assert.Equal(t, "Analysis", specs["analysis"].DisplayName)
	assert.Equal(t, filepath.Join(first, "Analysis"), specs["analysis"].Dir)
	assert.Equal(t, []string{"python", "-m", "ipykernel"}, specs["analysis"].Argv)
	assert.Equal(t, "python3", specs["python3"].Name)
}

func TestDefaultDirsHonorsJupyterPath(t *testing.T) {
	t.Setenv("JUPYTER_PATH", "/opt/jupyter")

	dirs := DefaultDirs()
	require.NotEmpty(t, dirs)
	assert.Equal(t, filepath.Join("/opt/jupyter", "kernels"), dirs[0])
}

func TestSet(t *testing.T) {
	nb, err := notebook.Parse([]byte(`{"cells": [], "metadata": {"kernelspec": {"name": "python3", "display_name": "Python 3"}}}`))
	require.NoError(t, err)
	nb.Path = "My Analysis.ipynb"

	specs := map[string]*models.KernelSpec{
		"my_analysis": {Name: "my_analysis", DisplayName: "My Analysis", Language: "python"},
		"python3":     {Name: "python3", DisplayName: "Python 3", Language: "python"},
	}

	name, err := Set(nb, "", specs)
	require.NoError(t, err)
	assert.Equal(t, "my_analysis", name)

	spec, ok, err := nb.Kernelspec()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "My Analysis", spec.DisplayName)

	// already set
	name, err = Set(nb, "MY_ANALYSIS", nil)
	require.NoError(t, err)
	assert.Equal(t, "my_analysis", name)

	_, err = Set(nb, "unknown", specs)
	var nbErr *models.NbReqError
	require.True(t, errors.As(err, &nbErr))
	assert.Equal(t, models.ErrKernel, nbErr.Type)
	assert.Contains(t, err.Error(), "missing kernel spec: unknown")
}
