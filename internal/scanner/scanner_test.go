package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cermakm/nbrequirements/internal/notebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImports(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"plain", "import numpy", []string{"numpy"}},
		{"alias", "import numpy as np", []string{"numpy"}},
		{"multiple", "import os, sys as system, pandas.io", []string{"os", "sys", "pandas"}},
		{"from", "from sklearn.svm import SVC", []string{"sklearn"}},
		{"relative", "from . import helpers\nfrom .utils import x", nil},
		{"indented", "try:\n    import ujson as json\nexcept ImportError:\n    import json", []string{"ujson", "json"}},
		{"comments", "# import scipy\nimport torch  # import keras", []string{"torch"}},
		{"magics", "%matplotlib inline\n!pip install requests\nimport matplotlib", []string{"matplotlib"}},
		{"semicolons", "import a; import b", []string{"a", "b"}},
		{"continuation", "import a, \\\n    b", []string{"a", "b"}},
		{"parenthesized", "from tensorflow import (\n    keras,\n)", []string{"tensorflow"}},
		{"not an import", "important = 1\nfromage = 2", nil},
		{"invalid name", "import 3d", nil},
		{"docstring", "def f():\n    \"\"\"\n    from the import docs\n    import this too\n    \"\"\"\n    import pandas", []string{"pandas"}},
		{"one-line docstring", "'''import os'''; import requests", []string{"requests"}},
		{"hash in string", "print('#'); import numpy", []string{"numpy"}},
		{"escaped quote", `x = "a\"# b"; import scipy`, []string{"scipy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseImports(tt.source))
		})
	}
}

func TestGatherLibraryUsage(t *testing.T) {
	cells := []notebook.Cell{
		{CellType: notebook.CellTypeCode, Source: "import pandas as pd\nimport os\nimport numpy"},
		{CellType: notebook.CellTypeMarkdown, Source: "import flask"},
		{CellType: notebook.CellTypeCode, Source: "from numpy import linalg\nfrom collections import OrderedDict\nimport Sklearn"},
	}

	assert.Equal(t, []string{"Sklearn", "numpy", "pandas"}, GatherLibraryUsage(cells))
	assert.Empty(t, GatherLibraryUsage(nil))
}

func TestIsStandardLibrary(t *testing.T) {
	assert.True(t, IsStandardLibrary("os"))
	assert.True(t, IsStandardLibrary("__future__"))
	assert.False(t, IsStandardLibrary("numpy"))

	cells := []notebook.Cell{{
		CellType: notebook.CellTypeCode,
		Source: notebook.Source("from distutils.version import LooseVersion\nimport test.support\n" +
			"import telnetlib, nntplib, xdrlib, uu, spwd, nis, mailcap, sndhdr, sunau\n" +
			"import ossaudiodev, msilib, pyexpat, idlelib, posixpath, ntpath\n" +
			"import sre_compile, sre_constants, sre_parse, _collections_abc\n" +
			"import requests"),
	}}
	assert.Equal(t, []string{"requests"}, GatherLibraryUsage(cells))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDetectNotebook(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "ok.ipynb"), "\n  {\"cells\": []}")
	writeFile(t, filepath.Join(dir, "empty.ipynb"), "")
	writeFile(t, filepath.Join(dir, "text.ipynb"), "hello")
	writeFile(t, filepath.Join(dir, "data.json"), "{}")

	tests := map[string]bool{
		"ok.ipynb":    true,
		"empty.ipynb": false,
		"text.ipynb":  false,
		"data.json":   false,
	}
	for name, want := range tests {
		got, err := DetectNotebook(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := DetectNotebook(filepath.Join(dir, "missing.ipynb"))
	assert.Error(t, err)
}

func TestFileSystemScanner(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "top.ipynb"), "{}")
	writeFile(t, filepath.Join(dir, "nested", "deep", "analysis.ipynb"), "{}")
	writeFile(t, filepath.Join(dir, "nested", ".ipynb_checkpoints", "analysis-checkpoint.ipynb"), "{}")
	writeFile(t, filepath.Join(dir, "notes.md"), "# notes")

	notebooks, err := NewFileSystemScanner().Scan(context.Background(), dir)
	require.NoError(t, err)

	var paths []string
	for _, nb := range notebooks {
		rel, err := filepath.Rel(dir, nb.Path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
		assert.Equal(t, int64(2), nb.Size)
	}
	assert.ElementsMatch(t, []string{"top.ipynb", "nested/deep/analysis.ipynb"}, paths)

	notebooks, err = NewFileSystemScanner("nested/**/*.ipynb").Scan(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, notebooks, 1)
	assert.Equal(t, "analysis.ipynb", filepath.Base(notebooks[0].Path))
}

func TestFileSystemScannerInvalidPattern(t *testing.T) {
	_, err := NewFileSystemScanner("[").Scan(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestFileSystemScannerCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.ipynb"), "{}")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSystemScanner().Scan(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
