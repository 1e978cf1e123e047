package models

// Requirements is the Pipfile-shaped requirements record stored in notebook metadata.
// Empty requires and source are left out, so assigning a record without them
// keeps what the notebook already holds.
type Requirements struct {
	// Aliases maps an imported module name to the package providing it (e.g. sklearn -> scikit-learn)
	Aliases     map[string]string `json:"aliases,omitempty"`
	Packages    map[string]string `json:"packages"`
	DevPackages map[string]string `json:"dev-packages,omitempty"`
	Requires    Requires          `json:"requires,omitzero"`
	Sources     []Source          `json:"source,omitempty"`
}

// Requires holds interpreter constraints
type Requires struct {
	PythonVersion string `json:"python_version,omitempty"`
}

// Source is a package index
type Source struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	VerifySSL bool   `json:"verify_ssl"`
}

// DefaultSource returns the public PyPI index
func DefaultSource() Source {
	return Source{
		Name:      "pypi",
		URL:       "https://pypi.org/simple",
		VerifySSL: true,
	}
}

// RequirementsLocked is the Pipfile.lock-shaped record stored in notebook metadata
type RequirementsLocked struct {
	Meta    LockMeta                 `json:"_meta"`
	Default map[string]LockedPackage `json:"default"`
	Develop map[string]LockedPackage `json:"develop"`
}

// LockMeta is the "_meta" section of a lock
type LockMeta struct {
	Hash        LockHash `json:"hash"`
	PipfileSpec int      `json:"pipfile-spec"`
	Requires    Requires `json:"requires"`
	Sources     []Source `json:"sources"`
}

// LockHash identifies the Pipfile a lock was produced from
type LockHash struct {
	Sha256 string `json:"sha256"`
}

// LockedPackage is a single pinned package
type LockedPackage struct {
	Version string   `json:"version,omitempty"`
	Hashes  []string `json:"hashes,omitempty"`
	Index   string   `json:"index,omitempty"`
	Markers string   `json:"markers,omitempty"`
}
