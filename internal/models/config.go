package models

// Config contains the command line configuration
type Config struct {
	// Notebook to operate on
	Notebook string

	// Resolution
	Engine         ResolutionEngine
	Dev            bool
	PreReleases    bool
	IgnoreMetadata bool

	// Output
	Format string // json or pipfile
	Write  bool   // store results back into the notebook

	// Scanning
	Patterns    []string
	Concurrency int
}
