// Package about holds the package metadata of nbrequirements.
package about

// Metadata constants. They are fixed at compile time.
const (
	Title   = "jupyter-nbrequirements"
	Summary = "Dependency manager for Jupyter Notebooks"
	URI     = "https://github.com/CermakM/jupyter-nbrequirements"

	Version = "0.7.3"

	Author = "Marek Cermak"
	Email  = "macermak@redhat.com"

	License = "MIT"

	copyrightYear = "2019"

	// Copyright must stay derived from Author.
	Copyright = "Copyright " + copyrightYear + " " + Author
)

// Info is a read-only snapshot of the package metadata.
type Info struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	URI       string `json:"uri"`
	Version   string `json:"version"`
	Author    string `json:"author"`
	Email     string `json:"email"`
	License   string `json:"license"`
	Copyright string `json:"copyright"`
}

// Get returns the metadata record. The value is a copy.
func Get() Info {
	return Info{
		Title:     Title,
		Summary:   Summary,
		URI:       URI,
		Version:   Version,
		Author:    Author,
		Email:     Email,
		License:   License,
		Copyright: Copyright,
	}
}

// Names returns the exported metadata field names in declaration order.
func Names() []string {
	return []string{
		"title",
		"summary",
		"uri",
		"version",
		"author",
		"email",
		"license",
		"copyright",
	}
}

// Map returns the metadata keyed by the names from Names.
func (i Info) Map() map[string]string {
	return map[string]string{
		"title":     i.Title,
		"summary":   i.Summary,
		"uri":       i.URI,
		"version":   i.Version,
		"author":    i.Author,
		"email":     i.Email,
		"license":   i.License,
		"copyright": i.Copyright,
	}
}

// UserAgent is the identifier used when nbrequirements runs external tools.
func UserAgent() string {
	return Title + "/" + Version
}
