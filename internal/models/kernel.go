package models

// KernelInfo is the subset of kernel information stored in notebook metadata
type KernelInfo struct {
	LanguageInfo LanguageInfo `json:"language_info"`
}

// LanguageInfo describes the kernel language
type LanguageInfo struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	FileExtension string `json:"file_extension,omitempty"`
	MimeType      string `json:"mimetype,omitempty"`
}

// KernelSpec describes an installed Jupyter kernel
type KernelSpec struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Language    string   `json:"language"`
	Argv        []string `json:"argv,omitempty"`

	// Dir is the directory the spec was loaded from
	Dir string `json:"-"`
}
