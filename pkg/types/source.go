// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceKind selects the extractor used for a page.
type SourceKind string

const (
	SourceTeams      SourceKind = "teams"
	SourceCharacters SourceKind = "characters"
	SourceLightCones SourceKind = "lightcones"
	SourceRelics     SourceKind = "relics"
)

// Valid reports whether k names a known extractor.
func (k SourceKind) Valid() bool {
	switch k {
	case SourceTeams, SourceCharacters, SourceLightCones, SourceRelics:
		return true
	}
	return false
}

// Source is one page to ingest.
type Source struct {
	// Kind selects the extractor.
	Kind SourceKind `json:"kind" yaml:"kind"`

	// URL is fetched over HTTP, or read from disk when Path is set.
	URL string `json:"url" yaml:"url"`

	// Path is an optional local copy of the page. The URL is still used
	// as the source attribute of emitted facts.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// SourcesFile is the YAML document listing pages for a run.
type SourcesFile struct {
	Sources []Source `json:"sources" yaml:"sources"`
}
