package lodestone

import (
	"io"
	"sort"

	"github.com/goccy/go-json"
)

// Meta describes a set of definitions: which URL each definition file
// applies to and how to identify to the site.
type Meta struct {
	Version          string            `json:"version,omitempty"`
	UserAgentDesktop string            `json:"userAgentDesktop,omitempty"`
	UserAgentMobile  string            `json:"userAgentMobile,omitempty"`
	ApplicableURIs   map[string]string `json:"applicableUris"`
}

// ParseMeta decodes a meta.json document.
func ParseMeta(r io.Reader) (*Meta, error) {
	var m Meta
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, Errorf(EINVALID, "meta: %v", err)
	}
	return &m, nil
}

// URI returns the URL template registered for a definition file, keyed by
// its path relative to the definition root (e.g. "profile/character.json").
// Returns ENOTFOUND if no template is registered.
func (m *Meta) URI(path string) (string, error) {
	u, ok := m.ApplicableURIs[path]
	if !ok || u == "" {
		return "", Errorf(ENOTFOUND, "no applicable URI for %q", path)
	}
	return u, nil
}

// Paths returns the registered definition paths in sorted order.
func (m *Meta) Paths() []string {
	paths := make([]string, 0, len(m.ApplicableURIs))
	for p := range m.ApplicableURIs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
