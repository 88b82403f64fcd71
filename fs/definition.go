// Package fs loads definitions from disk and stores page snapshots.
package fs

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/lodestone"
)

// DefinitionExt is the only file extension accepted for definitions.
const DefinitionExt = ".json"

// LoadDefinition compiles the definition file at path. The definition is
// named after the file's stem. Returns EINVALID for files without the
// .json extension.
func LoadDefinition(path string) (*lodestone.Definition, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	name, err := definitionName(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return lodestone.ParseDefinition(name, bytes.NewReader(data))
}

func definitionName(path string) (string, error) {
	ext := filepath.Ext(path)
	if ext != DefinitionExt {
		return "", lodestone.Errorf(lodestone.EINVALID, "%s: definitions must be %s files", path, DefinitionExt)
	}
	return strings.TrimSuffix(filepath.Base(path), ext), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// ProfileDir is the directory under a catalog root holding the definitions
// that together describe one character.
const ProfileDir = "profile"

// MetaFile is the file under a catalog root mapping definitions to URLs.
const MetaFile = "meta.json"

var _ lodestone.DefinitionSource = (*Catalog)(nil)

// Catalog is a directory of definitions together with their meta file:
//
//	root/
//	  meta.json
//	  profile/
//	    character.json
//	    classjob.json
//
// Definition sources are read and validated once; Definitions compiles a
// fresh set on every call.
type Catalog struct {
	root    string
	meta    *lodestone.Meta
	sources []definitionSource
}

type definitionSource struct {
	name string
	path string
	url  string
	data []byte
}

// OpenCatalog reads the catalog under root. Returns EINVALID if any
// definition fails to compile or has no applicable URI in meta.json.
func OpenCatalog(root string) (*Catalog, error) {
	root, err := ExpandHome(root)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(root, MetaFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	meta, err := lodestone.ParseMeta(f)
	if err != nil {
		return nil, err
	}

	paths, err := filepath.Glob(filepath.Join(root, ProfileDir, "*"+DefinitionExt))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	c := &Catalog{root: root, meta: meta}
	for _, path := range paths {
		rel := ProfileDir + "/" + filepath.Base(path)
		url, err := meta.URI(rel)
		if err != nil {
			return nil, lodestone.Errorf(lodestone.EINVALID, "%s: %s", MetaFile, lodestone.ErrorMessage(err))
		}

		name, err := definitionName(path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if _, err := lodestone.ParseDefinition(name, bytes.NewReader(data)); err != nil {
			return nil, err
		}

		c.sources = append(c.sources, definitionSource{name: name, path: rel, url: url, data: data})
	}

	if len(c.sources) == 0 {
		return nil, lodestone.Errorf(lodestone.EINVALID, "no definitions found in %s", filepath.Join(root, ProfileDir))
	}
	return c, nil
}

// Root returns the catalog directory.
func (c *Catalog) Root() string { return c.root }

// Meta returns the parsed meta file.
func (c *Catalog) Meta() *lodestone.Meta { return c.meta }

// Names returns the definition names in file name order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.sources))
	for i, src := range c.sources {
		names[i] = src.name
	}
	return names
}

// Definitions compiles a fresh definition per source with its URL set.
func (c *Catalog) Definitions() ([]*lodestone.Definition, error) {
	defs := make([]*lodestone.Definition, 0, len(c.sources))
	for _, src := range c.sources {
		def, err := lodestone.ParseDefinition(src.name, bytes.NewReader(src.data))
		if err != nil {
			return nil, err
		}
		def.URL = src.url
		defs = append(defs, def)
	}
	return defs, nil
}
