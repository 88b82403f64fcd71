package lodestone

import (
	"fmt"
	"io"
	"strings"
)

// Definition is a compiled extraction schema: a tree of containers and
// elements built from one JSON definition, plus the document reference
// shared by the whole tree.
//
// A Definition is not safe for concurrent use. Bind and extraction must be
// serialized by the caller, or each goroutine should compile its own.
type Definition struct {
	// URL is the template of the page this definition applies to,
	// e.g. "https://example.com/character/{id}/". Optional.
	URL string

	name string
	ref  *DocumentRef
	root *Container
}

// ParseDefinition compiles the JSON definition read from r.
//
// Each key of an object names a child. An object value containing a
// "selector" key is an element; any other object is a nested container.
// Keys are lower-cased and kept in document order.
//
// Returns EINVALID for malformed JSON, non-object entries, elements without
// a selector, invalid regexes, and names that collide after lower-casing.
func ParseDefinition(name string, r io.Reader) (*Definition, error) {
	obj, err := decodeObject(r)
	if err != nil {
		return nil, Errorf(EINVALID, "definition %q: %v", name, err)
	}

	ref := &DocumentRef{}
	d := &Definition{
		name: name,
		ref:  ref,
		root: NewContainer(name, ref),
	}
	if err := buildTree(obj, d.root, name); err != nil {
		return nil, err
	}
	return d, nil
}

// MustParseDefinition is like ParseDefinition but panics on error.
func MustParseDefinition(name, definition string) *Definition {
	d, err := ParseDefinition(name, strings.NewReader(definition))
	if err != nil {
		panic(err)
	}
	return d
}

func buildTree(obj *object, parent *Container, path string) error {
	for i, key := range obj.keys {
		childPath := path + "." + strings.ToLower(key)
		sub, ok := obj.values[i].(*object)
		if !ok {
			return Errorf(EINVALID, "%s: expected an object, got %s", childPath, describe(obj.values[i]))
		}

		var child Node
		if sub.has("selector") {
			spec, err := elementSpec(sub, childPath)
			if err != nil {
				return err
			}
			e, err := NewElement(key, spec)
			if err != nil {
				return Errorf(EINVALID, "%s: %s", path, ErrorMessage(err))
			}
			child = e
		} else {
			c := NewContainer(key, parent.ref)
			if err := buildTree(sub, c, childPath); err != nil {
				return err
			}
			child = c
		}

		if err := parent.Add(child); err != nil {
			return Errorf(EINVALID, "%s: duplicate entry %q", path, child.Name())
		}
	}
	return nil
}

func elementSpec(obj *object, path string) (ElementSpec, error) {
	var spec ElementSpec
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"selector", &spec.Selector},
		{"attribute", &spec.Attribute},
		{"regex", &spec.Regex},
	} {
		v, ok := obj.lookup(f.key)
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return spec, Errorf(EINVALID, "%s: %q must be a string, got %s", path, f.key, describe(v))
		}
		*f.dst = s
	}
	return spec, nil
}

func describe(v any) string {
	switch v.(type) {
	case *object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Name returns the definition name, usually the definition file's stem.
func (d *Definition) Name() string { return d.name }

// Root returns the top-level container.
func (d *Definition) Root() *Container { return d.root }

// Ref returns the document reference shared by the tree.
func (d *Definition) Ref() *DocumentRef { return d.ref }

// Bind makes doc the current document for every element of the definition.
// A nil doc unbinds.
func (d *Definition) Bind(doc Document) {
	d.ref.Set(doc)
}

// Bound reports whether a document is bound.
func (d *Definition) Bound() bool { return d.ref.Bound() }

// Get returns the top-level child with the given name.
func (d *Definition) Get(name string) (Node, bool) { return d.root.Get(name) }

// Value evaluates the named top-level element.
func (d *Definition) Value(name string) (string, bool) { return d.root.Value(name) }

// Names returns the top-level child names in order.
func (d *Definition) Names() []string { return d.root.Names() }

// Values returns the evaluated tree without the name envelope.
func (d *Definition) Values() *Record { return d.root.Values() }

// Serialize returns the evaluated tree as {name: {...}}.
func (d *Definition) Serialize() *Record { return d.root.Serialize() }

// DefinitionSource provides compiled definitions.
type DefinitionSource interface {
	// Definitions compiles a fresh set of definitions. Every call returns
	// new trees with their own DocumentRef, so results of separate calls
	// may be used concurrently.
	Definitions() ([]*Definition, error)
}
