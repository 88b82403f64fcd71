package lodestone

import "strings"

// Node is an entry of a Container: either an *Element or a *Container.
type Node interface {
	Name() string
	node()
}

var (
	_ Node = (*Element)(nil)
	_ Node = (*Container)(nil)
)

// Container is a named group of elements and nested containers. Every
// container in a tree shares its definition's DocumentRef.
type Container struct {
	name    string
	ref     *DocumentRef
	names   []string
	entries map[string]Node
}

// NewContainer creates an empty container reading documents from ref.
func NewContainer(name string, ref *DocumentRef) *Container {
	return &Container{
		name:    strings.ToLower(name),
		ref:     ref,
		entries: make(map[string]Node),
	}
}

// Name returns the lower-cased container name.
func (c *Container) Name() string { return c.name }

// Ref returns the shared document reference.
func (c *Container) Ref() *DocumentRef { return c.ref }

// Add inserts a child under its name.
// Returns EINVALID if an entry with the same name already exists.
func (c *Container) Add(n Node) error {
	if _, ok := c.entries[n.Name()]; ok {
		return Errorf(EINVALID, "container %q: duplicate entry %q", c.name, n.Name())
	}
	c.names = append(c.names, n.Name())
	c.entries[n.Name()] = n
	return nil
}

// Get returns the child with the given name. Lookup is case-insensitive
// because names are stored lower-cased. Returns false if there is no such child.
func (c *Container) Get(name string) (Node, bool) {
	n, ok := c.entries[strings.ToLower(name)]
	return n, ok
}

// Element returns the element child with the given name.
func (c *Container) Element(name string) (*Element, bool) {
	e, ok := c.entries[strings.ToLower(name)].(*Element)
	return e, ok
}

// Container returns the nested container with the given name.
func (c *Container) Container(name string) (*Container, bool) {
	sub, ok := c.entries[strings.ToLower(name)].(*Container)
	return sub, ok
}

// Value evaluates the named element against the current document.
// Returns false if name is not an element of this container.
func (c *Container) Value(name string) (string, bool) {
	e, ok := c.Element(name)
	if !ok {
		return "", false
	}
	return e.Evaluate(c.ref.Document()), true
}

// Names returns the child names in insertion order.
func (c *Container) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Len returns the number of children.
func (c *Container) Len() int { return len(c.names) }

// Values evaluates every child against the current document. Elements map
// to their value and nested containers to their own Values.
func (c *Container) Values() *Record {
	doc := c.ref.Document()
	rec := NewRecord()
	for _, name := range c.names {
		switch n := c.entries[name].(type) {
		case *Element:
			rec.Set(name, n.Evaluate(doc))
		case *Container:
			rec.Set(name, n.Values())
		}
	}
	return rec
}

// Serialize returns the container's values wrapped under its own name.
func (c *Container) Serialize() *Record {
	rec := NewRecord()
	rec.Set(c.name, c.Values())
	return rec
}

// Walk calls fn for every element in the tree with the path of container
// names leading to it, in insertion order. Walk stops at the first error.
func (c *Container) Walk(fn func(path []string, e *Element) error) error {
	return c.walk(nil, fn)
}

func (c *Container) walk(path []string, fn func([]string, *Element) error) error {
	for _, name := range c.names {
		switch n := c.entries[name].(type) {
		case *Element:
			if err := fn(append(path[:len(path):len(path)], name), n); err != nil {
				return err
			}
		case *Container:
			if err := n.walk(append(path[:len(path):len(path)], name), fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Container) node() {}
