package lodestone

// Document is a parsed HTML document that can be queried with CSS selectors.
type Document interface {
	// SelectFirst returns the first element matching selector.
	// Returns false if nothing matches.
	SelectFirst(selector string) (Selection, bool)
}

// Selection is a single element within a Document.
type Selection interface {
	// SelectFirst returns the first descendant matching selector.
	SelectFirst(selector string) (Selection, bool)

	// Text returns the combined text content of the element and its descendants.
	Text() string

	// Attr returns the value of the named attribute.
	// Returns false if the attribute is not present.
	Attr(name string) (string, bool)
}

// Parser turns raw markup into a Document.
type Parser interface {
	Parse(markup string) (Document, error)
}

// DocumentRef holds the document currently targeted by a definition.
// A single DocumentRef is shared by pointer across a whole element tree so
// that replacing the document is visible to every element at once.
//
// DocumentRef is not safe for concurrent use. Callers extracting
// concurrently should use one Definition per goroutine.
type DocumentRef struct {
	doc Document
}

// Document returns the current document, or nil if none has been set.
func (r *DocumentRef) Document() Document {
	if r == nil {
		return nil
	}
	return r.doc
}

// Set replaces the current document. A nil doc clears the reference.
func (r *DocumentRef) Set(doc Document) {
	r.doc = doc
}

// Bound reports whether a document has been set.
func (r *DocumentRef) Bound() bool {
	return r != nil && r.doc != nil
}
