// Package goquery implements lodestone's document interfaces on top of
// github.com/PuerkitoBio/goquery and cascadia CSS selectors.
package goquery

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/lodestone"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ lodestone.Parser    = (*Parser)(nil)
	_ lodestone.Document  = (*Document)(nil)
	_ lodestone.Selection = (*Selection)(nil)
)

// Parser parses HTML markup into goquery documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses markup with the HTML5 parsing algorithm. Fragments are
// accepted and wrapped in an implied html/body.
func (p *Parser) Parse(markup string) (lodestone.Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, lodestone.Errorf(lodestone.EINVALID, "failed to parse HTML: %v", err)
	}
	return NewDocument(goquery.NewDocumentFromNode(root)), nil
}

// Document adapts a *goquery.Document to lodestone.Document.
type Document struct {
	doc *goquery.Document
}

// NewDocument wraps doc.
func NewDocument(doc *goquery.Document) *Document {
	return &Document{doc: doc}
}

// SelectFirst returns the first element matching selector in document order.
// An invalid selector matches nothing.
func (d *Document) SelectFirst(selector string) (lodestone.Selection, bool) {
	return selectFirst(d.doc.Selection, selector)
}

// Selection adapts a single-element *goquery.Selection to lodestone.Selection.
type Selection struct {
	sel *goquery.Selection
}

// SelectFirst returns the first descendant matching selector.
func (s *Selection) SelectFirst(selector string) (lodestone.Selection, bool) {
	return selectFirst(s.sel, selector)
}

// Text returns the combined text of the element and its descendants,
// untrimmed.
func (s *Selection) Text() string {
	return s.sel.Text()
}

// Attr returns the named attribute's value.
func (s *Selection) Attr(name string) (string, bool) {
	return s.sel.Attr(name)
}

// compiled caches selector compilation results, failures included.
// Definitions reuse a small fixed set of selectors across every document.
var compiled sync.Map // selector -> compiledSelector

type compiledSelector struct {
	m   cascadia.Selector
	err error
}

func compile(selector string) (cascadia.Selector, error) {
	if v, ok := compiled.Load(selector); ok {
		c := v.(compiledSelector)
		return c.m, c.err
	}
	m, err := cascadia.Compile(selector)
	compiled.Store(selector, compiledSelector{m: m, err: err})
	return m, err
}

func selectFirst(from *goquery.Selection, selector string) (lodestone.Selection, bool) {
	m, err := compile(selector)
	if err != nil {
		return nil, false
	}
	found := from.FindMatcher(m).First()
	if found.Length() == 0 {
		return nil, false
	}
	return &Selection{sel: found}, true
}
