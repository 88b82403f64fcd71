package mock

import "github.com/fwojciec/lodestone"

// Compile-time interface verification.
var (
	_ lodestone.Parser    = (*Parser)(nil)
	_ lodestone.Document  = (*Document)(nil)
	_ lodestone.Selection = (*Selection)(nil)
)

// Parser is a mock implementation of lodestone.Parser.
type Parser struct {
	ParseFn func(markup string) (lodestone.Document, error)
}

func (p *Parser) Parse(markup string) (lodestone.Document, error) {
	return p.ParseFn(markup)
}

// Document is a mock implementation of lodestone.Document.
type Document struct {
	SelectFirstFn func(selector string) (lodestone.Selection, bool)
}

func (d *Document) SelectFirst(selector string) (lodestone.Selection, bool) {
	return d.SelectFirstFn(selector)
}

// Selection is a mock implementation of lodestone.Selection.
type Selection struct {
	SelectFirstFn func(selector string) (lodestone.Selection, bool)
	TextFn        func() string
	AttrFn        func(name string) (string, bool)
}

func (s *Selection) SelectFirst(selector string) (lodestone.Selection, bool) {
	return s.SelectFirstFn(selector)
}

func (s *Selection) Text() string {
	return s.TextFn()
}

func (s *Selection) Attr(name string) (string, bool) {
	return s.AttrFn(name)
}
