package mock

import "github.com/fwojciec/pagetrim"

var _ pagetrim.Parser = (*Parser)(nil)

// Parser is a mock implementation of pagetrim.Parser.
type Parser struct {
	ParseFn         func(markup string) (*pagetrim.Document, error)
	ParseFragmentFn func(markup string) (*pagetrim.Document, error)
}

func (p *Parser) Parse(markup string) (*pagetrim.Document, error) {
	return p.ParseFn(markup)
}

func (p *Parser) ParseFragment(markup string) (*pagetrim.Document, error) {
	return p.ParseFragmentFn(markup)
}

var _ pagetrim.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of pagetrim.Renderer.
type Renderer struct {
	RenderFn func(doc *pagetrim.Document) (string, error)
}

func (r *Renderer) Render(doc *pagetrim.Document) (string, error) {
	return r.RenderFn(doc)
}

var _ pagetrim.Simplifier = (*Simplifier)(nil)

// Simplifier is a mock implementation of pagetrim.Simplifier.
type Simplifier struct {
	SimplifyFn func(doc *pagetrim.Document)
}

func (s *Simplifier) Simplify(doc *pagetrim.Document) {
	s.SimplifyFn(doc)
}

var _ pagetrim.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagetrim.Converter.
type Converter struct {
	ConvertFn func(simplified string) (string, error)
}

func (c *Converter) Convert(simplified string) (string, error) {
	return c.ConvertFn(simplified)
}
