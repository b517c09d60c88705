package pagetrim

// Parser builds a Document from raw markup.
type Parser interface {
	// Parse reads a complete HTML document. The <html> element becomes the
	// root element. Returns EPARSE if the markup cannot be parsed.
	Parse(markup string) (*Document, error)

	// ParseFragment reads a body fragment and wraps it in an <html> root.
	ParseFragment(markup string) (*Document, error)
}

// Renderer serializes a Document back to markup.
type Renderer interface {
	// Render returns the markup of the top-level sequence, normally the
	// root element.
	Render(doc *Document) (string, error)
}

// Simplifier reduces a Document in place to its content-bearing structure.
// It has no failure mode: any well-formed Document is accepted.
type Simplifier interface {
	Simplify(doc *Document)
}
