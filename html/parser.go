// Package html converts between HTML markup and pagetrim documents using
// golang.org/x/net/html.
package html

import (
	"strings"

	"github.com/fwojciec/pagetrim"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ pagetrim.Parser = (*Parser)(nil)

// Parser builds pagetrim documents with the HTML5 parsing algorithm.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses a complete HTML document. The parser recovers from malformed
// markup the way browsers do, so only empty input is rejected.
func (p *Parser) Parse(markup string) (*pagetrim.Document, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, pagetrim.Errorf(pagetrim.EPARSE, "empty HTML input")
	}

	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, pagetrim.Errorf(pagetrim.EPARSE, "failed to parse HTML: %v", err)
	}

	doc := pagetrim.NewDocument()
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		copyTree(doc, doc.Top(), c)
	}
	return doc, nil
}

// ParseFragment parses markup in a body context and places the resulting
// nodes under a synthetic html root element.
func (p *Parser) ParseFragment(markup string) (*pagetrim.Document, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, pagetrim.Errorf(pagetrim.EPARSE, "failed to parse HTML fragment: %v", err)
	}

	doc := pagetrim.NewDocument()
	root := doc.NewElement("html")
	doc.AppendChild(doc.Top(), root)
	for _, n := range nodes {
		copyTree(doc, root, n)
	}
	return doc, nil
}

type pending struct {
	src    *html.Node
	parent pagetrim.NodeID
}

// copyTree appends a copy of src under parent. Doctype nodes are dropped.
func copyTree(doc *pagetrim.Document, parent pagetrim.NodeID, src *html.Node) {
	stack := []pending{{src: src, parent: parent}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var id pagetrim.NodeID
		switch p.src.Type {
		case html.ElementNode:
			id = doc.NewElement(p.src.Data, attributes(p.src)...)
		case html.TextNode, html.RawNode:
			id = doc.NewText(p.src.Data)
		case html.CommentNode:
			id = doc.NewComment(p.src.Data)
		default:
			continue
		}
		doc.AppendChild(p.parent, id)

		// Push in reverse so children are appended in document order.
		for c := p.src.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, pending{src: c, parent: id})
		}
	}
}

func attributes(n *html.Node) []pagetrim.Attribute {
	if len(n.Attr) == 0 {
		return nil
	}
	attrs := make([]pagetrim.Attribute, 0, len(n.Attr))
	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		attrs = append(attrs, pagetrim.Attribute{Key: key, Val: a.Val})
	}
	return attrs
}
