package html

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pagetrim"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ pagetrim.Renderer = (*Renderer)(nil)

// Renderer serializes pagetrim documents to HTML markup.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render serializes every top-level node of doc in order.
func (r *Renderer) Render(doc *pagetrim.Document) (string, error) {
	return r.RenderInner(doc, doc.Top())
}

// RenderInner serializes the children of id without id's own tags.
func (r *Renderer) RenderInner(doc *pagetrim.Document, id pagetrim.NodeID) (string, error) {
	var buf bytes.Buffer
	for _, c := range doc.Children(id) {
		if err := html.Render(&buf, toNode(doc, c)); err != nil {
			return "", pagetrim.Errorf(pagetrim.EINTERNAL, "failed to render HTML: %v", err)
		}
	}
	return buf.String(), nil
}

// toNode copies the subtree at id into an x/net/html tree.
func toNode(doc *pagetrim.Document, id pagetrim.NodeID) *html.Node {
	root := newNode(doc, id)
	type frame struct {
		id  pagetrim.NodeID
		dst *html.Node
	}
	stack := []frame{{id: id, dst: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range doc.Children(f.id) {
			n := newNode(doc, c)
			f.dst.AppendChild(n)
			stack = append(stack, frame{id: c, dst: n})
		}
	}
	return root
}

func newNode(doc *pagetrim.Document, id pagetrim.NodeID) *html.Node {
	switch doc.Kind(id) {
	case pagetrim.ElementNode:
		tag := doc.Tag(id)
		n := &html.Node{
			Type:     html.ElementNode,
			Data:     tag,
			DataAtom: atom.Lookup([]byte(strings.ToLower(tag))),
		}
		for _, a := range doc.Attrs(id) {
			n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
		return n
	case pagetrim.CommentNode:
		return &html.Node{Type: html.CommentNode, Data: doc.Data(id)}
	default:
		return &html.Node{Type: html.TextNode, Data: doc.Data(id)}
	}
}
