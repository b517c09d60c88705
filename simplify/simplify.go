// Package simplify reduces an HTML document tree to the structure that
// carries content: ignored and hidden elements are removed, layout wrappers
// are flattened into their parent, and retained elements keep only the
// attributes allowed by a pagetrim.Classification.
package simplify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/pagetrim"
)

var _ pagetrim.Simplifier = (*Simplifier)(nil)

// Simplifier rewrites documents according to a classification.
// It holds no per-document state and is safe for concurrent use on
// distinct documents.
type Simplifier struct {
	cls *pagetrim.Classification
}

// New creates a Simplifier. A nil classification selects
// pagetrim.DefaultClassification.
func New(cls *pagetrim.Classification) *Simplifier {
	if cls == nil {
		cls = pagetrim.DefaultClassification()
	}
	return &Simplifier{cls: cls}
}

// Simplify mutates doc in place in a single depth-first pass.
func (s *Simplifier) Simplify(doc *pagetrim.Document) {
	w := &walker{doc: doc, cls: s.cls}
	w.run()
}

// position is where the traversal resumes. A zero node means the child list
// of parent is exhausted and parent itself must be finished.
type position struct {
	node   pagetrim.NodeID
	parent pagetrim.NodeID
}

type walker struct {
	doc *pagetrim.Document
	cls *pagetrim.Classification
}

func (w *walker) run() {
	top := w.doc.Top()
	pos := position{node: w.doc.FirstChild(top), parent: top}
	for {
		if pos.node != pagetrim.NoNode {
			pos = w.visit(pos.node)
			continue
		}
		if pos.parent == top {
			return
		}
		pos = w.finish(pos.parent)
	}
}

// after returns the position following id. It must be taken before id is
// removed or unwrapped; the handle is poisoned afterwards.
func (w *walker) after(id pagetrim.NodeID) position {
	return position{node: w.doc.NextSibling(id), parent: w.doc.Parent(id)}
}

// visit processes one node and returns where to continue.
func (w *walker) visit(id pagetrim.NodeID) position {
	switch w.doc.Kind(id) {
	case pagetrim.ElementNode:
		tag := strings.ToLower(w.doc.Tag(id))
		switch {
		case Hidden(w.doc, id), w.cls.IsIgnored(tag):
			next := w.after(id)
			w.doc.Remove(id)
			return next
		case w.cls.IsImportant(tag):
			w.doc.RetainAttrs(id, w.cls.IsImportantAttribute)
			return w.descend(id)
		default:
			return w.splice(id, tag)
		}
	case pagetrim.CommentNode:
		next := w.after(id)
		w.doc.Remove(id)
		return next
	default:
		return w.descend(id)
	}
}

func (w *walker) descend(id pagetrim.NodeID) position {
	if first := w.doc.FirstChild(id); first != pagetrim.NoNode {
		return position{node: first, parent: id}
	}
	return w.finish(id)
}

// finish runs once the subtree of id is done. Elements left without
// children are noise unless their tag is standalone.
func (w *walker) finish(id pagetrim.NodeID) position {
	next := w.after(id)
	if w.doc.Kind(id) == pagetrim.ElementNode && !w.doc.HasChildren(id) &&
		!w.cls.IsStandalone(w.doc.Tag(id)) {
		w.doc.Remove(id)
	}
	return next
}

// splice replaces a wrapper element by its children and continues with the
// first promoted child.
func (w *walker) splice(id pagetrim.NodeID, tag string) position {
	next := w.after(id)
	first, last := w.doc.Unwrap(id)
	if first == pagetrim.NoNode {
		return next
	}
	// Spans mark inline runs; other wrappers imply a word break.
	if tag != "span" {
		w.separate(first, last)
	}
	return position{node: first, parent: next.parent}
}

// separate inserts a single space at either seam where promoted text would
// otherwise run into adjacent text.
func (w *walker) separate(first, last pagetrim.NodeID) {
	if prev := w.doc.PrevSibling(first); w.isText(prev) && w.isText(first) &&
		!endsWithSpace(w.doc.Data(prev)) && !startsWithSpace(w.doc.Data(first)) {
		w.doc.InsertBefore(first, w.doc.NewText(" "))
	}
	if next := w.doc.NextSibling(last); w.isText(next) && w.isText(last) &&
		!endsWithSpace(w.doc.Data(last)) && !startsWithSpace(w.doc.Data(next)) {
		w.doc.InsertAfter(last, w.doc.NewText(" "))
	}
}

func (w *walker) isText(id pagetrim.NodeID) bool {
	return id != pagetrim.NoNode && w.doc.Kind(id) == pagetrim.TextNode
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && unicode.IsSpace(r)
}

func endsWithSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return s != "" && unicode.IsSpace(r)
}
