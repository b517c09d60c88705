package pagetrim

import "fmt"

// NodeID is a stable handle to a node owned by a Document.
// The zero value is NoNode.
type NodeID uint32

// NoNode is returned by navigation methods when there is no such node.
const NoNode NodeID = 0

// NodeKind identifies the variant of a node.
type NodeKind uint8

// Node kinds. DocumentNode is the invisible container of the top-level
// sequence; it is never serialized.
const (
	DocumentNode NodeKind = iota + 1
	ElementNode
	TextNode
	CommentNode
)

func (k NodeKind) String() string {
	switch k {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	default:
		return "unknown"
	}
}

// Attribute is a single element attribute.
type Attribute struct {
	Key string
	Val string
}

type node struct {
	kind  NodeKind
	data  string // tag name for elements, content for text and comments
	attrs []Attribute

	parent      NodeID
	firstChild  NodeID
	lastChild   NodeID
	prevSibling NodeID
	nextSibling NodeID

	removed bool
}

// Document is a mutable HTML tree. All nodes live in a single arena and are
// referenced by NodeID. Removing a node poisons its handle and the handles of
// its whole subtree: any later use panics instead of reading stale links.
//
// A Document is not safe for concurrent use.
type Document struct {
	nodes []node
	top   NodeID
}

// NewDocument returns an empty document holding only the top-level container.
func NewDocument() *Document {
	d := &Document{nodes: make([]node, 2, 64)}
	d.nodes[1] = node{kind: DocumentNode}
	d.top = 1
	return d
}

// Top returns the container of the top-level sequence.
func (d *Document) Top() NodeID {
	return d.top
}

// Root returns the first element of the top-level sequence, or NoNode.
func (d *Document) Root() NodeID {
	for c := d.nodes[d.top].firstChild; c != NoNode; c = d.nodes[c].nextSibling {
		if d.nodes[c].kind == ElementNode {
			return c
		}
	}
	return NoNode
}

func (d *Document) newNode(n node) NodeID {
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

// NewElement creates an unattached element. Duplicate attribute keys keep
// their first value.
func (d *Document) NewElement(tag string, attrs ...Attribute) NodeID {
	n := node{kind: ElementNode, data: tag}
	for _, a := range attrs {
		if indexAttr(n.attrs, a.Key) < 0 {
			n.attrs = append(n.attrs, a)
		}
	}
	return d.newNode(n)
}

// NewText creates an unattached text node.
func (d *Document) NewText(content string) NodeID {
	return d.newNode(node{kind: TextNode, data: content})
}

// NewComment creates an unattached comment node.
func (d *Document) NewComment(content string) NodeID {
	return d.newNode(node{kind: CommentNode, data: content})
}

// get returns the node for a live handle and panics otherwise.
func (d *Document) get(id NodeID) *node {
	if id == NoNode || int(id) >= len(d.nodes) {
		panic(fmt.Sprintf("pagetrim: invalid node handle %d", id))
	}
	n := &d.nodes[id]
	if n.removed {
		panic(fmt.Sprintf("pagetrim: use of removed node %d", id))
	}
	return n
}

// Live reports whether id refers to a node that has not been removed.
func (d *Document) Live(id NodeID) bool {
	return id != NoNode && int(id) < len(d.nodes) && !d.nodes[id].removed
}

// Kind returns the kind of a node.
func (d *Document) Kind(id NodeID) NodeKind { return d.get(id).kind }

// Tag returns the tag name of an element, or "" for other kinds.
func (d *Document) Tag(id NodeID) string {
	n := d.get(id)
	if n.kind != ElementNode {
		return ""
	}
	return n.data
}

// Data returns the content of a text or comment node, or the tag of an element.
func (d *Document) Data(id NodeID) string { return d.get(id).data }

// SetData replaces the content of a text or comment node.
func (d *Document) SetData(id NodeID, data string) {
	n := d.get(id)
	if n.kind != TextNode && n.kind != CommentNode {
		panic("pagetrim: SetData called on a " + n.kind.String() + " node")
	}
	n.data = data
}

// Parent returns the parent of a node. Top-level nodes return Top().
func (d *Document) Parent(id NodeID) NodeID { return d.get(id).parent }

// FirstChild returns the first child of a node.
func (d *Document) FirstChild(id NodeID) NodeID { return d.get(id).firstChild }

// LastChild returns the last child of a node.
func (d *Document) LastChild(id NodeID) NodeID { return d.get(id).lastChild }

// NextSibling returns the following sibling of a node.
func (d *Document) NextSibling(id NodeID) NodeID { return d.get(id).nextSibling }

// PrevSibling returns the preceding sibling of a node.
func (d *Document) PrevSibling(id NodeID) NodeID { return d.get(id).prevSibling }

// HasChildren reports whether a node has at least one child.
func (d *Document) HasChildren(id NodeID) bool { return d.get(id).firstChild != NoNode }

// Children returns the children of a node in order.
func (d *Document) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := d.get(id).firstChild; c != NoNode; c = d.nodes[c].nextSibling {
		out = append(out, c)
	}
	return out
}

// Attrs returns a copy of an element's attributes in insertion order.
func (d *Document) Attrs(id NodeID) []Attribute {
	n := d.get(id)
	if len(n.attrs) == 0 {
		return nil
	}
	out := make([]Attribute, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// Attr returns the value of an attribute.
func (d *Document) Attr(id NodeID, key string) (string, bool) {
	n := d.get(id)
	if i := indexAttr(n.attrs, key); i >= 0 {
		return n.attrs[i].Val, true
	}
	return "", false
}

// SetAttr sets an attribute, replacing the value in place if the key exists.
func (d *Document) SetAttr(id NodeID, key, val string) {
	n := d.get(id)
	if n.kind != ElementNode {
		panic("pagetrim: SetAttr called on a " + n.kind.String() + " node")
	}
	if i := indexAttr(n.attrs, key); i >= 0 {
		n.attrs[i].Val = val
		return
	}
	n.attrs = append(n.attrs, Attribute{Key: key, Val: val})
}

// RetainAttrs drops every attribute whose key is rejected by keep.
// The order of the remaining attributes is preserved.
func (d *Document) RetainAttrs(id NodeID, keep func(key string) bool) {
	n := d.get(id)
	kept := n.attrs[:0]
	for _, a := range n.attrs {
		if keep(a.Key) {
			kept = append(kept, a)
		}
	}
	clear(n.attrs[len(kept):])
	n.attrs = kept
}

func indexAttr(attrs []Attribute, key string) int {
	for i, a := range attrs {
		if a.Key == key {
			return i
		}
	}
	return -1
}

// checkInsert validates that child may be linked under parent. It runs
// before any link is touched so a failed insert leaves the tree unchanged.
func (d *Document) checkInsert(parent, child NodeID) {
	p, c := d.get(parent), d.get(child)
	if p.kind != ElementNode && p.kind != DocumentNode {
		panic("pagetrim: cannot insert into a " + p.kind.String() + " node")
	}
	if child == d.top {
		panic("pagetrim: cannot insert the document container")
	}
	if c.parent != NoNode || c.prevSibling != NoNode || c.nextSibling != NoNode {
		panic("pagetrim: insert called for an attached child node")
	}
	for a := parent; a != NoNode; a = d.nodes[a].parent {
		if a == child {
			panic("pagetrim: insert would create a cycle")
		}
	}
}

// AppendChild adds an unattached node as the last child of parent.
func (d *Document) AppendChild(parent, child NodeID) {
	d.checkInsert(parent, child)
	p := &d.nodes[parent]
	c := &d.nodes[child]
	last := p.lastChild
	if last != NoNode {
		d.nodes[last].nextSibling = child
	} else {
		p.firstChild = child
	}
	p.lastChild = child
	c.parent = parent
	c.prevSibling = last
}

// InsertBefore inserts an unattached node immediately before ref.
func (d *Document) InsertBefore(ref, child NodeID) {
	parent := d.get(ref).parent
	if parent == NoNode {
		panic("pagetrim: InsertBefore called with an unattached reference node")
	}
	d.checkInsert(parent, child)
	r := &d.nodes[ref]
	c := &d.nodes[child]
	prev := r.prevSibling
	if prev != NoNode {
		d.nodes[prev].nextSibling = child
	} else {
		d.nodes[parent].firstChild = child
	}
	c.parent = parent
	c.prevSibling = prev
	c.nextSibling = ref
	r.prevSibling = child
}

// InsertAfter inserts an unattached node immediately after ref.
func (d *Document) InsertAfter(ref, child NodeID) {
	if next := d.get(ref).nextSibling; next != NoNode {
		d.InsertBefore(next, child)
		return
	}
	parent := d.nodes[ref].parent
	if parent == NoNode {
		panic("pagetrim: InsertAfter called with an unattached reference node")
	}
	d.AppendChild(parent, child)
}

// Detach unlinks a node from its parent and siblings. The node keeps its
// subtree and may be inserted again. Detaching an unattached node is a no-op.
func (d *Document) Detach(id NodeID) {
	n := d.get(id)
	parent := n.parent
	if parent == NoNode {
		return
	}
	prev, next := n.prevSibling, n.nextSibling
	if prev != NoNode {
		d.nodes[prev].nextSibling = next
	} else {
		d.nodes[parent].firstChild = next
	}
	if next != NoNode {
		d.nodes[next].prevSibling = prev
	} else {
		d.nodes[parent].lastChild = prev
	}
	n.parent, n.prevSibling, n.nextSibling = NoNode, NoNode, NoNode
}

// Remove detaches a node and poisons it together with its subtree.
func (d *Document) Remove(id NodeID) {
	if id == d.top {
		panic("pagetrim: cannot remove the document container")
	}
	d.Detach(id)
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for c := d.nodes[cur].firstChild; c != NoNode; c = d.nodes[c].nextSibling {
			stack = append(stack, c)
		}
		d.nodes[cur] = node{removed: true}
	}
}

// Unwrap replaces an attached node by its children, in order, at the
// position it occupied. The node itself is poisoned. It returns the first and
// last promoted child, or NoNode twice when the node had no children.
func (d *Document) Unwrap(id NodeID) (first, last NodeID) {
	n := d.get(id)
	if id == d.top {
		panic("pagetrim: cannot unwrap the document container")
	}
	parent := n.parent
	if parent == NoNode {
		panic("pagetrim: Unwrap called for an unattached node")
	}
	first, last = n.firstChild, n.lastChild
	if first == NoNode {
		d.Remove(id)
		return NoNode, NoNode
	}
	for c := first; c != NoNode; c = d.nodes[c].nextSibling {
		d.nodes[c].parent = parent
	}
	prev, next := n.prevSibling, n.nextSibling
	d.nodes[first].prevSibling = prev
	d.nodes[last].nextSibling = next
	if prev != NoNode {
		d.nodes[prev].nextSibling = first
	} else {
		d.nodes[parent].firstChild = first
	}
	if next != NoNode {
		d.nodes[next].prevSibling = last
	} else {
		d.nodes[parent].lastChild = last
	}
	d.nodes[id] = node{removed: true}
	return first, last
}

// Walk calls fn for id and every node below it in document order.
func (d *Document) Walk(id NodeID, fn func(NodeID)) {
	d.get(id)
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		for c := d.nodes[cur].lastChild; c != NoNode; c = d.nodes[c].prevSibling {
			stack = append(stack, c)
		}
	}
}

// Len returns the number of nodes reachable from the top-level container,
// not counting the container itself.
func (d *Document) Len() int {
	count := -1
	d.Walk(d.top, func(NodeID) { count++ })
	return count
}
