package html_test

import (
	"testing"

	"github.com/fwojciec/pagetrim"
	"github.com/fwojciec/pagetrim/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("builds document tree without doctype", func(t *testing.T) {
		t.Parallel()

		doc, err := html.NewParser().Parse(`<!DOCTYPE html><html><head><title>T</title></head><body><p id="a">Hi</p></body></html>`)
		require.NoError(t, err)

		root := doc.Root()
		require.NotEqual(t, pagetrim.NoNode, root)
		assert.Equal(t, "html", doc.Tag(root))
		assert.Len(t, doc.Children(doc.Top()), 1)

		children := doc.Children(root)
		require.Len(t, children, 2)
		assert.Equal(t, "head", doc.Tag(children[0]))
		assert.Equal(t, "body", doc.Tag(children[1]))

		p := doc.FirstChild(children[1])
		assert.Equal(t, "p", doc.Tag(p))
		id, ok := doc.Attr(p, "id")
		assert.True(t, ok)
		assert.Equal(t, "a", id)
		assert.Equal(t, "Hi", doc.Data(doc.FirstChild(p)))
	})

	t.Run("recovers from malformed markup", func(t *testing.T) {
		t.Parallel()

		doc, err := html.NewParser().Parse(`<div><p>unclosed<b>bold</div>`)
		require.NoError(t, err)
		assert.Equal(t, "html", doc.Tag(doc.Root()))
	})

	t.Run("keeps comments", func(t *testing.T) {
		t.Parallel()

		doc, err := html.NewParser().Parse(`<html><body><!-- note --><p>x</p></body></html>`)
		require.NoError(t, err)

		var comments int
		doc.Walk(doc.Top(), func(id pagetrim.NodeID) {
			if doc.Kind(id) == pagetrim.CommentNode {
				comments++
				assert.Equal(t, " note ", doc.Data(id))
			}
		})
		assert.Equal(t, 1, comments)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := html.NewParser().Parse("  \n ")
		assert.Equal(t, pagetrim.EPARSE, pagetrim.ErrorCode(err))
	})
}

func TestParser_ParseFragment(t *testing.T) {
	t.Parallel()

	t.Run("wraps fragment in html root", func(t *testing.T) {
		t.Parallel()

		doc, err := html.NewParser().ParseFragment(`<p>One</p>text<div>Two</div>`)
		require.NoError(t, err)

		root := doc.Root()
		assert.Equal(t, "html", doc.Tag(root))
		children := doc.Children(root)
		require.Len(t, children, 3)
		assert.Equal(t, "p", doc.Tag(children[0]))
		assert.Equal(t, pagetrim.TextNode, doc.Kind(children[1]))
		assert.Equal(t, "div", doc.Tag(children[2]))
	})

	t.Run("accepts empty fragment", func(t *testing.T) {
		t.Parallel()

		doc, err := html.NewParser().ParseFragment("")
		require.NoError(t, err)
		assert.False(t, doc.HasChildren(doc.Root()))
	})

	t.Run("keeps first duplicate attribute", func(t *testing.T) {
		t.Parallel()

		doc, err := html.NewParser().ParseFragment(`<p id="first" id="second">x</p>`)
		require.NoError(t, err)

		p := doc.FirstChild(doc.Root())
		id, _ := doc.Attr(p, "id")
		assert.Equal(t, "first", id)
	})
}

func TestRenderer(t *testing.T) {
	t.Parallel()

	t.Run("round trips fragment", func(t *testing.T) {
		t.Parallel()

		doc, err := html.NewParser().ParseFragment(`<p title="t">Hello <a href="/x">link</a></p><img src="a.png"/>`)
		require.NoError(t, err)

		out, err := html.NewRenderer().Render(doc)
		require.NoError(t, err)
		assert.Equal(t, `<html><p title="t">Hello <a href="/x">link</a></p><img src="a.png"/></html>`, out)
	})

	t.Run("renders inner content of a node", func(t *testing.T) {
		t.Parallel()

		doc, err := html.NewParser().ParseFragment(`<p>a</p>b`)
		require.NoError(t, err)

		out, err := html.NewRenderer().RenderInner(doc, doc.Root())
		require.NoError(t, err)
		assert.Equal(t, `<p>a</p>b`, out)
	})

	t.Run("escapes text", func(t *testing.T) {
		t.Parallel()

		doc := pagetrim.NewDocument()
		p := doc.NewElement("p")
		doc.AppendChild(doc.Top(), p)
		doc.AppendChild(p, doc.NewText("a < b & c"))

		out, err := html.NewRenderer().Render(doc)
		require.NoError(t, err)
		assert.Equal(t, `<p>a &lt; b &amp; c</p>`, out)
	})

	t.Run("renders top-level sequence in order", func(t *testing.T) {
		t.Parallel()

		doc := pagetrim.NewDocument()
		doc.AppendChild(doc.Top(), doc.NewText("a"))
		p := doc.NewElement("p")
		doc.AppendChild(doc.Top(), p)
		doc.AppendChild(p, doc.NewText("b"))

		out, err := html.NewRenderer().Render(doc)
		require.NoError(t, err)
		assert.Equal(t, `a<p>b</p>`, out)
	})

	t.Run("renders empty document", func(t *testing.T) {
		t.Parallel()

		out, err := html.NewRenderer().Render(pagetrim.NewDocument())
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
