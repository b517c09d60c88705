package simplify

import (
	"strings"

	"github.com/fwojciec/pagetrim"
)

// Hidden reports whether an element is hidden by its inline style or by a
// utility class. This is a textual check, not a CSS cascade: a style hides
// the element only if it contains "display: none" or "display:none"
// verbatim, and a class hides it only if one of its space-separated tokens
// is "hidden" once any variant prefix up to the last colon is dropped
// (so "md:hidden" matches but "hidden-sm" does not).
func Hidden(doc *pagetrim.Document, id pagetrim.NodeID) bool {
	if style, ok := doc.Attr(id, "style"); ok {
		if strings.Contains(style, "display: none") || strings.Contains(style, "display:none") {
			return true
		}
	}
	if class, ok := doc.Attr(id, "class"); ok {
		for _, token := range strings.Split(class, " ") {
			if i := strings.LastIndexByte(token, ':'); i >= 0 {
				token = token[i+1:]
			}
			if token == "hidden" {
				return true
			}
		}
	}
	return false
}
