package pagetrim

import (
	"slices"
	"strings"
)

// Default classification lists.
var (
	defaultImportantAttributes = []string{"title", "role", "type"}

	defaultIgnoreElements = []string{
		"script", "style", "input", "textarea", "form", "select", "option", "label", "head",
		"link", "meta", "title", "iframe", "button",
	}

	defaultImportantElements = []string{
		"p", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li", "dl", "dt", "dd", "table",
		"thead", "tbody", "tr", "td", "th", "body", "html", "pre",
	}
)

// Classification describes which tags and attributes carry content.
//
// A Classification is immutable: the With* methods return a modified copy,
// so one value can be shared by simplifiers running concurrently.
type Classification struct {
	important  map[string]struct{}
	ignore     map[string]struct{}
	standalone map[string]struct{}
	attributes map[string]struct{}
}

// DefaultClassification returns the classification used for crawled pages:
// text structure and tables are kept, interactive and metadata elements are
// dropped, and links and images are treated as layout noise.
func DefaultClassification() *Classification {
	return &Classification{
		important:  newSet(defaultImportantElements),
		ignore:     newSet(defaultIgnoreElements),
		standalone: newSet(nil),
		attributes: newSet(defaultImportantAttributes),
	}
}

// WithLinks returns a copy that keeps anchors and their href, even when
// an anchor has no content.
func (c *Classification) WithLinks() *Classification {
	return c.WithImportant("a").WithStandalone("a").WithAttributes("href")
}

// WithImages returns a copy that keeps images with their src and alt.
func (c *Classification) WithImages() *Classification {
	return c.WithImportant("img").WithStandalone("img").WithAttributes("src", "alt")
}

// WithImportant returns a copy with additional retained element tags.
func (c *Classification) WithImportant(tags ...string) *Classification {
	cp := c.clone()
	addAll(cp.important, tags)
	return cp
}

// WithIgnored returns a copy with additional dropped element tags.
func (c *Classification) WithIgnored(tags ...string) *Classification {
	cp := c.clone()
	addAll(cp.ignore, tags)
	return cp
}

// WithStandalone returns a copy with additional tags that survive without children.
func (c *Classification) WithStandalone(tags ...string) *Classification {
	cp := c.clone()
	addAll(cp.standalone, tags)
	return cp
}

// WithAttributes returns a copy with additional retained attribute names.
func (c *Classification) WithAttributes(names ...string) *Classification {
	cp := c.clone()
	addAll(cp.attributes, names)
	return cp
}

// IsImportant reports whether elements with tag are retained.
func (c *Classification) IsImportant(tag string) bool { return has(c.important, tag) }

// IsIgnored reports whether elements with tag are dropped with their subtree.
func (c *Classification) IsIgnored(tag string) bool { return has(c.ignore, tag) }

// IsStandalone reports whether elements with tag are kept even when empty.
func (c *Classification) IsStandalone(tag string) bool { return has(c.standalone, tag) }

// IsImportantAttribute reports whether an attribute survives on retained elements.
func (c *Classification) IsImportantAttribute(name string) bool { return has(c.attributes, name) }

// ImportantElements returns the retained tags, sorted.
func (c *Classification) ImportantElements() []string { return sorted(c.important) }

// IgnoredElements returns the dropped tags, sorted.
func (c *Classification) IgnoredElements() []string { return sorted(c.ignore) }

// StandaloneElements returns the tags kept even when empty, sorted.
func (c *Classification) StandaloneElements() []string { return sorted(c.standalone) }

// ImportantAttributes returns the retained attribute names, sorted.
func (c *Classification) ImportantAttributes() []string { return sorted(c.attributes) }

func (c *Classification) clone() *Classification {
	return &Classification{
		important:  cloneSet(c.important),
		ignore:     cloneSet(c.ignore),
		standalone: cloneSet(c.standalone),
		attributes: cloneSet(c.attributes),
	}
}

func newSet(values []string) map[string]struct{} {
	s := make(map[string]struct{}, len(values))
	addAll(s, values)
	return s
}

func cloneSet(s map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func addAll(s map[string]struct{}, values []string) {
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			s[v] = struct{}{}
		}
	}
}

func has(s map[string]struct{}, name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

func sorted(s map[string]struct{}) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
