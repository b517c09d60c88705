package pagetrim_test

import (
	"testing"

	"github.com/fwojciec/pagetrim"
	"github.com/stretchr/testify/assert"
)

func TestDefaultClassification(t *testing.T) {
	t.Parallel()

	c := pagetrim.DefaultClassification()

	assert.True(t, c.IsIgnored("script"))
	assert.True(t, c.IsIgnored("HEAD"), "tag lookups are case-insensitive")
	assert.True(t, c.IsImportant("p"))
	assert.True(t, c.IsImportant("html"))
	assert.False(t, c.IsImportant("div"))
	assert.False(t, c.IsImportant("a"))
	assert.Empty(t, c.StandaloneElements())
	assert.Equal(t, []string{"role", "title", "type"}, c.ImportantAttributes())
}

func TestClassification_WithLinks(t *testing.T) {
	t.Parallel()

	base := pagetrim.DefaultClassification()
	c := base.WithLinks()

	assert.True(t, c.IsImportant("a"))
	assert.True(t, c.IsStandalone("a"))
	assert.True(t, c.IsImportantAttribute("href"))

	// The receiver is left untouched.
	assert.False(t, base.IsImportant("a"))
	assert.False(t, base.IsImportantAttribute("href"))
}

func TestClassification_WithImages(t *testing.T) {
	t.Parallel()

	c := pagetrim.DefaultClassification().WithImages()

	assert.True(t, c.IsImportant("img"))
	assert.True(t, c.IsStandalone("img"))
	assert.True(t, c.IsImportantAttribute("src"))
	assert.True(t, c.IsImportantAttribute("alt"))
	assert.False(t, c.IsImportant("a"))
}

func TestClassification_With(t *testing.T) {
	t.Parallel()

	c := pagetrim.DefaultClassification().
		WithImportant("Article", " ").
		WithIgnored("nav").
		WithStandalone("hr").
		WithAttributes("id")

	assert.True(t, c.IsImportant("article"))
	assert.True(t, c.IsIgnored("nav"))
	assert.True(t, c.IsStandalone("hr"))
	assert.True(t, c.IsImportantAttribute("id"))
	assert.NotContains(t, c.ImportantElements(), "")
}
