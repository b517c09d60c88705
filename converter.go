package pagetrim

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be simplified HTML (e.g., from a Simplifier).
	Convert(html string) (string, error)
}
