package pagetrim

// Link is an outbound URL discovered on a visited page.
type Link struct {
	URL   string
	Text  string
	Depth int // number of hops from a seed URL
}

// LinkExtractor extracts outbound links from HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns the links it contains in document
	// order, resolved against baseURL and without duplicates.
	ExtractLinks(html string, baseURL string) ([]Link, error)
}
