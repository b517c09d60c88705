package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pagetrim"
	"github.com/fwojciec/pagetrim/html"
	"github.com/fwojciec/pagetrim/htmltomarkdown"
	"github.com/fwojciec/pagetrim/simplify"
)

// Run executes the simplify command.
func (c *SimplifyCmd) Run(deps *Dependencies) error {
	input, err := c.read(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	cls, err := c.load()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagetrim.ErrorMessage(err))
		return err
	}

	parser := html.NewParser()
	parse := parser.Parse
	if c.Fragment {
		parse = parser.ParseFragment
	}
	doc, err := parse(input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagetrim.ErrorMessage(err))
		return err
	}

	simplify.New(cls).Simplify(doc)

	renderer := html.NewRenderer()
	var out string
	if c.Fragment && doc.Root() != pagetrim.NoNode {
		out, err = renderer.RenderInner(doc, doc.Root())
	} else {
		out, err = renderer.Render(doc)
	}
	if err != nil {
		return err
	}

	if c.Format == "markdown" {
		if out, err = htmltomarkdown.NewConverter().Convert(out); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagetrim.ErrorMessage(err))
			return err
		}
	}

	_, err = fmt.Fprintln(deps.Stdout, out)
	return err
}

func (c *SimplifyCmd) read(stdin io.Reader) (string, error) {
	if c.File == "" || c.File == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(c.File)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", c.File, err)
	}
	return string(b), nil
}
