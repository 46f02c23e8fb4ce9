// Package render flattens the HTML-flavored text the metadata service returns
// in review bodies and synopses into plain wrapped terminal lines.
package render

import (
	"html"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	nethtml "golang.org/x/net/html"
)

// blockTags start a new paragraph when encountered mid-flow.
var blockTags = map[string]bool{
	"p":          true,
	"div":        true,
	"br":         true,
	"li":         true,
	"blockquote": true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"tr":         true,
}

// Lines renders a possibly HTML-bearing fragment as plain text wrapped to
// width. Tags are dropped, entities unescaped, and block elements become
// paragraph breaks. Plain text passes through unchanged apart from wrapping.
func Lines(raw string, width int) []string {
	text := Flatten(raw)
	if text == "" {
		return nil
	}
	return wrapParagraphs(text, width)
}

// Flatten strips markup from a fragment and returns plain text with single
// newlines separating paragraphs.
func Flatten(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return collapseSpaces(html.UnescapeString(raw))
	}
	body := findBody(doc)
	if body == nil {
		return collapseSpaces(html.UnescapeString(raw))
	}

	var paragraphs []string
	var current strings.Builder
	flush := func() {
		p := collapseSpaces(current.String())
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
		current.Reset()
	}
	var walk func(node *nethtml.Node)
	walk = func(node *nethtml.Node) {
		switch node.Type {
		case nethtml.TextNode:
			current.WriteString(node.Data)
			return
		case nethtml.ElementNode:
			if blockTags[strings.ToLower(node.Data)] {
				flush()
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(body)
	flush()

	return strings.Join(paragraphs, "\n")
}

func wrapParagraphs(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, p := range strings.Split(text, "\n") {
		wrapped := wordwrap.String(p, width)
		out = append(out, strings.Split(wrapped, "\n")...)
	}
	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func findBody(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBody(child); found != nil {
			return found
		}
	}
	return nil
}
