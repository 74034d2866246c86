// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document parses HTML pages and exposes the small query surface
// the extractors need: element children and siblings by tag, class
// tests, flattened text, first-link lookup and attribute access.
package document

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node wraps an element (or the document root) of a parsed HTML tree.
type Node struct {
	n *html.Node
}

// Parse reads an HTML document and returns its root node.
func Parse(r io.Reader) (*Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return &Node{n: root}, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

func wrap(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{n: n}
}

// Tag returns the lower-case element name, or "" for the document root.
func (n *Node) Tag() string {
	if n.n.Type != html.ElementNode {
		return ""
	}
	return n.n.Data
}

// Is reports whether the node is an element with one of the given tags.
func (n *Node) Is(tags ...string) bool {
	tag := n.Tag()
	if tag == "" {
		return false
	}
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute and whether it exists.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// Classes returns the whitespace-separated tokens of the class attribute.
func (n *Node) Classes() []string {
	v, _ := n.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether any class token contains substr. This matches
// the loose class sniffing the source pages require ("a-table" matches
// both "a-table" and "a-table--wide").
func (n *Node) HasClass(substr string) bool {
	for _, c := range n.Classes() {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

// Text returns the node's text content with all whitespace runs
// collapsed to a single space and the ends trimmed.
func (n *Node) Text() string {
	var parts []string
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		if h.Type == html.TextNode {
			parts = append(parts, strings.Fields(h.Data)...)
			return
		}
		if h.Type == html.ElementNode && (h.DataAtom == atom.Script || h.DataAtom == atom.Style) {
			return
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.n)
	return strings.Join(parts, " ")
}

// Children returns the direct element children, optionally restricted to
// the given tags.
func (n *Node) Children(tags ...string) []*Node {
	var out []*Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		child := wrap(c)
		if len(tags) == 0 || child.Is(tags...) {
			out = append(out, child)
		}
	}
	return out
}

// NextSiblings returns the element siblings that follow n, in order.
func (n *Node) NextSiblings() []*Node {
	var out []*Node
	for s := n.n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			out = append(out, wrap(s))
		}
	}
	return out
}

// NextSibling returns the first following element sibling with one of
// the given tags, or nil.
func (n *Node) NextSibling(tags ...string) *Node {
	for _, s := range n.NextSiblings() {
		if len(tags) == 0 || s.Is(tags...) {
			return s
		}
	}
	return nil
}

// Rows returns the top-level rows of a table: direct <tr> children of
// the table and of its thead/tbody/tfoot sections, in source order. Rows
// of nested tables are not included.
func (n *Node) Rows() []*Node {
	var rows []*Node
	for _, c := range n.Children() {
		switch {
		case c.Is("tr"):
			rows = append(rows, c)
		case c.Is("thead", "tbody", "tfoot"):
			rows = append(rows, c.Children("tr")...)
		}
	}
	return rows
}

// FindAll returns every descendant element matching pred, in document
// order. The receiver itself is not considered.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				if node := wrap(c); pred(node) {
					out = append(out, node)
				}
			}
			walk(c)
		}
	}
	walk(n.n)
	return out
}

// Find returns the first descendant element matching pred, or nil.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var found *html.Node
	var walk func(*html.Node) bool
	walk = func(h *html.Node) bool {
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && pred(wrap(c)) {
				found = c
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(n.n)
	return wrap(found)
}

// FindNext returns the first element after n in document order (outside
// n's own subtree) matching pred, or nil.
func (n *Node) FindNext(pred func(*Node) bool) *Node {
	for cur := n.n; cur != nil; cur = cur.Parent {
		for s := cur.NextSibling; s != nil; s = s.NextSibling {
			if s.Type != html.ElementNode {
				continue
			}
			if sib := wrap(s); pred(sib) {
				return sib
			}
			if hit := wrap(s).Find(pred); hit != nil {
				return hit
			}
		}
	}
	return nil
}

// Link is the text and target of an anchor element.
type Link struct {
	Text string
	Href string
}

// FirstLink returns the text of the first anchor under n that has any
// (image-only anchors are passed over) and the href of the first anchor
// that carries one. Either may be empty.
func (n *Node) FirstLink() Link {
	var l Link
	if a := n.Find(func(c *Node) bool { return c.Is("a") && c.Text() != "" }); a != nil {
		l.Text = a.Text()
	}
	if a := n.Find(func(c *Node) bool {
		_, ok := c.Attr("href")
		return c.Is("a") && ok
	}); a != nil {
		href, _ := a.Attr("href")
		l.Href = strings.TrimSpace(href)
	}
	return l
}

// Tag returns a predicate matching elements with one of the given tags.
func Tag(tags ...string) func(*Node) bool {
	return func(n *Node) bool { return n.Is(tags...) }
}
