// Package dom provides a read-only view of a parsed HTML page.
// Elements are located with XPath expressions and read through their
// rendered text and attributes; nothing in this package mutates the tree.
package dom

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Querier is implemented by anything that can evaluate an XPath expression
// into elements. Both Document and Element satisfy it.
type Querier interface {
	Query(expr string) ([]*Element, error)
}

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses an HTML document held in memory.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Query evaluates expr against the whole document.
func (d *Document) Query(expr string) ([]*Element, error) {
	return query(d.root, expr)
}

// Element is a single node of a Document.
type Element struct {
	node *html.Node
}

// Query evaluates expr with this element as the context node.
func (e *Element) Query(expr string) ([]*Element, error) {
	return query(e.node, expr)
}

// Tag returns the element name in lower case.
func (e *Element) Tag() string {
	return e.node.Data
}

// ByTag returns every descendant element with the given tag name, in
// document order.
func (e *Element) ByTag(name string) []*Element {
	name = strings.ToLower(name)
	var found []*Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == name {
				found = append(found, &Element{node: c})
			}
			walk(c)
		}
	}
	walk(e.node)
	return found
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// Text returns the rendered text of the element: its text nodes joined,
// script and style content skipped, whitespace collapsed to single spaces.
// Block boundaries and line breaks count as whitespace.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			sb.WriteByte(' ')
		}
	}
	walk(e.node)
	return collapse(sb.String())
}

var blockElements = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "ul": true, "ol": true,
	"table": true, "tr": true, "td": true, "th": true, "tbody": true, "thead": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// HTML renders the element back to markup, mostly useful in debug output.
func (e *Element) HTML() string {
	return htmlquery.OutputHTML(e.node, true)
}

func query(top *html.Node, expr string) ([]*Element, error) {
	nodes, err := htmlquery.QueryAll(top, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid XPath %q: %w", expr, err)
	}
	return nodeSet(nodes), nil
}

// nodeSet removes duplicates and puts nodes in document order, the way a
// browser evaluates an XPath node-set. Expressions that step back up the tree
// from several context nodes can otherwise yield the same row more than once.
func nodeSet(nodes []*html.Node) []*Element {
	if len(nodes) == 0 {
		return nil
	}

	seen := make(map[*html.Node]bool, len(nodes))
	unique := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if seen[n] {
			continue
		}
		seen[n] = true
		unique = append(unique, n)
	}

	if len(unique) > 1 {
		order := documentOrder(rootOf(unique[0]))
		sort.SliceStable(unique, func(i, j int) bool {
			return order[unique[i]] < order[unique[j]]
		})
	}

	elems := make([]*Element, len(unique))
	for i, n := range unique {
		elems[i] = &Element{node: n}
	}
	return elems
}

func rootOf(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

func documentOrder(root *html.Node) map[*html.Node]int {
	order := make(map[*html.Node]int)
	i := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		order[n] = i
		i++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return order
}

// collapse trims s and folds every whitespace run into one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
