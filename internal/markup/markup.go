// Package markup describes page fragments as plain values and renders them
// through the x/net/html node tree, so text and attribute values are always
// escaped.
package markup

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is one attribute. An empty Val renders a boolean attribute such as readonly.
type Attr struct {
	Key string
	Val string
}

// Node describes one element. Text is literal and never interpreted as markup.
type Node struct {
	Tag      string
	Class    string
	Attrs    []Attr
	Text     string
	Children []Node
}

// Render writes nodes as HTML.
func Render(w io.Writer, nodes []Node) error {
	for _, n := range nodes {
		if err := html.Render(w, toHTML(n)); err != nil {
			return fmt.Errorf("render %s: %w", n.Tag, err)
		}
	}
	return nil
}

func toHTML(n Node) *html.Node {
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	if n.Class != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: n.Class})
	}
	for _, a := range n.Attrs {
		el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if n.Text != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, c := range n.Children {
		el.AppendChild(toHTML(c))
	}
	return el
}
