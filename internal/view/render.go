package view

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render writes n as HTML. Document roots are prefixed with <!DOCTYPE html>.
func Render(w io.Writer, n *Node) error {
	return html.Render(w, toHTML(n))
}

// RenderString renders n and returns the markup.
func RenderString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toHTML(n *Node) *html.Node {
	var out *html.Node
	switch n.Kind {
	case TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Text}
	case DocumentNode:
		out = &html.Node{Type: html.DocumentNode}
		out.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	default:
		out = &html.Node{
			Type:     html.ElementNode,
			Data:     n.Tag,
			DataAtom: atom.Lookup([]byte(n.Tag)),
		}
		for _, a := range n.Attrs {
			out.Attr = append(out.Attr, html.Attribute{Key: a.Key, Val: a.Value})
		}
	}
	for _, c := range n.Children {
		out.AppendChild(toHTML(c))
	}
	return out
}
