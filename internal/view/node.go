// Package view holds the typed node tree that page renderers build and the
// HTML serializer that turns it into markup.
package view

import (
	"slices"
	"strings"
)

// Kind distinguishes element, text and document nodes.
type Kind int

const (
	ElementNode Kind = iota
	TextNode
	DocumentNode
)

// Attr is one element attribute. Order is preserved when rendering.
type Attr struct {
	Key   string
	Value string
}

// Node is an element, a text run, or the document root.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// El builds an element node with the given attributes and children.
func El(tag string, attrs []Attr, children ...*Node) *Node {
	n := &Node{Kind: ElementNode, Tag: tag, Attrs: attrs}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Text builds a text node. Content is escaped on render.
func Text(s string) *Node {
	return &Node{Kind: TextNode, Text: s}
}

// Document builds a document root holding a single html element.
func Document(html *Node) *Node {
	return &Node{Kind: DocumentNode, Children: []*Node{html}}
}

// A is shorthand for a list of attributes given as key/value pairs.
// An odd trailing key is ignored.
func A(kv ...string) []Attr {
	attrs := make([]Attr, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, Attr{Key: kv[i], Value: kv[i+1]})
	}
	return attrs
}

// Get returns the value of attribute key.
func (n *Node) Get(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Set replaces or appends attribute key.
func (n *Node) Set(key, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
}

// Del removes attribute key if present.
func (n *Node) Del(key string) {
	n.Attrs = slices.DeleteFunc(n.Attrs, func(a Attr) bool { return a.Key == key })
}

// ID returns the element id attribute.
func (n *Node) ID() string {
	id, _ := n.Get("id")
	return id
}

// Classes returns the element's class list.
func (n *Node) Classes() []string {
	c, _ := n.Get("class")
	return strings.Fields(c)
}

// HasClass reports whether class is in the element's class list.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes(), class)
}

// AddClass appends class unless already present.
func (n *Node) AddClass(class string) {
	if n.HasClass(class) {
		return
	}
	n.Set("class", strings.TrimSpace(strings.Join(append(n.Classes(), class), " ")))
}

// RemoveClass drops class from the class list.
func (n *Node) RemoveClass(class string) {
	classes := slices.DeleteFunc(n.Classes(), func(c string) bool { return c == class })
	if len(classes) == 0 {
		n.Del("class")
		return
	}
	n.Set("class", strings.Join(classes, " "))
}

// ToggleClass adds class when on is true and removes it otherwise.
func (n *Node) ToggleClass(class string, on bool) {
	if on {
		n.AddClass(class)
	} else {
		n.RemoveClass(class)
	}
}

// Append adds children at the end.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
}

// Prepend inserts child before all existing children.
func (n *Node) Prepend(child *Node) {
	n.Children = append([]*Node{child}, n.Children...)
}

// Walk visits n and its descendants depth-first until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first descendant (or n itself) matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant (including n) matching pred.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// ByID returns the element with the given id, or nil.
func (n *Node) ByID(id string) *Node {
	return n.Find(func(c *Node) bool { return c.Kind == ElementNode && c.ID() == id })
}

// ByTag returns the first element with the given tag, or nil.
func (n *Node) ByTag(tag string) *Node {
	return n.Find(func(c *Node) bool { return c.Kind == ElementNode && c.Tag == tag })
}

// ByClass returns every element carrying class.
func (n *Node) ByClass(class string) []*Node {
	return n.FindAll(func(c *Node) bool { return c.Kind == ElementNode && c.HasClass(class) })
}

// RemoveByID detaches every descendant element with the given id and
// reports how many were removed.
func (n *Node) RemoveByID(id string) int {
	removed := 0
	kept := n.Children[:0]
	for _, c := range n.Children {
		if c.Kind == ElementNode && c.ID() == id {
			removed++
			continue
		}
		removed += c.RemoveByID(id)
		kept = append(kept, c)
	}
	n.Children = kept
	return removed
}

// TextContent concatenates all descendant text.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Kind == TextNode {
			b.WriteString(c.Text)
		}
		return true
	})
	return b.String()
}
