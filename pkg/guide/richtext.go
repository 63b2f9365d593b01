package guide

import "strings"

// NodeKind tags the variants of the rich-text tree.
type NodeKind int

const (
	KindText NodeKind = iota
	KindEmphasis
	KindParagraph
	KindList
)

// Node is one element of a step description. The set of implementations is
// closed: Text, Emphasis, Paragraph and List.
type Node interface {
	Kind() NodeKind
	node()
}

// Text is a run of plain text.
type Text struct {
	Value string
}

// Emphasis is a run of strongly emphasized inline content.
type Emphasis struct {
	Children []Node
}

// Paragraph is a block of inline content.
type Paragraph struct {
	Children []Node
}

// List is a bulleted list; each item is a sequence of inline nodes.
type List struct {
	Items [][]Node
}

func (Text) Kind() NodeKind      { return KindText }
func (Emphasis) Kind() NodeKind  { return KindEmphasis }
func (Paragraph) Kind() NodeKind { return KindParagraph }
func (List) Kind() NodeKind      { return KindList }

func (Text) node()      {}
func (Emphasis) node()  {}
func (Paragraph) node() {}
func (List) node()      {}

// RichText is an ordered list of block nodes (paragraphs and lists).
type RichText []Node

// ParseInline splits s into Text and Emphasis spans. Emphasis is written as
// **strong**. An unterminated marker is kept as literal text.
func ParseInline(s string) []Node {
	var out []Node
	for s != "" {
		start := strings.Index(s, "**")
		if start < 0 {
			out = append(out, Text{Value: s})
			break
		}
		end := strings.Index(s[start+2:], "**")
		if end < 0 {
			out = append(out, Text{Value: s})
			break
		}
		if start > 0 {
			out = append(out, Text{Value: s[:start]})
		}
		inner := s[start+2 : start+2+end]
		if inner != "" {
			out = append(out, Emphasis{Children: []Node{Text{Value: inner}}})
		}
		s = s[start+2+end+2:]
	}
	return out
}

// Para builds a paragraph from inline markup.
func Para(s string) Paragraph {
	return Paragraph{Children: ParseInline(s)}
}

// Bullets builds a list whose items are parsed from inline markup.
func Bullets(items ...string) List {
	l := List{Items: make([][]Node, 0, len(items))}
	for _, it := range items {
		l.Items = append(l.Items, ParseInline(it))
	}
	return l
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the node just visited.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	switch v := n.(type) {
	case Emphasis:
		for _, c := range v.Children {
			Walk(c, fn)
		}
	case Paragraph:
		for _, c := range v.Children {
			Walk(c, fn)
		}
	case List:
		for _, item := range v.Items {
			for _, c := range item {
				Walk(c, fn)
			}
		}
	}
}

// InlineText flattens inline nodes to plain text.
func InlineText(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		Walk(n, func(n Node) bool {
			if t, ok := n.(Text); ok {
				b.WriteString(t.Value)
			}
			return true
		})
	}
	return b.String()
}

// PlainText flattens the description, one line per paragraph or list item.
func (rt RichText) PlainText() string {
	var lines []string
	for _, block := range rt {
		switch v := block.(type) {
		case Paragraph:
			lines = append(lines, InlineText(v.Children))
		case List:
			for _, item := range v.Items {
				lines = append(lines, "- "+InlineText(item))
			}
		default:
			lines = append(lines, InlineText([]Node{v}))
		}
	}
	return strings.Join(lines, "\n")
}
