package validator

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLEqual reports whether two HTML fragments are equivalent. Comments and
// whitespace-only text are ignored, runs of whitespace inside text collapse
// to one space and attribute order does not matter.
func HTMLEqual(want, got string) (bool, error) {
	a, err := parseFragment(want)
	if err != nil {
		return false, err
	}
	b, err := parseFragment(got)
	if err != nil {
		return false, err
	}
	return nodesEqual(a, b), nil
}

type htmlNode struct {
	tag      string
	text     string
	attrs    []html.Attribute
	children []*htmlNode
}

func parseFragment(src string) ([]*htmlNode, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return nil, fmt.Errorf("parse html failed: %w", err)
	}
	var out []*htmlNode
	for _, n := range nodes {
		if c := normalizeNode(n); c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func normalizeNode(n *html.Node) *htmlNode {
	switch n.Type {
	case html.TextNode:
		text := strings.Join(strings.Fields(n.Data), " ")
		if text == "" {
			return nil
		}
		return &htmlNode{text: text}
	case html.ElementNode:
		attrs := append([]html.Attribute(nil), n.Attr...)
		sort.Slice(attrs, func(i, j int) bool {
			if attrs[i].Namespace != attrs[j].Namespace {
				return attrs[i].Namespace < attrs[j].Namespace
			}
			return attrs[i].Key < attrs[j].Key
		})
		out := &htmlNode{tag: n.Data, attrs: attrs}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if nc := normalizeNode(c); nc != nil {
				out.children = append(out.children, nc)
			}
		}
		return out
	default:
		return nil
	}
}

func nodesEqual(a, b []*htmlNode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func nodeEqual(a, b *htmlNode) bool {
	if a.tag != b.tag || a.text != b.text || len(a.attrs) != len(b.attrs) {
		return false
	}
	for i := range a.attrs {
		if a.attrs[i] != b.attrs[i] {
			return false
		}
	}
	return nodesEqual(a.children, b.children)
}
