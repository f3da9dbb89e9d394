// Package xml provides the tree-query layer over parsed annotation files.
// It wraps github.com/antchfx/xmlquery and exposes exactly the operations
// the extraction code relies on: depth-first, document-order iteration of
// descendant elements by tag name, attribute maps, and first-child text.
//
// Security Notes:
//   - XXE (External Entity) attacks are mitigated because xmlquery uses
//     Go's encoding/xml internally, which does not fetch external entities.
package xml

import (
	"bytes"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML element node.
type Node struct {
	node *xmlquery.Node
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	reader := bytes.NewReader(data)
	root, err := xmlquery.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the root element of the document, or nil if the document
// has no element children.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// Iter returns all descendant elements of the document with the given tag
// name, in document order (depth-first, pre-order). The traversal follows
// the sibling chains produced by the parser, which preserve source order.
func (d *Document) Iter(tag string) []*Node {
	if d.root == nil {
		return nil
	}
	return iterTag(d.root, tag)
}

// Iter returns all descendant elements of the node with the given tag name,
// in document order. The node itself is not included even if its tag matches.
func (n *Node) Iter(tag string) []*Node {
	if n.node == nil {
		return nil
	}
	var found []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		found = append(found, iterTag(child, tag)...)
	}
	return found
}

func iterTag(n *xmlquery.Node, tag string) []*Node {
	var found []*Node
	if n.Type == xmlquery.ElementNode && n.Data == tag {
		found = append(found, &Node{node: n})
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		found = append(found, iterTag(child, tag)...)
	}
	return found
}

// XPath executes an XPath query against the document and returns matching nodes.
func (d *Document) XPath(expr string) ([]*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}
	nodes, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// XPathFirst executes an XPath query and returns the first matching node,
// or nil if nothing matches.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}
	node, err := xmlquery.Query(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// Name returns the element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text returns the concatenated text content of the node and its descendants.
func (n *Node) Text() string {
	if n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// FirstChildElement returns the first child element of the node, or nil if
// the node has no element children.
func (n *Node) FirstChildElement() *Node {
	if n.node == nil {
		return nil
	}
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// Attributes returns all attributes of the node as a map.
func (n *Node) Attributes() map[string]string {
	if n.node == nil {
		return nil
	}
	attrs := make(map[string]string, len(n.node.Attr))
	for _, attr := range n.node.Attr {
		attrs[attr.Name.Local] = attr.Value
	}
	return attrs
}

// Attr returns the value of a specific attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	if n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}

// HasAttr reports whether the node carries the named attribute.
// Unlike Attr, it distinguishes an absent attribute from an empty value.
func (n *Node) HasAttr(name string) bool {
	if n.node == nil {
		return false
	}
	for _, attr := range n.node.Attr {
		if attr.Name.Local == name {
			return true
		}
	}
	return false
}
