// Package manifest infers a navigation tree from a flat list of converted
// documents using their filename numbering.
//
// A document named "03_main.md" owns every sibling directory whose name starts
// with "03_"; the documents inside those directories become its children.
package manifest

import (
	"encoding/json"
)

// TypeFile is the only node type emitted today.
const TypeFile = "file"

// Entry describes one converted document.
type Entry struct {
	Title        string `json:"title"`
	RenderedPath string `json:"rendered_path"` // site-relative path of the rendered artifact
	Directory    string `json:"directory"`     // slash-separated, relative to the docs root; "" is root
	OriginalName string `json:"original_name"` // filename without extension
}

// Node is one element of the navigation tree.
type Node struct {
	Path     string `json:"path"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Children []Node `json:"children,omitempty"`
}

// Manifest is the serialized navigation forest.
type Manifest struct {
	Files []Node `json:"files"`
}

// String returns a JSON representation of the Node for debugging.
func (n Node) String() string {
	b, _ := json.MarshalIndent(n, "", "  ")
	return string(b)
}

// Walk traverses the forest in depth-first order, calling fn with each node
// and its depth (0 for top-level nodes).
func Walk(nodes []Node, fn func(n Node, depth int)) {
	var walk func([]Node, int)
	walk = func(children []Node, depth int) {
		for _, node := range children {
			fn(node, depth)
			if len(node.Children) > 0 {
				walk(node.Children, depth+1)
			}
		}
	}
	walk(nodes, 0)
}

// Flatten returns every node in the forest in depth-first order.
func Flatten(nodes []Node) []Node {
	var result []Node
	Walk(nodes, func(n Node, _ int) {
		result = append(result, n)
	})
	return result
}

// Count returns the number of nodes at every depth.
func (m *Manifest) Count() int {
	count := 0
	Walk(m.Files, func(Node, int) { count++ })
	return count
}
