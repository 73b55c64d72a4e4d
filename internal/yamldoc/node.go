package yamldoc

import "gopkg.in/yaml.v3"

// Node is a read-only view over one node of a decoded document.
type Node struct {
	n *yaml.Node
}

func wrap(n *yaml.Node) *Node {
	if n == nil {
		return nil
	}
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return &Node{n: n}
}

// Get returns the value stored under key when n is a mapping.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.n.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(n.n.Content); i += 2 {
		if n.n.Content[i].Value == key {
			return wrap(n.n.Content[i+1]), true
		}
	}
	return nil, false
}

// Scalar returns the textual value of a scalar node.
// An empty value (e.g. `m_Name: `) is a present, empty scalar.
func (n *Node) Scalar() (string, bool) {
	if n == nil || n.n.Kind != yaml.ScalarNode {
		return "", false
	}
	return n.n.Value, true
}

// Items returns the elements of a sequence node in document order.
func (n *Node) Items() ([]*Node, bool) {
	if n == nil || n.n.Kind != yaml.SequenceNode {
		return nil, false
	}
	items := make([]*Node, len(n.n.Content))
	for i, c := range n.n.Content {
		items[i] = wrap(c)
	}
	return items, true
}

// Keys returns mapping keys in document order.
func (n *Node) Keys() []string {
	if n == nil || n.n.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(n.n.Content)/2)
	for i := 0; i+1 < len(n.n.Content); i += 2 {
		keys = append(keys, n.n.Content[i].Value)
	}
	return keys
}

// Line is the 1-based source line of the node, 0 if unknown.
func (n *Node) Line() int {
	if n == nil {
		return 0
	}
	return n.n.Line
}
