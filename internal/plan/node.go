package plan

import "gopkg.in/yaml.v3"

// Lookup returns the value node stored under key in a mapping node, or nil.
// Aliases are followed.
func Lookup(mapping *yaml.Node, key string) *yaml.Node {
	mapping = Resolve(mapping)
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return Resolve(mapping.Content[i+1])
		}
	}
	return nil
}

// Resolve follows alias nodes to their anchor.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// Present reports whether n holds a value: not missing, not null and not
// an empty scalar.
func Present(n *yaml.Node) bool {
	n = Resolve(n)
	if n == nil {
		return false
	}
	if n.Kind == yaml.ScalarNode {
		return n.Tag != "!!null" && n.Value != ""
	}
	return true
}

// IsMapping reports whether n is a mapping node.
func IsMapping(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether n is a sequence node.
func IsSequence(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

// ScalarValue returns the text of a scalar node. ok is false for missing
// and non-scalar nodes.
func ScalarValue(n *yaml.Node) (value string, ok bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return "", false
	}
	return n.Value, true
}

func setScalar(mapping *yaml.Node, key, value string) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != key {
			continue
		}
		v := mapping.Content[i+1]
		if v.Kind == yaml.ScalarNode && v.Tag != "!!null" {
			// Keep str and timestamp tags so the encoder only quotes when
			// the new text would otherwise read back as another type.
			if v.Tag != "!!str" && v.Tag != "!!timestamp" {
				v.Tag = "!!str"
			}
			v.Value = value
			return
		}
		mapping.Content[i+1] = strNode(value)
		return
	}
	mapping.Content = append(mapping.Content, strNode(key), strNode(value))
}

func strNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// cloneNode deep-copies a tree. Aliases are repointed at the copied anchors
// so edits to the copy never reach the original.
func cloneNode(n *yaml.Node) *yaml.Node {
	copies := make(map[*yaml.Node]*yaml.Node)
	c := copyTree(n, copies)
	for _, node := range copies {
		if node.Alias != nil {
			if anchor, ok := copies[node.Alias]; ok {
				node.Alias = anchor
			}
		}
	}
	return c
}

func copyTree(n *yaml.Node, copies map[*yaml.Node]*yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	c := *n
	copies[n] = &c
	if len(n.Content) > 0 {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = copyTree(child, copies)
		}
	}
	return &c
}
