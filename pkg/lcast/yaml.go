package lcast

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlNode mirrors Node with names instead of tags.
type yamlNode struct {
	Kind     string  `yaml:"kind"`
	Type     string  `yaml:"type,omitempty"`
	Op       string  `yaml:"op,omitempty"`
	Name     string  `yaml:"name,omitempty"`
	Value    int64   `yaml:"value,omitempty"`
	Text     string  `yaml:"text,omitempty"`
	Size     int     `yaml:"size,omitempty"`
	Static   bool    `yaml:"static,omitempty"`
	Children []*Node `yaml:"children,omitempty"`
}

// UnmarshalYAML decodes one node mapping. Character literals may give their
// value as a one-character text.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var raw yamlNode
	if err := value.Decode(&raw); err != nil {
		return err
	}
	kind, ok := ParseKind(raw.Kind)
	if !ok {
		return fmt.Errorf("line %d: unknown node kind %q", value.Line, raw.Kind)
	}
	typ := Void
	if raw.Type != "" {
		if typ, ok = ParseType(raw.Type); !ok {
			return fmt.Errorf("line %d: unknown type %q", value.Line, raw.Type)
		}
	}
	*n = Node{
		Kind:     kind,
		Type:     typ,
		Op:       raw.Op,
		Name:     raw.Name,
		Value:    raw.Value,
		Text:     raw.Text,
		Size:     raw.Size,
		Static:   raw.Static,
		Children: raw.Children,
	}
	if kind == Lit && typ == Char && raw.Text != "" {
		if len(raw.Text) != 1 {
			return fmt.Errorf("line %d: char literal %q is not one character", value.Line, raw.Text)
		}
		n.Value = int64(raw.Text[0])
		n.Text = ""
	}
	for i, c := range n.Children {
		if c == nil {
			return fmt.Errorf("line %d: %s has an empty child at position %d", value.Line, kind, i)
		}
	}
	return nil
}

// MarshalYAML encodes a node in the same shape UnmarshalYAML accepts.
func (n *Node) MarshalYAML() (interface{}, error) {
	raw := yamlNode{
		Kind:     n.Kind.String(),
		Op:       n.Op,
		Name:     n.Name,
		Value:    n.Value,
		Text:     n.Text,
		Size:     n.Size,
		Static:   n.Static,
		Children: n.Children,
	}
	if n.Type != Void {
		raw.Type = n.Type.String()
	}
	return raw, nil
}

// Decode reads a YAML document holding a single root node.
// Array type names must be quoted inside flow mappings:
// {kind: id, name: a, type: "int[]"}.
func Decode(r io.Reader) (*Node, error) {
	var root Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty syntax tree")
		}
		return nil, err
	}
	if root.Kind != Seq {
		return nil, fmt.Errorf("root node is %s, want seq", root.Kind)
	}
	return &root, nil
}
