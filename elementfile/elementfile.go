// Package elementfile reads element trees from YAML.
//
// A node is either a scalar, which becomes a text leaf, or a mapping:
//
//	type: div            # host tag, or
//	component: Counter   # name looked up in the Registry
//	props:
//	  id: app
//	children:
//	  - Hello
//	  - type: p
//	    children: [world]
package elementfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/delaneyj/tinyfiber/fiber"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownComponent = errors.New("elementfile: unknown component")
	ErrMissingType      = errors.New("elementfile: node needs either type or component")
	ErrBadNode          = errors.New("elementfile: unsupported node")
)

// Registry resolves component names used in files.
type Registry map[string]fiber.Component

type node struct {
	Type      string         `yaml:"type"`
	Component string         `yaml:"component"`
	Props     map[string]any `yaml:"props"`
	Children  []yaml.Node    `yaml:"children"`
}

// Decode reads a single element tree from r.
func Decode(r io.Reader, reg Registry) (*fiber.Element, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("elementfile: decode: %w", err)
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
		return build(doc.Content[0], reg)
	}
	return build(&doc, reg)
}

// Unmarshal is Decode for in-memory documents.
func Unmarshal(data []byte, reg Registry) (*fiber.Element, error) {
	return Decode(bytes.NewReader(data), reg)
}

func build(y *yaml.Node, reg Registry) (*fiber.Element, error) {
	switch y.Kind {
	case yaml.ScalarNode:
		return fiber.CreateTextElement(y.Value), nil
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("%w at line %d", ErrBadNode, y.Line)
	}

	var n node
	if err := y.Decode(&n); err != nil {
		return nil, fmt.Errorf("elementfile: line %d: %w", y.Line, err)
	}

	var typ any
	switch {
	case n.Type != "" && n.Component != "":
		return nil, fmt.Errorf("%w at line %d: both set", ErrMissingType, y.Line)
	case n.Type != "":
		typ = n.Type
	case n.Component != "":
		c, ok := reg[n.Component]
		if !ok {
			return nil, fmt.Errorf("%w %q at line %d", ErrUnknownComponent, n.Component, y.Line)
		}
		typ = c
	default:
		return nil, fmt.Errorf("%w at line %d", ErrMissingType, y.Line)
	}

	children := make([]any, 0, len(n.Children))
	for i := range n.Children {
		child, err := build(&n.Children[i], reg)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	return fiber.CreateElement(typ, n.Props, children...), nil
}
