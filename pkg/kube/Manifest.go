package kube

import (
	"io"

	"github.com/devtron-labs/chart-builder/pkg/serializer"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DecodeManifests reads every YAML document from r and turns each into an
// Object. Mapping key order is preserved and empty documents are skipped.
func DecodeManifests(r io.Reader) ([]*Object, error) {
	decoder := yaml.NewDecoder(r)
	var objects []*Object
	for {
		var doc yaml.Node
		err := decoder.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "error in decoding manifest")
		}
		if len(doc.Content) == 0 {
			continue
		}
		value, err := nodeToStructure(doc.Content[0])
		if err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		m, ok := value.(*serializer.Map)
		if !ok {
			return nil, errors.Errorf("manifest document at line %d is not a mapping", doc.Content[0].Line)
		}
		obj, err := FromStructure(m)
		if err != nil {
			return nil, errors.Wrapf(err, "manifest document at line %d", doc.Content[0].Line)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func nodeToStructure(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return nodeToStructure(node.Content[0])
	case yaml.AliasNode:
		return nodeToStructure(node.Alias)
	case yaml.MappingNode:
		m := serializer.NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, errors.Errorf("line %d: only scalar mapping keys are supported", key.Line)
			}
			value, err := nodeToStructure(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, value)
		}
		return m, nil
	case yaml.SequenceNode:
		items := make([]interface{}, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := nodeToStructure(child)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	default:
		var value interface{}
		if err := node.Decode(&value); err != nil {
			return nil, errors.Wrapf(err, "line %d", node.Line)
		}
		return value, nil
	}
}
