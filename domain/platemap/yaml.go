package platemap

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a platemap document. Top-level keys are range
// expressions whose values map variable names to scalars or nested
// sequences; the reserved key "wells" sets the plate size:
//
//	wells: 96
//	"A1:B6":
//	  strain: B. theta
//	"A1:A6,B1:B6":
//	  conc: [0, 1, 10, 100, 1000, 10000]
func ParseYAML(data []byte) (Map, error) {
	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Map{}, err
	}
	return m, nil
}

// UnmarshalYAML decodes a platemap mapping node pair by pair, so the file's
// rule order survives into Rules. Duplicate range keys become separate rules
// rather than an error.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("platemap: expected a mapping of ranges, got %s at line %d", node.Tag, node.Line)
	}
	m.Wells = 0
	m.Rules = nil
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var key string
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("platemap: line %d: %w", keyNode.Line, err)
		}
		if key == "wells" {
			if err := valNode.Decode(&m.Wells); err != nil {
				return fmt.Errorf("platemap: wells: %w", err)
			}
			continue
		}
		var assign map[string]any
		if err := valNode.Decode(&assign); err != nil {
			return fmt.Errorf("platemap: range %q: %w", key, err)
		}
		m.Rules = append(m.Rules, Rule{Ranges: key, Assign: assign})
	}
	return nil
}
