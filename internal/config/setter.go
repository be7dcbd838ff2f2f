package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyKeyPath is returned for an empty dotted key.
var ErrEmptyKeyPath = errors.New("empty key path")

// ParseKeyPath splits a dotted key such as "message.wrapper" into its parts.
func ParseKeyPath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyKeyPath
	}
	return strings.Split(path, "."), nil
}

// SetNestedValue sets keyPath to value inside a YAML document node, creating
// intermediate mappings as needed. Existing comments on the replaced value are kept.
func SetNestedValue(root *yaml.Node, keyPath []string, value interface{}) error {
	if len(keyPath) == 0 {
		return ErrEmptyKeyPath
	}
	if root.Kind == 0 {
		root.Kind = yaml.DocumentNode
	}
	if root.Kind != yaml.DocumentNode {
		return fmt.Errorf("expected YAML document, got node kind %d", root.Kind)
	}
	if len(root.Content) == 0 {
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"})
	}

	current := root.Content[0]
	for i, key := range keyPath {
		if current.Kind != yaml.MappingNode {
			return fmt.Errorf("cannot set %q: parent is not a mapping", strings.Join(keyPath[:i], "."))
		}
		idx := mappingIndex(current, key)

		if i == len(keyPath)-1 {
			valueNode, err := valueNode(value)
			if err != nil {
				return err
			}
			if idx >= 0 {
				old := current.Content[idx+1]
				valueNode.LineComment = old.LineComment
				valueNode.HeadComment = old.HeadComment
				valueNode.FootComment = old.FootComment
				current.Content[idx+1] = valueNode
			} else {
				current.Content = append(current.Content, scalarNode("!!str", key), valueNode)
			}
			return nil
		}

		if idx >= 0 {
			current = current.Content[idx+1]
			continue
		}
		child := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		current.Content = append(current.Content, scalarNode("!!str", key), child)
		current = child
	}
	return nil
}

// GetNestedValue returns the value node at keyPath, or nil if any part is missing.
func GetNestedValue(root *yaml.Node, keyPath []string) *yaml.Node {
	if len(keyPath) == 0 || root == nil || len(root.Content) == 0 {
		return nil
	}
	current := root
	if current.Kind == yaml.DocumentNode {
		current = current.Content[0]
	}
	for _, key := range keyPath {
		if current.Kind != yaml.MappingNode {
			return nil
		}
		idx := mappingIndex(current, key)
		if idx < 0 {
			return nil
		}
		current = current.Content[idx+1]
	}
	return current
}

// SetConfigValue validates value against the key schema and writes it into the
// YAML file at configPath, creating the file and its directory if needed.
func SetConfigValue(configPath, key, value string) error {
	parsed, err := ValidateValue(key, value)
	if err != nil {
		return err
	}
	keyPath, err := ParseKeyPath(key)
	if err != nil {
		return err
	}

	var root yaml.Node
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if len(strings.TrimSpace(string(data))) > 0 {
			if err := yaml.Unmarshal(data, &root); err != nil {
				return fmt.Errorf("parsing %s: %w", configPath, err)
			}
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("reading %s: %w", configPath, err)
	}

	if err := SetNestedValue(&root, keyPath, parsed.Parsed); err != nil {
		return err
	}

	out, err := yaml.Marshal(&root)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	return nil
}

func mappingIndex(mapping *yaml.Node, key string) int {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i
		}
	}
	return -1
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func valueNode(value interface{}) (*yaml.Node, error) {
	switch v := value.(type) {
	case string:
		return scalarNode("!!str", v), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(v)), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(v)), nil
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, item := range v {
			seq.Content = append(seq.Content, scalarNode("!!str", item))
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", value)
	}
}
