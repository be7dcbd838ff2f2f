package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nemwiz/jiracommit/internal/message"
	"github.com/nemwiz/jiracommit/internal/notify"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeString
	TypeEnum
	TypeList
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g., "message.wrapper")
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Default       interface{}     // Default value
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"auto_detect_project_key": {
		Path:        "auto_detect_project_key",
		Type:        TypeBool,
		Description: "Detect any UPPERCASE-123 issue key instead of using project_keys",
		Default:     false,
	},
	"project_keys": {
		Path:        "project_keys",
		Type:        TypeList,
		Description: "Comma-separated project keys tried in order (e.g. PROJ,ABC)",
		Default:     []string{},
	},
	"project_prefix": {
		Path:        "project_prefix",
		Type:        TypeString,
		Description: "DEPRECATED: single project key, use project_keys",
		Default:     "",
	},
	"conventional_commits": {
		Path:        "conventional_commits",
		Type:        TypeBool,
		Description: "Prepend the conventional-commit type found at the start of the branch",
		Default:     false,
	},
	"message.wrapper": {
		Path:          "message.wrapper",
		Type:          TypeEnum,
		AllowedValues: enumValues(message.Wrappers),
		Description:   "Bracket pair placed around the issue key",
		Default:       string(message.WrapperNone),
	},
	"message.infix": {
		Path:          "message.infix",
		Type:          TypeEnum,
		AllowedValues: enumValues(message.Infixes),
		Description:   "Separator appended after the issue key",
		Default:       string(message.InfixNone),
	},
	"message.prefix": {
		Path:          "message.prefix",
		Type:          TypeEnum,
		AllowedValues: enumValues(message.Prefixes),
		Description:   "Text placed before the whole message",
		Default:       string(message.PrefixNone),
	},
	"message.prefix_text": {
		Path:        "message.prefix_text",
		Type:        TypeString,
		Description: "Prefix text used when message.prefix is custom",
		Default:     "",
	},
	"notifications.enabled": {
		Path:        "notifications.enabled",
		Type:        TypeBool,
		Description: "Send desktop notifications for configuration warnings",
		Default:     false,
	},
	"notifications.type": {
		Path:          "notifications.type",
		Type:          TypeEnum,
		AllowedValues: enumValues(notify.OutputTypes),
		Description:   "Where warnings are shown: terminal, visual, or both",
		Default:       string(notify.OutputTerminal),
	},
	"hook.skip_sources": {
		Path:        "hook.skip_sources",
		Type:        TypeList,
		Description: "Comma-separated git message sources the hook leaves untouched",
		Default:     []string{"message", "merge", "squash", "commit"},
	},
}

// SortedKeys returns the known key paths in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after type inference and validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeEnum:
		return parseEnumValue(schema, value)
	case TypeList:
		return ParsedValue{Raw: value, Parsed: normalizeKeys([]string{value}), Type: TypeList}, nil
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

func parseBoolValue(value string) (ParsedValue, error) {
	switch strings.ToLower(value) {
	case "true":
		return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
	case "false":
		return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
	default:
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
}

func parseEnumValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	for _, allowed := range schema.AllowedValues {
		if value == allowed {
			return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
		}
	}
	return ParsedValue{}, fmt.Errorf(
		"invalid value: %q (valid options: %s)",
		value,
		strings.Join(schema.AllowedValues, ", "),
	)
}
