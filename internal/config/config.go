// Package config provides hierarchical configuration management for jiracommit using koanf.
// Configuration is loaded with priority: environment variables > project config (.jiracommit/config.yml)
// > user config (~/.config/jiracommit/config.yml) > defaults. Legacy JSON files are still read,
// with a warning and a migration path to YAML.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/nemwiz/jiracommit/internal/message"
	"github.com/nemwiz/jiracommit/internal/notify"
)

// EnvPrefix is the prefix of environment variables that override configuration.
const EnvPrefix = "JIRACOMMIT_"

// Configuration represents the jiracommit configuration
type Configuration struct {
	// AutoDetectProjectKey matches any UPPERCASE-123 style key instead of ProjectKeys.
	AutoDetectProjectKey bool `koanf:"auto_detect_project_key" yaml:"auto_detect_project_key"`

	// ProjectKeys are tried in order when auto-detection is off.
	// Can be set via JIRACOMMIT_PROJECT_KEYS as a comma-separated list.
	ProjectKeys []string `koanf:"project_keys" yaml:"project_keys"`

	// DEPRECATED: Use project_keys instead. ProjectPrefix held a single key.
	ProjectPrefix string `koanf:"project_prefix" yaml:"project_prefix,omitempty"`

	// ConventionalCommits prepends the conventional-commit type found in the branch.
	ConventionalCommits bool `koanf:"conventional_commits" yaml:"conventional_commits"`

	Message       MessageConfig             `koanf:"message" yaml:"message"`
	Notifications notify.NotificationConfig `koanf:"notifications" yaml:"notifications"`
	Hook          HookConfig                `koanf:"hook" yaml:"hook"`
}

// MessageConfig holds the formatting selections.
type MessageConfig struct {
	Wrapper    string `koanf:"wrapper" yaml:"wrapper"`
	Infix      string `koanf:"infix" yaml:"infix" validate:"oneof=none space colon dash pipe"`
	Prefix     string `koanf:"prefix" yaml:"prefix" validate:"oneof=none hash custom"`
	PrefixText string `koanf:"prefix_text" yaml:"prefix_text"`
}

// HookConfig configures the prepare-commit-msg hook.
type HookConfig struct {
	// SkipSources lists git message sources for which the hook leaves the message alone.
	SkipSources []string `koanf:"skip_sources" yaml:"skip_sources"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .jiracommit/config.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: XDG config dir)
	UserConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, opts.UserConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k, warningWriter, opts.SkipWarnings)
}

func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads user-level config (YAML preferred, legacy JSON supported).
func loadUserConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	userYAMLPath := customPath
	if userYAMLPath == "" {
		userYAMLPath, _ = UserConfigPath()
	}
	legacyUserPath := ""
	if customPath == "" {
		legacyUserPath, _ = LegacyUserConfigPath()
	}

	return loadLayer(k, layer{
		name:        "user",
		yamlPath:    userYAMLPath,
		legacyPath:  legacyUserPath,
		migrateFlag: "--user",
	}, warningWriter, skipWarnings)
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
	}

	return loadLayer(k, layer{
		name:        "project",
		yamlPath:    projectYAMLPath,
		legacyPath:  LegacyProjectConfigPath(),
		migrateFlag: "--project",
	}, warningWriter, skipWarnings)
}

type layer struct {
	name        string
	yamlPath    string
	legacyPath  string
	migrateFlag string
}

func loadLayer(k *koanf.Koanf, l layer, warningWriter io.Writer, skipWarnings bool) error {
	yamlExists := fileExists(l.yamlPath)
	legacyExists := fileExists(l.legacyPath)

	switch {
	case yamlExists:
		if err := loadYAMLConfig(k, l.yamlPath, l.name); err != nil {
			return fmt.Errorf("loading %s YAML config: %w", l.name, err)
		}
		if legacyExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", l.legacyPath, l.yamlPath)
			fmt.Fprintf(warningWriter, "  Run 'jiracommit config migrate %s' to remove the legacy file.\n\n", l.migrateFlag)
		}
	case legacyExists:
		if err := k.Load(file.Provider(l.legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy %s JSON config %s: %w", l.name, l.legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", l.legacyPath)
			fmt.Fprintf(warningWriter, "  Run 'jiracommit config migrate %s' to migrate to YAML format.\n\n", l.migrateFlag)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, normalizes and validates the merged configuration.
func finalizeConfig(k *koanf.Koanf, warningWriter io.Writer, skipWarnings bool) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ProjectKeys = normalizeKeys(cfg.ProjectKeys)
	cfg.Hook.SkipSources = normalizeKeys(cfg.Hook.SkipSources)

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if !skipWarnings {
		emitLegacyWarnings(&cfg, warningWriter)
	}

	return &cfg, nil
}

// emitLegacyWarnings writes deprecation warnings for legacy fields
func emitLegacyWarnings(cfg *Configuration, w io.Writer) {
	if cfg.ProjectPrefix == "" {
		return
	}
	fmt.Fprintf(w, "Warning: 'project_prefix' is deprecated. Use 'project_keys' instead.\n")
	fmt.Fprintf(w, "  Replace: project_prefix: %q\n", cfg.ProjectPrefix)
	fmt.Fprintf(w, "  With:    project_keys: [%s]\n\n", cfg.ProjectPrefix)
}

// normalizeKeys splits comma-separated entries (as delivered by environment
// variables), trims whitespace and drops empty values.
func normalizeKeys(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// envSections are the nested config sections reachable from environment variables.
var envSections = []string{"message_", "notifications_", "hook_"}

// envTransform converts environment variable names to config keys.
// Example: JIRACOMMIT_MESSAGE_PREFIX_TEXT -> message.prefix_text
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range envSections {
		if strings.HasPrefix(key, section) {
			return strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(key, section)
		}
	}
	return key
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// AllProjectKeys returns project_keys followed by the legacy project_prefix, if set
// and not already listed.
func (c *Configuration) AllProjectKeys() []string {
	keys := append([]string(nil), c.ProjectKeys...)
	if c.ProjectPrefix == "" {
		return keys
	}
	for _, k := range keys {
		if k == c.ProjectPrefix {
			return keys
		}
	}
	return append(keys, c.ProjectPrefix)
}

// MessageConfig converts the loaded configuration into the immutable value the
// message pipeline consumes.
func (c *Configuration) MessageConfig() message.Config {
	return message.Config{
		KeyDetection: message.KeyDetection{
			AutoDetect:  c.AutoDetectProjectKey,
			ProjectKeys: c.AllProjectKeys(),
		},
		ConventionalCommits: c.ConventionalCommits,
		Wrapper:             message.Wrapper(c.Message.Wrapper),
		Infix:               message.Infix(c.Message.Infix),
		Prefix:              message.Prefix(c.Message.Prefix),
		PrefixText:          c.Message.PrefixText,
	}
}
