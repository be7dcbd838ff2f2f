package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// migratedHeader is written above the converted settings.
const migratedHeader = "# jiracommit configuration\n# Migrated from JSON format\n\n"

// MigrationResult describes the outcome of a migration operation
type MigrationResult struct {
	SourcePath string
	TargetPath string
	Success    bool
	DryRun     bool
	Message    string
}

// MigrateJSONToYAML converts a legacy JSON config file to YAML. The JSON file is
// parsed with the same koanf parser the loader uses, so a file that loads also
// migrates. An existing YAML file is never overwritten and dry runs write nothing.
func MigrateJSONToYAML(jsonPath, yamlPath string, dryRun bool) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: jsonPath,
		TargetPath: yamlPath,
		DryRun:     dryRun,
	}

	if !fileExists(jsonPath) {
		result.Message = fmt.Sprintf("No JSON config found at %s", jsonPath)
		return result, nil
	}

	legacy := koanf.New(".")
	if err := legacy.Load(file.Provider(jsonPath), json.Parser()); err != nil {
		return nil, fmt.Errorf("parsing legacy config %s: %w", jsonPath, err)
	}

	if fileExists(yamlPath) {
		result.Message = fmt.Sprintf("YAML config already exists at %s (skipped)", yamlPath)
		return result, nil
	}

	result.Success = true
	if dryRun {
		result.Message = fmt.Sprintf("Would migrate %s → %s (%d settings)", jsonPath, yamlPath, len(legacy.Keys()))
		return result, nil
	}

	data, err := yaml.Parser().Marshal(legacy.Raw())
	if err != nil {
		return nil, fmt.Errorf("encoding %s as YAML: %w", jsonPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(yamlPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(yamlPath, append([]byte(migratedHeader), data...), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", yamlPath, err)
	}

	result.Message = fmt.Sprintf("Migrated %s → %s", jsonPath, yamlPath)
	return result, nil
}

// MigrateUserConfig migrates ~/.jiracommit.json to the user YAML config.
func MigrateUserConfig(dryRun bool) (*MigrationResult, error) {
	jsonPath, err := LegacyUserConfigPath()
	if err != nil {
		return nil, fmt.Errorf("locating legacy user config: %w", err)
	}
	yamlPath, err := UserConfigPath()
	if err != nil {
		return nil, fmt.Errorf("locating user config: %w", err)
	}
	return MigrateJSONToYAML(jsonPath, yamlPath, dryRun)
}

// MigrateProjectConfig migrates .jiracommit.json to .jiracommit/config.yml.
func MigrateProjectConfig(dryRun bool) (*MigrationResult, error) {
	return MigrateJSONToYAML(LegacyProjectConfigPath(), ProjectConfigPath(), dryRun)
}

// RemoveLegacyConfig renames a migrated legacy JSON file to <name>.bak.
func RemoveLegacyConfig(jsonPath string, dryRun bool) error {
	if dryRun || !fileExists(jsonPath) {
		return nil
	}
	if err := os.Rename(jsonPath, jsonPath+".bak"); err != nil {
		return fmt.Errorf("backing up legacy config: %w", err)
	}
	return nil
}
