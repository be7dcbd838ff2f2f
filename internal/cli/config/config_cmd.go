// Package config provides the "jiracommit config" command tree: show, set,
// keys, init, path and migrate.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/nemwiz/jiracommit/internal/cli/shared"
	"github.com/nemwiz/jiracommit/internal/config"
	clierrors "github.com/nemwiz/jiracommit/internal/errors"
	"github.com/nemwiz/jiracommit/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cGreen = color.New(color.FgGreen).SprintFunc()
	cDim   = color.New(color.Faint).SprintFunc()
	cBold  = color.New(color.Bold).SprintFunc()
)

// NewCmd builds the config command and its subcommands.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage jiracommit configuration",
		Long: `Manage jiracommit configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (JIRACOMMIT_*)
  2. Project config (.jiracommit/config.yml)
  3. User config (~/.config/jiracommit/config.yml)
  4. Built-in defaults`,
		Example: `  # Show the effective configuration
  jiracommit config show

  # Detect keys for the PROJ and ABC projects
  jiracommit config set project_keys PROJ,ABC

  # Wrap the key in brackets and follow it with a colon, for this repository only
  jiracommit config set message.wrapper "[]" --project
  jiracommit config set message.infix colon --project`,
		GroupID: shared.GroupConfiguration,
	}

	cmd.AddCommand(
		newShowCmd(),
		newSetCmd(),
		newKeysCmd(),
		newInitCmd(),
		newPathCmd(),
		newMigrateCmd(),
	)
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration and where it came from",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}

	if asJSON {
		// Round-trip through YAML so JSON uses the same snake_case keys.
		var doc map[string]interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	printSources(cmd, out)
	fmt.Fprint(out, string(data))
	return nil
}

// printSources lists the config files and environment variables in priority order.
func printSources(cmd *cobra.Command, out io.Writer) {
	fmt.Fprintln(out, cBold("Configuration Sources:"))

	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, config.EnvPrefix) {
			name, _, _ := strings.Cut(kv, "=")
			env = append(env, name)
		}
	}
	if len(env) > 0 {
		fmt.Fprintf(out, "  %s %s\n", cGreen("✓"), "environment: "+strings.Join(env, ", "))
	}

	for _, p := range configPaths(cmd) {
		if p.path == "" {
			continue
		}
		mark := cDim("-")
		if fileExists(p.path) {
			mark = cGreen("✓")
		}
		fmt.Fprintf(out, "  %s %s: %s\n", mark, p.label, p.path)
	}
	fmt.Fprintln(out)
}

type labeledPath struct {
	label string
	path  string
}

func configPaths(cmd *cobra.Command) []labeledPath {
	userPath, _ := config.UserConfigPath()
	legacyUserPath, _ := config.LegacyUserConfigPath()
	return []labeledPath{
		{label: "project", path: projectPath(cmd)},
		{label: "project (legacy)", path: config.LegacyProjectConfigPath()},
		{label: "user", path: userPath},
		{label: "user (legacy)", path: legacyUserPath},
	}
}

// projectPath returns the --config path when given, otherwise the default project path.
func projectPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString(shared.ConfigFlag); p != "" {
		return p
	}
	return config.ProjectConfigPath()
}

// targetPath returns the file a write command should modify.
func targetPath(cmd *cobra.Command) (string, string, error) {
	project, _ := cmd.Flags().GetBool("project")
	if project {
		return projectPath(cmd), "project", nil
	}
	userPath, err := config.UserConfigPath()
	if err != nil {
		return "", "", fmt.Errorf("getting user config path: %w", err)
	}
	return userPath, "user", nil
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the user config, or the project config with --project.

Values are validated against the key's type. Lists are given comma-separated.
Run 'jiracommit config keys' for the list of keys.`,
		Example: `  jiracommit config set project_keys PROJ,ABC
  jiracommit config set auto_detect_project_key true
  jiracommit config set message.prefix custom --project
  jiracommit config set message.prefix_text "WIP " --project`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}
	cmd.Flags().BoolP("project", "p", false, "Write to the project config (.jiracommit/config.yml)")
	return cmd
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if _, err := config.GetKeySchema(key); err != nil {
		return clierrors.UnknownConfigKey(key)
	}

	path, scope, err := targetPath(cmd)
	if err != nil {
		return err
	}
	if err := config.SetConfigValue(path, key, value); err != nil {
		return clierrors.NewArgumentError(err.Error(), "List valid values with: jiracommit config keys")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s config (%s)\n", key, value, scope, path)
	return nil
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List configuration keys, their types and defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tTYPE\tDEFAULT\tDESCRIPTION")
			for _, key := range config.SortedKeys() {
				schema := config.KnownKeys[key]
				typ := schema.Type.String()
				if len(schema.AllowedValues) > 0 {
					typ = strings.Join(schema.AllowedValues, "|")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", key, typ, formatDefault(schema.Default), schema.Description)
			}
			return w.Flush()
		},
	}
}

func formatDefault(v interface{}) string {
	switch d := v.(type) {
	case []string:
		return "[" + strings.Join(d, ",") + "]"
	case string:
		if d == "" {
			return `""`
		}
		return d
	default:
		return fmt.Sprint(d)
	}
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented configuration template",
		Long: `Write a commented configuration template to the user config, or the
project config with --project. An existing file is left unchanged unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}
	cmd.Flags().BoolP("project", "p", false, "Create project-level config (.jiracommit/config.yml)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing config with defaults")
	return cmd
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")
	out := cmd.OutOrStdout()

	path, scope, err := targetPath(cmd)
	if err != nil {
		return err
	}

	if fileExists(path) && !force {
		fmt.Fprintf(out, "%s config already exists at %s (use --force to overwrite)\n", scope, path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	output.PrintSuccess(out, fmt.Sprintf("Created %s config at %s", scope, path))
	return nil
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print configuration file locations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, p := range configPaths(cmd) {
				state := "missing"
				if fileExists(p.path) {
					state = "exists"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.label, p.path, state)
			}
			_ = w.Flush()
		},
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Convert legacy JSON config files to YAML",
		Long: `Convert ~/.jiracommit.json and .jiracommit.json to the YAML locations.
Migrated JSON files are kept as <name>.bak. Without --user or --project both are migrated.`,
		Args: cobra.NoArgs,
		RunE: runConfigMigrate,
	}
	cmd.Flags().Bool("user", false, "Migrate only the user config")
	cmd.Flags().Bool("project", false, "Migrate only the project config")
	cmd.Flags().Bool("dry-run", false, "Show what would be migrated without writing")
	return cmd
}

func runConfigMigrate(cmd *cobra.Command, _ []string) error {
	user, _ := cmd.Flags().GetBool("user")
	project, _ := cmd.Flags().GetBool("project")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if !user && !project {
		user, project = true, true
	}

	var migrations []func(bool) (*config.MigrationResult, error)
	if user {
		migrations = append(migrations, config.MigrateUserConfig)
	}
	if project {
		migrations = append(migrations, config.MigrateProjectConfig)
	}

	out := cmd.OutOrStdout()
	for _, migrate := range migrations {
		result, err := migrate(dryRun)
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Configuration, "migrating config")
		}
		fmt.Fprintln(out, result.Message)
		if result.Success && !result.DryRun {
			if err := config.RemoveLegacyConfig(result.SourcePath, false); err != nil {
				return err
			}
			output.PrintNote(out, "  legacy file kept as %s.bak", result.SourcePath)
		}
	}
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
