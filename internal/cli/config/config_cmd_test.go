// Package config tests CLI configuration commands for jiracommit.
// Related: internal/cli/config/config_cmd.go
// Tags: config, cli, show, set, init, migrate

package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/nemwiz/jiracommit/internal/cli/shared"
	clierrors "github.com/nemwiz/jiracommit/internal/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// testEnv isolates the user config directory and returns a project config path.
type testEnv struct {
	home        string
	userPath    string
	projectPath string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return testEnv{
		home:        home,
		userPath:    filepath.Join(home, ".config", "jiracommit", "config.yml"),
		projectPath: filepath.Join(t.TempDir(), ".jiracommit", "config.yml"),
	}
}

// run executes the config command tree under a minimal root carrying --config.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "jiracommit", SilenceUsage: true, SilenceErrors: true}
	root.AddGroup(&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"})
	root.PersistentFlags().String(shared.ConfigFlag, "", "")
	root.AddCommand(NewCmd())

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append(append([]string{"config"}, args...), "--config", e.projectPath))
	err := root.Execute()
	return buf.String(), err
}

func TestConfigSetCommand(t *testing.T) {
	tests := map[string]struct {
		args           []string
		wantOutput     string
		wantFile       func(e testEnv) string
		wantContent    string
		wantErrContain string
		wantCategory   clierrors.ErrorCategory
	}{
		"set list in project config": {
			args:        []string{"set", "project_keys", "PROJ,ABC", "--project"},
			wantOutput:  "Set project_keys = PROJ,ABC in project config",
			wantFile:    func(e testEnv) string { return e.projectPath },
			wantContent: "project_keys: [PROJ, ABC]\n",
		},
		"set nested enum in user config": {
			args:        []string{"set", "message.infix", "colon"},
			wantOutput:  "Set message.infix = colon in user config",
			wantFile:    func(e testEnv) string { return e.userPath },
			wantContent: "message:\n    infix: colon\n",
		},
		"set boolean": {
			args:        []string{"set", "conventional_commits", "true", "-p"},
			wantFile:    func(e testEnv) string { return e.projectPath },
			wantContent: "conventional_commits: true\n",
		},
		"unknown key": {
			args:           []string{"set", "max_retries", "5"},
			wantErrContain: "unknown configuration key: max_retries",
			wantCategory:   clierrors.Argument,
		},
		"invalid enum value": {
			args:           []string{"set", "notifications.type", "sound", "--project"},
			wantErrContain: "valid options: terminal, visual, both",
			wantCategory:   clierrors.Argument,
		},
		"invalid boolean": {
			args:           []string{"set", "auto_detect_project_key", "maybe"},
			wantErrContain: "invalid boolean",
			wantCategory:   clierrors.Argument,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			out, err := env.run(t, tt.args...)

			if tt.wantErrContain != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrContain)
				cliErr := clierrors.AsCLIError(err)
				require.NotNil(t, cliErr)
				assert.Equal(t, tt.wantCategory, cliErr.Category)
				return
			}

			require.NoError(t, err)
			if tt.wantOutput != "" {
				assert.Contains(t, out, tt.wantOutput)
			}
			data, err := os.ReadFile(tt.wantFile(env))
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(data))
		})
	}
}

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "set", "project_keys", "PROJ", "--project")
	require.NoError(t, err)

	out, err := env.run(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration Sources:")
	assert.Contains(t, out, "project: "+env.projectPath)
	assert.Contains(t, out, "project_keys:")
	assert.Contains(t, out, "- PROJ")

	out, err = env.run(t, "show", "--json")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []any{"PROJ"}, doc["project_keys"])
	assert.Equal(t, false, doc["auto_detect_project_key"])
	assert.Equal(t, map[string]any{"enabled": false, "type": "terminal"}, doc["notifications"])
}

func TestConfigShow_InvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(env.projectPath), 0o755))
	require.NoError(t, os.WriteFile(env.projectPath, []byte("message:\n  prefix: star\n"), 0o644))

	_, err := env.run(t, "show")
	require.Error(t, err)
	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, clierrors.Configuration, cliErr.Category)
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "init", "--project")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project config at "+env.projectPath)
	template, err := os.ReadFile(env.projectPath)
	require.NoError(t, err)
	assert.Contains(t, string(template), "project_keys")

	require.NoError(t, os.WriteFile(env.projectPath, []byte("project_keys: [KEEP]\n"), 0o644))
	out, err = env.run(t, "init", "--project")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
	data, err := os.ReadFile(env.projectPath)
	require.NoError(t, err)
	assert.Equal(t, "project_keys: [KEEP]\n", string(data))

	_, err = env.run(t, "init", "--project", "--force")
	require.NoError(t, err)
	data, err = os.ReadFile(env.projectPath)
	require.NoError(t, err)
	assert.Equal(t, string(template), string(data))

	_, err = env.run(t, "init")
	require.NoError(t, err)
	assert.FileExists(t, env.userPath)
}

func TestConfigKeys(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "DESCRIPTION")
	for _, key := range []string{"project_keys", "auto_detect_project_key", "message.wrapper", "hook.skip_sources"} {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "terminal|visual|both")
}

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "path")
	require.NoError(t, err)
	assert.Contains(t, out, env.projectPath)
	assert.Contains(t, out, env.userPath)
	assert.Contains(t, out, "missing")
}

func TestConfigMigrate_User(t *testing.T) {
	env := newTestEnv(t)
	legacy := filepath.Join(env.home, ".jiracommit.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`{"project_keys":["PROJ"],"conventional_commits":true}`), 0o644))

	out, err := env.run(t, "migrate", "--user", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would migrate")
	assert.NoFileExists(t, env.userPath)

	out, err = env.run(t, "migrate", "--user")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated")
	assert.FileExists(t, env.userPath)
	assert.FileExists(t, legacy+".bak")
	assert.NoFileExists(t, legacy)

	out, err = env.run(t, "show", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"conventional_commits": true`)
}

func TestFormatDefault(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value any
		want  string
	}{
		"list":         {value: []string{"a", "b"}, want: "[a,b]"},
		"empty string": {value: "", want: `""`},
		"string":       {value: "none", want: "none"},
		"bool":         {value: false, want: "false"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatDefault(tt.value))
		})
	}
}
