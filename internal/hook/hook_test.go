// Package hook tests the prepare-commit-msg hook: message file rewriting,
// source skipping, and script installation.
// Related: internal/hook/hook.go, internal/hook/install.go
// Tags: hook, prepare-commit-msg, git
package hook

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	clierrors "github.com/nemwiz/jiracommit/internal/errors"
	"github.com/nemwiz/jiracommit/internal/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gitTemplate = "\n# Please enter the commit message for your changes. Lines starting\n# with '#' will be ignored.\n"

func projConfig() message.Config {
	cfg := message.DefaultConfig()
	cfg.ProjectKeys = []string{"PROJ"}
	cfg.ConventionalCommits = true
	cfg.Wrapper = message.WrapperBrackets
	cfg.Infix = message.InfixSpace
	return cfg
}

func writeMessage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	t.Parallel()

	skip := []string{"message", "merge", "squash", "commit"}

	tests := map[string]struct {
		content     string
		source      string
		branch      string
		cfg         message.Config
		want        string
		wantWritten bool
		wantSkipped bool
		wantWarned  bool
	}{
		"plain commit gets derived subject": {
			content:     gitTemplate,
			branch:      "feat/PROJ-42-login",
			cfg:         projConfig(),
			want:        "feat: [PROJ-42] " + "\n" + gitTemplate,
			wantWritten: true,
		},
		"template text is kept as body": {
			content:     "Describe the change\n" + gitTemplate,
			source:      "template",
			branch:      "PROJ-7",
			cfg:         projConfig(),
			want:        "[PROJ-7] \n\nDescribe the change\n" + gitTemplate,
			wantWritten: true,
		},
		"explicit message is skipped": {
			content:     "my message\n",
			source:      "message",
			branch:      "PROJ-7",
			cfg:         projConfig(),
			want:        "my message\n",
			wantSkipped: true,
		},
		"no issue key keeps the file": {
			content: gitTemplate,
			branch:  "main",
			cfg:     projConfig(),
			want:    gitTemplate,
		},
		"detached head keeps the file": {
			content: gitTemplate,
			cfg:     projConfig(),
			want:    gitTemplate,
		},
		"missing configuration warns and keeps the file": {
			content:    gitTemplate,
			branch:     "PROJ-7",
			cfg:        message.DefaultConfig(),
			want:       gitTemplate,
			wantWarned: true,
		},
		"already derived subject is not duplicated": {
			content: "[PROJ-7] \n" + gitTemplate,
			source:  "template",
			branch:  "PROJ-7",
			cfg:     projConfig(),
			want:    "[PROJ-7] \n" + gitTemplate,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeMessage(t, tt.content)

			warned := 0
			out, err := Run(context.Background(), Params{
				MessageFile: path,
				Source:      tt.source,
				Branch:      tt.branch,
				Config:      tt.cfg,
				SkipSources: skip,
				Warner:      message.WarnerFunc(func(message.Warning) { warned++ }),
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantWritten, out.Written)
			assert.Equal(t, tt.wantSkipped, out.Skipped)
			assert.Equal(t, tt.wantWarned, warned == 1)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestRunCustomCommentChar(t *testing.T) {
	t.Parallel()

	template := "\n; Please enter the commit message for your changes. Lines starting\n; with ';' will be ignored.\n"
	path := writeMessage(t, template)

	out, err := Run(context.Background(), Params{
		MessageFile: path,
		Branch:      "feat/PROJ-7",
		Config:      projConfig(),
		CommentChar: ";",
	})
	require.NoError(t, err)
	assert.True(t, out.Written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "feat: [PROJ-7] \n"+template, string(got))
}

func TestRunMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Params{
		MessageFile: filepath.Join(t.TempDir(), "missing"),
		Branch:      "PROJ-1",
		Config:      projConfig(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading commit message file")
}

func TestRunCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Params{MessageFile: writeMessage(t, gitTemplate), Branch: "PROJ-1", Config: projConfig()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubject(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content     string
		commentChar string
		want        string
	}{
		"comments only":    {content: gitTemplate, want: ""},
		"text and comment": {content: "Fix it\n\nBody\n# comment\n", want: "Fix it\n\nBody"},
		"empty":            {content: "", want: ""},
		"custom comment char": {
			content:     "\n; Please enter the commit message\n; with ';' ignored.\n",
			commentChar: ";",
			want:        "",
		},
		"hash is text with custom comment char": {
			content:     "#123 fix\n; comment\n",
			commentChar: ";",
			want:        "#123 fix",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, subject(tt.content, tt.commentChar))
		})
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir
}

func TestInstallAndUninstall(t *testing.T) {
	t.Parallel()

	repo := initRepo(t)

	path, err := Install(repo, InstallOptions{Executable: "/usr/local/bin/jiracommit"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(repo, ".git", "hooks", Name), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), marker)
	assert.Contains(t, string(data), `exec '/usr/local/bin/jiracommit' hook run "$@"`)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100, "hook must be executable")

	// Reinstalling over our own hook needs no force.
	_, err = Install(repo, InstallOptions{})
	require.NoError(t, err)

	removed, err := Uninstall(repo)
	require.NoError(t, err)
	assert.Equal(t, path, removed)
	assert.NoFileExists(t, path)

	_, err = Uninstall(repo)
	require.Error(t, err)
	assert.Equal(t, clierrors.Prerequisite, clierrors.AsCLIError(err).Category)
}

func TestInstallRefusesForeignHook(t *testing.T) {
	t.Parallel()

	repo := initRepo(t)
	hookPath := filepath.Join(repo, ".git", "hooks", Name)
	require.NoError(t, os.MkdirAll(filepath.Dir(hookPath), 0o755))
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\necho custom\n"), 0o755))

	_, err := Install(repo, InstallOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = Uninstall(repo)
	require.Error(t, err, "foreign hooks are never removed")
	assert.FileExists(t, hookPath)

	_, err = Install(repo, InstallOptions{Force: true})
	require.NoError(t, err)
	ours, err := Installed(hookPath)
	require.NoError(t, err)
	assert.True(t, ours)
}

func TestScriptDefaultsToPath(t *testing.T) {
	t.Parallel()

	assert.Contains(t, Script(""), `exec 'jiracommit' hook run "$@"`)
}

func TestScriptQuotesExecutable(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		executable string
		want       string
	}{
		"plain path":    {executable: "/usr/local/bin/jiracommit", want: `exec '/usr/local/bin/jiracommit' hook run "$@"`},
		"dollar sign":   {executable: "/opt/$HOME/jiracommit", want: `exec '/opt/$HOME/jiracommit' hook run "$@"`},
		"backtick":      {executable: "/opt/`id`/jiracommit", want: "exec '/opt/`id`/jiracommit' hook run \"$@\""},
		"single quote":  {executable: "/opt/it's/jiracommit", want: `exec '/opt/it'\''s/jiracommit' hook run "$@"`},
		"space in path": {executable: "/opt/my tools/jiracommit", want: `exec '/opt/my tools/jiracommit' hook run "$@"`},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, Script(tt.executable), tt.want)
		})
	}
}
