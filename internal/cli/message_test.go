// Package cli tests the message and branches commands against temporary repositories.
// Related: internal/cli/message.go, internal/cli/branches.go
// Tags: cli, message, branches, multi-repo
package cli

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/nemwiz/jiracommit/internal/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bracketConfig = `project_keys: [PROJ]
conventional_commits: true
message:
  wrapper: "[]"
  infix: colon
`

func TestMessageCmd(t *testing.T) {
	tests := map[string]struct {
		config      string
		args        []string
		wantStdout  string
		wantStderr  string
		wantErrCode int
	}{
		"explicit branch": {
			config:     bracketConfig,
			args:       []string{"--branch", "feat/PROJ-42-login"},
			wantStdout: "feat: [PROJ-42]: \n",
		},
		"alias": {
			config:     "project_keys: [PROJ]\n",
			args:       []string{"--branch", "PROJ-1"},
			wantStdout: "PROJ-1\n",
		},
		"branch without key prints nothing": {
			config: bracketConfig,
			args:   []string{"--branch", "main"},
		},
		"explicit empty branch prints nothing": {
			config: bracketConfig,
			args:   []string{"--branch", ""},
		},
		"missing configuration warns on stderr": {
			config:     "conventional_commits: true\n",
			args:       []string{"--branch", "feat/PROJ-42-login"},
			wantStderr: "Missing configuration",
		},
		"auto detect": {
			config:     "auto_detect_project_key: true\nmessage:\n  prefix: hash\n",
			args:       []string{"--branch", "bugfix/ABC-7-crash"},
			wantStdout: "#ABC-7\n",
		},
		"invalid configuration": {
			config:      "message:\n  infix: arrow\n",
			args:        []string{"--branch", "PROJ-1"},
			wantErrCode: ExitConfigError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateUserConfig(t)
			cfg := writeProjectConfig(t, tt.config)

			command := "message"
			if name == "alias" {
				command = "msg"
			}
			args := append([]string{command, "--config", cfg}, tt.args...)
			stdout, stderr, err := executeCommand(t, args...)

			if tt.wantErrCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrCode, ExitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStdout, stdout)
			if tt.wantStderr != "" {
				assert.Contains(t, stderr, tt.wantStderr)
			}
		})
	}
}

func TestMessageCmd_JSON(t *testing.T) {
	isolateUserConfig(t)
	cfg := writeProjectConfig(t, bracketConfig)

	stdout, _, err := executeCommand(t, "message", "--config", cfg, "--branch", "fix/PROJ-9-typo", "--json")
	require.NoError(t, err)

	var result message.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, message.Result{
		Branch:     "fix/PROJ-9-typo",
		IssueKey:   "PROJ-9",
		CommitType: "fix",
		Message:    "fix: [PROJ-9]: ",
		State:      message.StateNormal,
	}, result)
}

func TestMessageCmd_Repository(t *testing.T) {
	isolateUserConfig(t)
	cfg := writeProjectConfig(t, bracketConfig)
	dir, _ := newRepoOnBranch(t, "feature/PROJ-42-login")

	stdout, _, err := executeCommand(t, "message", "--config", cfg, "--repo", dir)
	require.NoError(t, err)
	assert.Equal(t, "feat: [PROJ-42]: \n", stdout)
}

func TestMessageCmd_DetachedHead(t *testing.T) {
	isolateUserConfig(t)
	cfg := writeProjectConfig(t, bracketConfig)
	dir, repo := newRepoOnBranch(t, "PROJ-42-login")

	head, err := repo.Head()
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{Hash: head.Hash()}))

	stdout, stderr, err := executeCommand(t, "message", "--config", cfg, "--repo", dir)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestMessageCmd_NotARepository(t *testing.T) {
	isolateUserConfig(t)
	cfg := writeProjectConfig(t, bracketConfig)

	_, _, err := executeCommand(t, "message", "--config", cfg, "--repo", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitPrerequisite, ExitCode(err))
}

func TestMessageCmd_MultiRepoSelection(t *testing.T) {
	isolateUserConfig(t)
	cfg := writeProjectConfig(t, "project_keys: [PROJ]\n")

	plain, _ := newRepoOnBranch(t, "main")
	small, _ := newRepoOnBranch(t, "PROJ-1-small")
	large, _ := newRepoOnBranch(t, "PROJ-2-large")
	modifyFiles(t, plain, 2)
	modifyFiles(t, small, 1)
	modifyFiles(t, large, 2)

	stdout, _, err := executeCommand(t, "message", "--config", cfg,
		"--repo", plain, "--repo", small, "--repo", large)
	require.NoError(t, err)
	assert.Equal(t, "PROJ-2\n", stdout)

	// Without any keyed branch the first repository's branch is used.
	stdout, _, err = executeCommand(t, "message", "--config", cfg, "--repo", plain)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestBranchesCmd(t *testing.T) {
	isolateUserConfig(t)
	cfg := writeProjectConfig(t, "project_keys: [PROJ]\nmessage:\n  infix: colon\n")
	dir, repo := newRepoOnBranch(t, "PROJ-1-first")

	head, err := repo.Head()
	require.NoError(t, err)
	require.NoError(t, repo.Storer.SetReference(
		plumbing.NewHashReference(plumbing.NewBranchReferenceName("PROJ-2-second"), head.Hash())))

	stdout, _, err := executeCommand(t, "branches", "--config", cfg, "--repo", dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"*", "PROJ-1-first", "PROJ-1:"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"PROJ-2-second", "PROJ-2:"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"master", "-"}, strings.Fields(lines[2]))
}

func TestBranchesCmd_JSON(t *testing.T) {
	isolateUserConfig(t)
	cfg := writeProjectConfig(t, "project_keys: [PROJ]\n")
	first, _ := newRepoOnBranch(t, "PROJ-1-first")
	second, _ := newRepoOnBranch(t, "")

	stdout, _, err := executeCommand(t, "branches", "--config", cfg, "--repo", first, "--repo", second, "--json")
	require.NoError(t, err)

	var got []repoBranches
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 2)

	assert.Equal(t, first, got[0].Repo)
	assert.Equal(t, "PROJ-1-first", got[0].Current)
	require.Len(t, got[0].Results, 2)
	assert.Equal(t, "PROJ-1", got[0].Results[0].Message)
	assert.Equal(t, message.StateNormal, got[0].Results[1].State)
	assert.Empty(t, got[0].Results[1].IssueKey)

	assert.Equal(t, "master", got[1].Current)
	require.Len(t, got[1].Results, 1)
}

func TestBranchesCmd_WarnsOnce(t *testing.T) {
	isolateUserConfig(t)
	cfg := writeProjectConfig(t, "conventional_commits: true\n")
	dir, repo := newRepoOnBranch(t, "PROJ-1-first")

	head, err := repo.Head()
	require.NoError(t, err)
	require.NoError(t, repo.Storer.SetReference(
		plumbing.NewHashReference(plumbing.NewBranchReferenceName("PROJ-2-second"), head.Hash())))

	_, stderr, err := executeCommand(t, "branches", "--config", cfg, "--repo", dir)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(stderr, "Missing configuration"))
}

type countingWarner struct {
	calls atomic.Int32
}

func (w *countingWarner) WarnMissingConfiguration(message.Warning) {
	w.calls.Add(1)
}

func TestOnceWarner(t *testing.T) {
	t.Parallel()

	next := &countingWarner{}
	w := &onceWarner{next: next}
	for i := 0; i < 3; i++ {
		w.WarnMissingConfiguration(message.MissingConfigurationWarning)
	}
	assert.Equal(t, int32(1), next.calls.Load())
}
