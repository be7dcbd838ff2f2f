// Package shared provides constants and helpers used across CLI subpackages.
package shared

import (
	"github.com/nemwiz/jiracommit/internal/config"
	clierrors "github.com/nemwiz/jiracommit/internal/errors"
	"github.com/nemwiz/jiracommit/internal/git"
	"github.com/nemwiz/jiracommit/internal/notify"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output.
const (
	GroupMessage       = "message"
	GroupHooks         = "hooks"
	GroupConfiguration = "configuration"
	GroupInfo          = "info"
)

// Persistent flag names defined on the root command.
const (
	ConfigFlag = "config"
	DebugFlag  = "debug"
	RepoFlag   = "repo"
)

// LoadConfig loads the layered configuration, honouring the --config flag.
// Deprecation warnings go to the command's stderr.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString(ConfigFlag)
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.ConfigFileInvalid(err)
	}
	return cfg, nil
}

// Repos returns the repositories selected with --repo, or the current
// directory when none were given.
func Repos(cmd *cobra.Command) []string {
	repos, _ := cmd.Flags().GetStringSlice(RepoFlag)
	if len(repos) == 0 {
		return []string{""}
	}
	return repos
}

// RepoLabel returns a display name for a --repo value.
func RepoLabel(repo string) string {
	if repo == "" {
		return "."
	}
	return repo
}

// RequireRepository returns a prerequisite error if repo is not inside a git repository.
func RequireRepository(repo string) error {
	if !git.IsRepository(repo) {
		return clierrors.NotAGitRepository(RepoLabel(repo))
	}
	return nil
}

// NewWarner returns the notification handler for the missing-configuration warning.
func NewWarner(cmd *cobra.Command, cfg *config.Configuration) *notify.Handler {
	return notify.NewHandler(cfg.Notifications, cmd.ErrOrStderr())
}

