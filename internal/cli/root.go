// Package cli implements the jiracommit command line.
package cli

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	configcmd "github.com/nemwiz/jiracommit/internal/cli/config"
	"github.com/nemwiz/jiracommit/internal/cli/shared"
	"github.com/nemwiz/jiracommit/internal/cli/util"
	clierrors "github.com/nemwiz/jiracommit/internal/errors"
	"github.com/nemwiz/jiracommit/internal/git"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jiracommit",
		Short: "Derive commit messages from the JIRA issue key in your branch name",
		Long: `jiracommit reads the current git branch, finds the JIRA issue key in it
(e.g. PROJ-123) and turns it into the start of a commit message, optionally
with a conventional-commit type, a wrapper, a separator and a prefix.

Install it as a prepare-commit-msg hook to have every commit message
pre-filled, or print the message with 'jiracommit message'.`,
		Example: `  # Tell jiracommit which project keys to look for
  jiracommit config set project_keys PROJ

  # Print the message for the current branch
  jiracommit message

  # Pre-fill every commit message in this repository
  jiracommit hook install`,
		SilenceUsage:     true,
		SilenceErrors:    true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) { configureLogging(cmd) },
	}

	cmd.AddGroup(
		&cobra.Group{ID: shared.GroupMessage, Title: "Commit Messages:"},
		&cobra.Group{ID: shared.GroupHooks, Title: "Git Hooks:"},
		&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"},
		&cobra.Group{ID: shared.GroupInfo, Title: "Information:"},
	)
	cmd.SetHelpCommandGroupID(shared.GroupInfo)
	cmd.SetCompletionCommandGroupID(shared.GroupInfo)

	pf := cmd.PersistentFlags()
	pf.String(shared.ConfigFlag, "", "Project config file (default: .jiracommit/config.yml)")
	pf.Bool(shared.DebugFlag, false, "Print debug traces to stderr")
	pf.StringSlice(shared.RepoFlag, nil, "Repository path, repeatable (default: current directory)")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine())
	})

	cmd.AddCommand(
		newMessageCmd(),
		newBranchesCmd(),
		newWatchCmd(),
		newHookCmd(),
		configcmd.NewCmd(),
		util.NewDoctorCmd(),
		util.NewVersionCmd(),
	)
	return cmd
}

// configureLogging routes debug traces to stderr when --debug is set and
// discards them otherwise.
func configureLogging(cmd *cobra.Command) {
	debug, _ := cmd.Flags().GetBool(shared.DebugFlag)
	if !debug {
		log.SetOutput(io.Discard)
		git.SetDebugLogger(nil)
		return
	}
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFlags(log.Ltime)
	git.SetDebugLogger(log.Printf)
}

// Execute runs the root command. The command context is cancelled on
// interrupt. Errors are printed to stderr before being returned.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	clierrors.Report(os.Stderr, err)
	return err
}
