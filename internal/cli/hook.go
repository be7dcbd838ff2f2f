package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/nemwiz/jiracommit/internal/cli/shared"
	clierrors "github.com/nemwiz/jiracommit/internal/errors"
	"github.com/nemwiz/jiracommit/internal/git"
	"github.com/nemwiz/jiracommit/internal/hook"
	"github.com/nemwiz/jiracommit/internal/output"
	"github.com/spf13/cobra"
)

func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Install, remove or run the prepare-commit-msg hook",
		Long: `Manage the git prepare-commit-msg hook that pre-fills commit messages
with the message derived from the current branch.`,
		GroupID: shared.GroupHooks,
	}
	cmd.AddCommand(newHookRunCmd(), newHookInstallCmd(), newHookUninstallCmd())
	return cmd
}

func newHookRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <msg-file> [source] [sha]",
		Short: "Run as git's prepare-commit-msg hook",
		Long: `Run as git's prepare-commit-msg hook. git passes the commit message file,
the message source and, for amends, the commit SHA.

Configuration and repository problems are reported on stderr but never abort
the commit.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return clierrors.MissingMessageFile()
			}
			return cobra.MaximumNArgs(3)(cmd, args)
		},
		RunE: runHookRun,
	}
}

func runHookRun(cmd *cobra.Command, args []string) error {
	params := hook.Params{MessageFile: args[0]}
	if len(args) > 1 {
		params.Source = args[1]
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		clierrors.Report(cmd.ErrOrStderr(), err)
		return nil
	}
	repo := shared.Repos(cmd)[0]
	branch, err := git.CurrentBranch(repo)
	if err != nil {
		clierrors.Report(cmd.ErrOrStderr(), err)
		return nil
	}
	commentChar, err := git.CommentChar(repo)
	if err != nil {
		clierrors.Report(cmd.ErrOrStderr(), err)
		return nil
	}

	params.Branch = branch
	params.CommentChar = commentChar
	params.Config = cfg.MessageConfig()
	params.SkipSources = cfg.Hook.SkipSources
	params.Warner = shared.NewWarner(cmd, cfg)

	_, err = hook.Run(cmd.Context(), params)
	return err
}

func newHookInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the prepare-commit-msg hook",
		Example: `  # Install into the current repository
  jiracommit hook install

  # Replace an existing hook not written by jiracommit
  jiracommit hook install --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			executable, _ := cmd.Flags().GetString("executable")
			if executable == "" {
				executable = defaultExecutable()
			}

			for _, repo := range shared.Repos(cmd) {
				if err := shared.RequireRepository(repo); err != nil {
					return err
				}
				path, err := hook.Install(repo, hook.InstallOptions{Force: force, Executable: executable})
				if err != nil {
					return err
				}
				output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Installed %s hook at %s", hook.Name, path))
			}
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing hook not written by jiracommit")
	cmd.Flags().String("executable", "", "Command the hook runs (default: jiracommit from PATH, else this binary)")
	return cmd
}

func newHookUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the prepare-commit-msg hook installed by jiracommit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, repo := range shared.Repos(cmd) {
				if err := shared.RequireRepository(repo); err != nil {
					return err
				}
				path, err := hook.Uninstall(repo)
				if err != nil {
					return err
				}
				output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Removed %s", path))
			}
			return nil
		},
	}
}

// defaultExecutable prefers jiracommit from PATH so the hook survives
// reinstalls, falling back to the running binary.
func defaultExecutable() string {
	if _, err := exec.LookPath("jiracommit"); err == nil {
		return "jiracommit"
	}
	if self, err := os.Executable(); err == nil {
		return self
	}
	return "jiracommit"
}
