package cli

import (
	"log"

	"github.com/nemwiz/jiracommit/internal/cli/shared"
	clierrors "github.com/nemwiz/jiracommit/internal/errors"
	"github.com/nemwiz/jiracommit/internal/git"
	"github.com/nemwiz/jiracommit/internal/message"
	"github.com/nemwiz/jiracommit/internal/output"
	"github.com/nemwiz/jiracommit/internal/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the derived message every time the checked-out branch changes",
		Long: `Print the derived message for the current branch, then again every time
HEAD changes (checkout, switch, rebase), until interrupted. Configuration is
re-read on every change.`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupMessage,
		RunE:    runWatch,
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	repo := shared.Repos(cmd)[0]
	if err := shared.RequireRepository(repo); err != nil {
		return err
	}
	gitDir, err := git.GitDir(repo)
	if err != nil {
		return err
	}

	w, err := watch.New(gitDir)
	if err != nil {
		return err
	}
	defer w.Close()

	heads, err := w.Watch(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	output.PrintNote(out, "Watching %s for branch changes (Ctrl+C to stop)", shared.RepoLabel(repo))

	for head := range heads {
		log.Printf("[watch] debug: HEAD is now %q", head)

		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			clierrors.Report(cmd.ErrOrStderr(), err)
			continue
		}
		branch, err := git.CurrentBranch(repo)
		if err != nil {
			clierrors.Report(cmd.ErrOrStderr(), err)
			continue
		}

		deriver := message.Deriver{Warner: shared.NewWarner(cmd, cfg), Debugf: log.Printf}
		result := deriver.Derive(branch, cfg.MessageConfig())
		output.PrintDerived(out, branch, result.Resolve(""))
	}
	return nil
}
