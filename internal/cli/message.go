package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/nemwiz/jiracommit/internal/cli/shared"
	"github.com/nemwiz/jiracommit/internal/git"
	"github.com/nemwiz/jiracommit/internal/message"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newMessageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "message",
		Aliases: []string{"msg"},
		Short:   "Print the commit message derived from the current branch (msg)",
		Long: `Print the commit message derived from the current branch.

With several --repo flags the branch is chosen across repositories: the
repository with the most changed files whose branch carries an issue key wins,
falling back to the first repository's branch.

Nothing is printed when the branch has no issue key.`,
		Example: `  # Message for the current repository
  jiracommit message

  # Message for an arbitrary branch name
  jiracommit msg --branch feat/PROJ-42-login

  # Pick the branch across two repositories
  jiracommit message --repo ./api --repo ./web

  # Full derivation result
  jiracommit message --json`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupMessage,
		RunE:    runMessage,
	}
	cmd.Flags().StringP("branch", "b", "", "Derive from this branch name instead of the repository's HEAD")
	cmd.Flags().Bool("json", false, "Print the derivation result as JSON")
	return cmd
}

func runMessage(cmd *cobra.Command, _ []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	msgCfg := cfg.MessageConfig()

	branch, _ := cmd.Flags().GetString("branch")
	if !cmd.Flags().Changed("branch") {
		repos, err := collectRepoBranches(cmd.Context(), shared.Repos(cmd))
		if err != nil {
			return err
		}
		branch = message.SelectBranch(repos, msgCfg.KeyDetection)
	}

	deriver := message.Deriver{Warner: shared.NewWarner(cmd, cfg), Debugf: log.Printf}
	result := deriver.Derive(branch, msgCfg)

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if msg := result.Resolve(""); msg != "" {
		fmt.Fprintln(out, msg)
	}
	return nil
}

// collectRepoBranches reads the current branch and changed-file count of each
// repository concurrently, preserving input order.
func collectRepoBranches(ctx context.Context, repos []string) ([]message.RepoBranch, error) {
	results := make([]message.RepoBranch, len(repos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, repo := range repos {
		i, repo := i, repo
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := shared.RequireRepository(repo); err != nil {
				return err
			}
			branch, err := git.CurrentBranch(repo)
			if err != nil {
				return fmt.Errorf("reading branch of %s: %w", shared.RepoLabel(repo), err)
			}
			changes := 0
			if len(repos) > 1 {
				if changes, err = git.ChangedFiles(repo); err != nil {
					return fmt.Errorf("reading status of %s: %w", shared.RepoLabel(repo), err)
				}
			}
			results[i] = message.RepoBranch{Path: repo, Branch: branch, Changes: changes}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// onceWarner forwards only the first warning, so commands deriving many
// messages warn about missing configuration once.
type onceWarner struct {
	next message.Warner
	once sync.Once
}

func (w *onceWarner) WarnMissingConfiguration(warning message.Warning) {
	w.once.Do(func() { w.next.WarnMissingConfiguration(warning) })
}
