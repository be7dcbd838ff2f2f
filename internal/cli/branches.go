package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"runtime"
	"text/tabwriter"

	"github.com/nemwiz/jiracommit/internal/cli/shared"
	"github.com/nemwiz/jiracommit/internal/git"
	"github.com/nemwiz/jiracommit/internal/message"
	"github.com/nemwiz/jiracommit/internal/output"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// repoBranches holds the derivations for every branch of one repository.
type repoBranches struct {
	Repo    string           `json:"repo"`
	Current string           `json:"current"`
	Results []message.Result `json:"branches"`
}

func newBranchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branches",
		Short: "Show the commit message each branch would get",
		Long: `Show the commit message each local branch would get. Repositories given
with --repo are processed concurrently. The current branch is marked with '*'.`,
		Example: `  jiracommit branches
  jiracommit branches --remote --repo ./api --repo ./web`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupMessage,
		RunE:    runBranches,
	}
	cmd.Flags().Bool("remote", false, "Include remote-tracking branches without a local counterpart")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func runBranches(cmd *cobra.Command, _ []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	includeRemote, _ := cmd.Flags().GetBool("remote")
	msgCfg := cfg.MessageConfig()
	deriver := message.Deriver{
		Warner: &onceWarner{next: shared.NewWarner(cmd, cfg)},
		Debugf: log.Printf,
	}

	repos := shared.Repos(cmd)
	results := make([]repoBranches, len(repos))

	g, ctx := errgroup.WithContext(cmd.Context())
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
			branches, err := git.Branches(repo, includeRemote)
			if err != nil {
				return fmt.Errorf("listing branches of %s: %w", shared.RepoLabel(repo), err)
			}
			current, err := git.CurrentBranch(repo)
			if err != nil {
				return fmt.Errorf("reading branch of %s: %w", shared.RepoLabel(repo), err)
			}

			rb := repoBranches{Repo: shared.RepoLabel(repo), Current: current}
			for _, b := range branches {
				rb.Results = append(rb.Results, deriver.Derive(b.Name, msgCfg))
			}
			results[i] = rb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, rb := range results {
		if len(results) > 1 {
			output.PrintSeparator(out, rb.Repo)
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, r := range rb.Results {
			marker := " "
			if r.Branch == rb.Current {
				marker = "*"
			}
			msg := r.Resolve("")
			if msg == "" {
				msg = "-"
			}
			fmt.Fprintf(w, "%s %s\t%s\n", marker, r.Branch, msg)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
