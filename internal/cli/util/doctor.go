package util

import (
	"fmt"

	"github.com/nemwiz/jiracommit/internal/cli/shared"
	clierrors "github.com/nemwiz/jiracommit/internal/errors"
	"github.com/nemwiz/jiracommit/internal/health"
	"github.com/spf13/cobra"
)

// NewDoctorCmd builds the doctor command.
func NewDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that jiracommit is set up for this repository",
		Long: `Check the repository, configuration, key detection, the installed
prepare-commit-msg hook and desktop notification support.

Items marked ○ are optional and do not fail the check.`,
		Example: `  jiracommit doctor
  jiracommit doctor --repo ../api`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupInfo,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := shared.LoadConfig(cmd)
			report := health.RunHealthChecks(health.Options{
				Repo:      shared.Repos(cmd)[0],
				Config:    cfg,
				ConfigErr: err,
			})

			fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))
			if !report.Passed {
				return clierrors.NewPrerequisiteError("setup checks failed",
					"Fix the items marked ✗ above and run 'jiracommit doctor' again")
			}
			return nil
		},
	}
}
