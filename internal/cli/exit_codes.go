package cli

import clierrors "github.com/nemwiz/jiracommit/internal/errors"

// Exit codes for the jiracommit CLI.
// A derivation that finds no issue key is not an error and exits 0.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (I/O, git access)
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitConfigError indicates an unreadable or invalid configuration
	ExitConfigError = 3

	// ExitPrerequisite indicates the repository or hook is not in the expected state
	ExitPrerequisite = 4
)

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}
	switch cliErr.Category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitConfigError
	case clierrors.Prerequisite:
		return ExitPrerequisite
	default:
		return ExitFailure
	}
}
