package errors

import "fmt"

// Common error messages for the jiracommit CLI.
// These templates ensure consistent, actionable error messages.

// NotAGitRepository creates an error for a path outside any git repository.
func NotAGitRepository(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("not a git repository: %s", path),
		"Run the command inside a git working tree",
		"Or point at one with: jiracommit --repo <path> ...",
	)
}

// ConfigFileInvalid creates an error for a configuration file that fails to load.
func ConfigFileInvalid(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check the file for YAML syntax errors",
		"List valid keys and values with: jiracommit config keys",
	)
}

// UnknownConfigKey creates an error for a key missing from the schema.
func UnknownConfigKey(key string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown configuration key: %s", key),
		"jiracommit config set <key> <value>",
		"List valid keys with: jiracommit config keys",
	)
}

// HookExists creates an error when a foreign prepare-commit-msg hook is present.
func HookExists(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("a prepare-commit-msg hook not managed by jiracommit already exists: %s", path),
		"Move or merge the existing hook manually",
		"Or overwrite it with: jiracommit hook install --force",
	)
}

// HookNotInstalled creates an error when uninstalling a hook jiracommit does not own.
func HookNotInstalled(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("no jiracommit hook installed at %s", path),
		"Install it with: jiracommit hook install",
	)
}

// MissingMessageFile creates an error for hook run without the message file argument.
func MissingMessageFile() *CLIError {
	return NewArgumentErrorWithUsage(
		"commit message file is required",
		"jiracommit hook run <msg-file> [source] [sha]",
		"This command is normally invoked by git's prepare-commit-msg hook",
		"Install the hook with: jiracommit hook install",
	)
}
