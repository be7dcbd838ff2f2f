package message

import "errors"

// Warning is shown once when derivation cannot run for lack of configuration.
type Warning struct {
	Title   string
	Message string
	Link    string
}

// MissingConfigurationWarning is the warning raised for ErrMissingConfiguration.
var MissingConfigurationWarning = Warning{
	Title:   "Missing configuration",
	Message: "Please configure your JIRA project key with 'jiracommit config set project_keys <KEY>' or enable auto_detect_project_key",
	Link:    "https://github.com/nemwiz/jira-commit-message-intellij-plugin",
}

// Warner receives the missing-configuration warning.
type Warner interface {
	WarnMissingConfiguration(w Warning)
}

// WarnerFunc adapts a function to the Warner interface.
type WarnerFunc func(w Warning)

// WarnMissingConfiguration calls f(w).
func (f WarnerFunc) WarnMissingConfiguration(w Warning) {
	f(w)
}

// State is the orchestrator state reached by a derivation.
type State string

const (
	// StateNoInput means no branch name was available (e.g. detached HEAD).
	StateNoInput State = "no-input"
	// StateConfigMissing means key detection is not configured.
	StateConfigMissing State = "config-missing"
	// StateNormal means the extractors and the builder ran.
	StateNormal State = "normal"
)

// Result is the outcome of one derivation.
type Result struct {
	Branch     string `json:"branch"`
	IssueKey   string `json:"issue_key"`
	CommitType string `json:"commit_type"`
	Message    string `json:"message"`
	State      State  `json:"state"`
}

// Fallback reports whether the caller should keep the message it already has.
// That is the case when nothing was composed or no issue key was found.
func (r Result) Fallback() bool {
	return r.Message == "" || r.IssueKey == ""
}

// Resolve returns the derived message, or previous when Fallback applies.
func (r Result) Resolve(previous string) string {
	if r.Fallback() {
		return previous
	}
	return r.Message
}

// Deriver runs the extraction and composition pipeline.
type Deriver struct {
	// Warner is notified when configuration is missing; nil discards the warning.
	Warner Warner
	// Debugf receives trace output; nil disables it.
	Debugf func(format string, args ...any)
}

// Derive computes the commit message for branch. An empty branch is treated
// as "no branch". Derive never fails; absence is reported through Result.
func (d Deriver) Derive(branch string, cfg Config) Result {
	d.debugf("[message] debug: deriving from branch %q", branch)
	if branch == "" {
		return Result{State: StateNoInput}
	}

	d.debugf("[message] debug: settings: project_keys=%v auto_detect=%v conventional=%v",
		cfg.ProjectKeys, cfg.AutoDetect, cfg.ConventionalCommits)

	key, err := ExtractIssueKey(branch, cfg.KeyDetection)
	if errors.Is(err, ErrMissingConfiguration) {
		d.debugf("[message] debug: %v", err)
		if d.Warner != nil {
			d.Warner.WarnMissingConfiguration(MissingConfigurationWarning)
		}
		return Result{Branch: branch, State: StateConfigMissing}
	}

	commitType, _ := ExtractCommitType(branch, cfg.ConventionalCommits)
	d.debugf("[message] debug: extracted issue=%q type=%q", key, commitType)
	d.debugf("[message] debug: format: wrapper=%s infix=%s prefix=%s", cfg.Wrapper, cfg.Infix, cfg.Prefix)

	return Result{
		Branch:     branch,
		IssueKey:   key,
		CommitType: commitType,
		Message:    Build(key, cfg.options(commitType)),
		State:      StateNormal,
	}
}

func (d Deriver) debugf(format string, args ...any) {
	if d.Debugf != nil {
		d.Debugf(format, args...)
	}
}

// DeriveCommitMessage is the single-call entry point: it returns the composed
// message, or "" for no input and missing configuration.
func DeriveCommitMessage(branch string, cfg Config, w Warner) string {
	return Deriver{Warner: w}.Derive(branch, cfg).Message
}
