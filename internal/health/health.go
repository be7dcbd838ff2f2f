// Package health runs the setup checks behind 'jiracommit doctor': repository
// access, configuration validity, key detection, the installed hook and the
// desktop notification tool.
package health

import (
	"fmt"
	"strings"

	"github.com/nemwiz/jiracommit/internal/config"
	"github.com/nemwiz/jiracommit/internal/git"
	"github.com/nemwiz/jiracommit/internal/hook"
	"github.com/nemwiz/jiracommit/internal/message"
	"github.com/nemwiz/jiracommit/internal/notify"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Optional checks are reported but do not fail the report.
	Optional bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Options selects what RunHealthChecks inspects.
type Options struct {
	// Repo is a path inside the repository; empty means the working directory.
	Repo string
	// Config is the loaded configuration, nil when loading failed.
	Config *config.Configuration
	// ConfigErr is the error returned while loading the configuration.
	ConfigErr error
	// Sender probes the desktop notification tool (default: notify.NewSender()).
	Sender notify.Sender
}

// RunHealthChecks runs all health checks and returns a report.
// Checks that depend on a repository or configuration are skipped when it is unavailable.
func RunHealthChecks(opts Options) *HealthReport {
	report := &HealthReport{Passed: true}
	add := func(c CheckResult) {
		report.Checks = append(report.Checks, c)
		if !c.Passed && !c.Optional {
			report.Passed = false
		}
	}

	repoCheck := CheckRepository(opts.Repo)
	add(repoCheck)

	add(CheckConfiguration(opts.ConfigErr))
	if opts.Config == nil {
		return report
	}
	msgCfg := opts.Config.MessageConfig()
	add(CheckKeyDetection(msgCfg.KeyDetection))

	if repoCheck.Passed {
		add(CheckBranch(opts.Repo, msgCfg.KeyDetection))
		add(CheckHook(opts.Repo))
	}

	sender := opts.Sender
	if sender == nil {
		sender = notify.NewSender()
	}
	add(CheckNotifications(opts.Config.Notifications, sender))

	return report
}

// CheckRepository checks that repo is inside a git working tree.
func CheckRepository(repo string) CheckResult {
	root, err := git.RepositoryRoot(repo)
	if err != nil {
		return CheckResult{
			Name:    "Git repository",
			Passed:  false,
			Message: "not inside a git repository",
		}
	}
	return CheckResult{
		Name:    "Git repository",
		Passed:  true,
		Message: root,
	}
}

// CheckConfiguration reports whether the layered configuration loaded.
func CheckConfiguration(loadErr error) CheckResult {
	if loadErr != nil {
		return CheckResult{
			Name:    "Configuration",
			Passed:  false,
			Message: loadErr.Error(),
		}
	}
	return CheckResult{
		Name:    "Configuration",
		Passed:  true,
		Message: "loaded and valid",
	}
}

// CheckKeyDetection checks that project keys or auto-detection are configured.
func CheckKeyDetection(cfg message.KeyDetection) CheckResult {
	switch {
	case cfg.AutoDetect:
		return CheckResult{
			Name:    "Key detection",
			Passed:  true,
			Message: "auto-detecting any KEY-123 style issue key",
		}
	case cfg.Missing():
		return CheckResult{
			Name:    "Key detection",
			Passed:  false,
			Message: "no project keys configured - run 'jiracommit config set project_keys <KEY>'",
		}
	default:
		return CheckResult{
			Name:    "Key detection",
			Passed:  true,
			Message: "project keys " + strings.Join(cfg.ProjectKeys, ", "),
		}
	}
}

// CheckBranch reports the current branch and whether it carries an issue key.
// A branch without a key is not a failure.
func CheckBranch(repo string, cfg message.KeyDetection) CheckResult {
	branch, err := git.CurrentBranch(repo)
	if err != nil {
		return CheckResult{
			Name:    "Current branch",
			Passed:  false,
			Message: err.Error(),
		}
	}
	if branch == "" {
		return CheckResult{
			Name:     "Current branch",
			Passed:   false,
			Optional: true,
			Message:  "detached HEAD - no message is derived until a branch is checked out",
		}
	}

	key, err := message.ExtractIssueKey(branch, cfg)
	if err != nil || key == "" {
		return CheckResult{
			Name:     "Current branch",
			Passed:   false,
			Optional: true,
			Message:  fmt.Sprintf("%s has no issue key", branch),
		}
	}
	return CheckResult{
		Name:    "Current branch",
		Passed:  true,
		Message: fmt.Sprintf("%s (issue %s)", branch, key),
	}
}

// CheckHook reports whether the jiracommit prepare-commit-msg hook is installed.
func CheckHook(repo string) CheckResult {
	path, err := hook.Path(repo)
	if err != nil {
		return CheckResult{Name: "Commit hook", Passed: false, Optional: true, Message: err.Error()}
	}
	installed, err := hook.Installed(path)
	if err != nil {
		return CheckResult{Name: "Commit hook", Passed: false, Optional: true, Message: err.Error()}
	}
	if !installed {
		return CheckResult{
			Name:     "Commit hook",
			Passed:   false,
			Optional: true,
			Message:  "not installed - run 'jiracommit hook install'",
		}
	}
	return CheckResult{
		Name:    "Commit hook",
		Passed:  true,
		Message: path,
	}
}

// CheckNotifications checks that a desktop notification tool exists when
// visual notifications are enabled.
func CheckNotifications(cfg notify.NotificationConfig, sender notify.Sender) CheckResult {
	if !cfg.Enabled || cfg.Type == notify.OutputTerminal {
		return CheckResult{
			Name:    "Notifications",
			Passed:  true,
			Message: "terminal only",
		}
	}
	if !sender.VisualAvailable() {
		return CheckResult{
			Name:     "Notifications",
			Passed:   false,
			Optional: true,
			Message:  fmt.Sprintf("%s notifications enabled but no notification tool found; warnings fall back to the terminal", cfg.Type),
		}
	}
	return CheckResult{
		Name:    "Notifications",
		Passed:  true,
		Message: fmt.Sprintf("%s notifications available", cfg.Type),
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string
	for _, check := range report.Checks {
		output += FormatCheck(check)
	}
	return output
}

// FormatCheck formats a single check result for console output
func FormatCheck(check CheckResult) string {
	switch {
	case check.Passed:
		return fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
	case check.Optional:
		return fmt.Sprintf("○ %s: %s\n", check.Name, check.Message)
	default:
		return fmt.Sprintf("✗ %s: %s\n", check.Name, check.Message)
	}
}
