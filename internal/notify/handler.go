package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/nemwiz/jiracommit/internal/message"
	"golang.org/x/term"
)

// dispatchTimeout bounds how long a desktop notification may block the command.
const dispatchTimeout = 5 * time.Second

var (
	warnLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
	linkLabel = color.New(color.FgCyan).SprintFunc()
)

// Handler delivers missing-configuration warnings. It implements message.Warner.
type Handler struct {
	config      NotificationConfig
	sender      Sender
	out         io.Writer
	interactive func() bool
}

// NewHandler creates a handler that prints to out (stderr when nil) and uses
// the platform desktop sender.
func NewHandler(config NotificationConfig, out io.Writer) *Handler {
	return NewHandlerWithSender(config, NewSender(), out)
}

// NewHandlerWithSender creates a handler with a custom sender (for testing).
func NewHandlerWithSender(config NotificationConfig, sender Sender, out io.Writer) *Handler {
	if out == nil {
		out = os.Stderr
	}
	return &Handler{
		config:      config,
		sender:      sender,
		out:         out,
		interactive: isInteractive,
	}
}

// Config returns the handler's notification configuration
func (h *Handler) Config() NotificationConfig {
	return h.config
}

// WarnMissingConfiguration shows w on the terminal and, if configured, on the desktop.
func (h *Handler) WarnMissingConfiguration(w message.Warning) {
	n := Notification{Title: w.Title, Message: w.Message, Link: w.Link}

	sent := false
	if h.desktopEnabled() {
		sent = h.dispatch(n)
	}
	if h.config.Type == OutputVisual && sent {
		return
	}
	h.printTerminal(n)
}

func (h *Handler) printTerminal(n Notification) {
	fmt.Fprintf(h.out, "%s %s\n", warnLabel("Warning: "+n.Title+":"), n.Message)
	if n.Link != "" {
		fmt.Fprintf(h.out, "  Visit documentation: %s\n", linkLabel(n.Link))
	}
}

// desktopEnabled checks if desktop notifications should be sent.
// Returns false if disabled, terminal-only, running in CI, or non-interactive.
func (h *Handler) desktopEnabled() bool {
	if !h.config.Enabled || h.config.Type == OutputTerminal {
		log.Printf("[notify] debug: desktop notification skipped - enabled=%v type=%s", h.config.Enabled, h.config.Type)
		return false
	}
	if isCI() {
		log.Printf("[notify] debug: desktop notification skipped - running in CI environment")
		return false
	}
	if !h.interactive() {
		log.Printf("[notify] debug: desktop notification skipped - non-interactive session")
		return false
	}
	if !h.sender.VisualAvailable() {
		log.Printf("[notify] debug: desktop notification skipped - no notification tool available")
		return false
	}
	return true
}

// dispatch sends a desktop notification with a timeout and reports success.
// Failures are logged and never block the command.
func (h *Handler) dispatch(n Notification) bool {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if err := h.sender.SendVisual(ctx, n); err != nil {
		log.Printf("[notify] debug: SendVisual error: %v", err)
		return false
	}
	log.Printf("[notify] debug: desktop notification sent - title=%s", n.Title)
	return true
}

// ciEnvVars are environment variables set by common CI systems.
var ciEnvVars = []string{
	"CI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"TRAVIS",
	"JENKINS_URL",
	"BUILDKITE",
	"DRONE",
	"TEAMCITY_VERSION",
	"TF_BUILD",            // Azure DevOps
	"BITBUCKET_PIPELINES", // Bitbucket
	"CODEBUILD_BUILD_ID",  // AWS CodeBuild
}

// isCI checks for common CI environment variables.
func isCI() bool {
	for _, v := range ciEnvVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// isInteractive checks if the session has a TTY. Git hooks run with stdin
// detached, so stderr is checked as well.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) || term.IsTerminal(int(os.Stderr.Fd()))
}
