package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Sender defines the interface for platform-specific notification senders
type Sender interface {
	// SendVisual sends a visual notification to the OS notification system
	SendVisual(ctx context.Context, n Notification) error

	// VisualAvailable returns true if visual notifications are supported
	VisualAvailable() bool
}

// NewSender creates a platform-specific notification sender based on the current OS.
// For unsupported platforms, it returns a no-op sender.
func NewSender() Sender {
	switch runtime.GOOS {
	case "darwin":
		return &commandSender{tool: "osascript", args: darwinArgs}
	case "linux":
		return &commandSender{tool: "notify-send", args: linuxArgs}
	case "windows":
		return &commandSender{tool: "powershell", args: windowsArgs}
	default:
		return &noopSender{}
	}
}

// commandSender shells out to a platform notification tool.
type commandSender struct {
	tool string
	args func(n Notification) []string
}

func (s *commandSender) SendVisual(ctx context.Context, n Notification) error {
	cmd := exec.CommandContext(ctx, s.tool, s.args(n)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.tool, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (s *commandSender) VisualAvailable() bool {
	_, err := exec.LookPath(s.tool)
	return err == nil
}

func linuxArgs(n Notification) []string {
	return []string{"--urgency=normal", "--app-name=jiracommit", n.Title, n.Body()}
}

func darwinArgs(n Notification) []string {
	script := fmt.Sprintf("display notification %s with title %s",
		appleScriptString(n.Body()), appleScriptString(n.Title))
	return []string{"-e", script}
}

func windowsArgs(n Notification) []string {
	script := fmt.Sprintf(
		`[void][System.Reflection.Assembly]::LoadWithPartialName('System.Windows.Forms');`+
			`$n = New-Object System.Windows.Forms.NotifyIcon;`+
			`$n.Icon = [System.Drawing.SystemIcons]::Warning;`+
			`$n.Visible = $true;`+
			`$n.ShowBalloonTip(5000, %s, %s, 'Warning')`,
		powershellString(n.Title), powershellString(n.Body()))
	return []string{"-NoProfile", "-Command", script}
}

func appleScriptString(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func powershellString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// noopSender is a sender that does nothing (for unsupported platforms)
type noopSender struct{}

func (s *noopSender) SendVisual(_ context.Context, _ Notification) error { return nil }
func (s *noopSender) VisualAvailable() bool                              { return false }
