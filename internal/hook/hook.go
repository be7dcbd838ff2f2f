// Package hook runs jiracommit as git's prepare-commit-msg hook and manages the
// hook script in a repository.
package hook

import (
	"context"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/nemwiz/jiracommit/internal/message"
)

// Params describes one prepare-commit-msg invocation.
type Params struct {
	// MessageFile is the path git passes as the first hook argument.
	MessageFile string
	// Source is git's second hook argument: "", message, template, merge, squash or commit.
	Source string
	// Branch is the current branch name, "" when HEAD is detached.
	Branch string
	// Config selects key detection and formatting.
	Config message.Config
	// SkipSources lists sources for which the message is left untouched.
	SkipSources []string
	// Warner receives the missing-configuration warning.
	Warner message.Warner
	// CommentChar marks comment lines in the message file (default: #).
	CommentChar string
}

// Outcome reports what Run did.
type Outcome struct {
	Result  message.Result
	Skipped bool
	Written bool
}

// Run derives the commit message for p.Branch and writes it into p.MessageFile.
// The file is rewritten only when the derived message differs from what git
// already put there; when derivation falls back, the existing message is kept.
func Run(ctx context.Context, p Params) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	if p.Source != "" && slices.Contains(p.SkipSources, p.Source) {
		log.Printf("[hook] debug: skipping, message source is %q", p.Source)
		return Outcome{Skipped: true}, nil
	}

	data, err := os.ReadFile(p.MessageFile)
	if err != nil {
		return Outcome{}, fmt.Errorf("reading commit message file: %w", err)
	}
	content := string(data)
	previous := subject(content, p.CommentChar)

	deriver := message.Deriver{Warner: p.Warner, Debugf: log.Printf}
	result := deriver.Derive(p.Branch, p.Config)
	resolved := result.Resolve(previous)

	out := Outcome{Result: result}
	if resolved == previous || strings.TrimSpace(resolved) == firstLine(previous) {
		log.Printf("[hook] debug: message unchanged (state=%s)", result.State)
		return out, nil
	}

	if err := os.WriteFile(p.MessageFile, []byte(compose(resolved, previous, content)), 0o644); err != nil {
		return out, fmt.Errorf("writing commit message file: %w", err)
	}
	out.Written = true
	log.Printf("[hook] debug: wrote %q to %s", resolved, p.MessageFile)
	return out, nil
}

// subject returns the non-comment text of a commit message file, trimmed.
func subject(content, commentChar string) string {
	if commentChar == "" {
		commentChar = "#"
	}
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, commentChar) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

// compose places msg on the first line. An empty previous message means the
// file holds only git's comment block, which is kept below msg. Otherwise the
// existing text is pushed down as the body.
func compose(msg, previous, content string) string {
	if previous == "" {
		if !strings.HasPrefix(content, "\n") {
			content = "\n" + content
		}
		return msg + "\n" + content
	}
	return msg + "\n\n" + content
}
