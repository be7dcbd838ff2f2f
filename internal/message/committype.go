package message

import (
	"regexp"
	"strings"
)

// commitTypePattern repeats the alternation with "*", so it can match zero
// tokens. A branch that does not start with a type therefore yields an empty
// match rather than no match.
var commitTypePattern = regexp.MustCompile(`(` + strings.Join(CommitTypes, "|") + `)*`)

// ExtractCommitType returns the conventional-commit type at the leftmost match
// in branch. ok is false only when extraction is disabled; an enabled
// extraction always matches, possibly with the empty string.
func ExtractCommitType(branch string, enabled bool) (commitType string, ok bool) {
	if !enabled {
		return "", false
	}
	loc := commitTypePattern.FindStringIndex(branch)
	if loc == nil {
		return "", false
	}
	return branch[loc[0]:loc[1]], true
}
