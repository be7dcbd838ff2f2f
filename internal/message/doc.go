// Package message derives a commit message from a git branch name.
//
// The pipeline has three leaf steps and one orchestrator:
//   - ExtractIssueKey finds an issue key (e.g. PROJ-42) using either a generic
//     pattern or an ordered list of known project keys.
//   - ExtractCommitType finds a conventional-commit type (feat, fix, ...).
//   - Builder composes the key and type with wrapper, infix and prefix rules.
//   - Deriver runs the three and applies the missing-configuration guard.
//
// Every function in this package is pure with respect to its inputs. Configuration
// is passed by value on each call; the only side effect is the injected Warner.
package message
