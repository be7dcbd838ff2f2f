// Package git provides the repository queries jiracommit needs: current branch,
// repository and git-dir discovery, branch listing and working-tree change counts.
// All operations use go-git and accept a path inside the repository; an empty
// path means the current working directory.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// CurrentBranch returns the short name of the branch HEAD points at.
// Returns empty string if in detached HEAD state. An unborn branch (a fresh
// repository before its first commit) is still reported by name.
func CurrentBranch(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		logDebug("[git] CurrentBranch: detached HEAD state")
		return "", nil
	}

	branch := head.Target().Short()
	logDebug("[git] CurrentBranch: %s", branch)
	return branch, nil
}

// RepositoryRoot returns the absolute path to the working tree root.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// IsRepository checks if path is within a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsRepository(%s): %v", path, result)
	return result
}

// GitDir returns the absolute path of the repository's git directory
// (the directory holding HEAD, usually <root>/.git).
func GitDir(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}
	return gitDir(repo)
}

func gitDir(repo *git.Repository) (string, error) {
	storage, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", fmt.Errorf("repository has no on-disk git directory")
	}
	dir, err := filepath.Abs(storage.Filesystem().Root())
	if err != nil {
		return "", fmt.Errorf("resolving git directory: %w", err)
	}
	logDebug("[git] GitDir: %s", dir)
	return dir, nil
}

// HooksDir returns the directory git runs hooks from. core.hooksPath is
// honoured (relative values are resolved against the working tree root);
// otherwise it is <git-dir>/hooks.
func HooksDir(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	cfg, err := repo.Config()
	if err != nil {
		return "", fmt.Errorf("reading repository config: %w", err)
	}
	if hooksPath := cfg.Raw.Section("core").Option("hooksPath"); hooksPath != "" {
		if !filepath.IsAbs(hooksPath) {
			worktree, err := repo.Worktree()
			if err != nil {
				return "", fmt.Errorf("getting worktree: %w", err)
			}
			hooksPath = filepath.Join(worktree.Filesystem.Root(), hooksPath)
		}
		logDebug("[git] HooksDir: core.hooksPath=%s", hooksPath)
		return hooksPath, nil
	}

	dir, err := gitDir(repo)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hooks"), nil
}

// CommentChar returns the character git uses to mark comment lines in commit
// messages: the first character of core.commentChar, or "#" when it is unset
// or "auto".
func CommentChar(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	cfg, err := repo.Config()
	if err != nil {
		return "", fmt.Errorf("reading repository config: %w", err)
	}
	value := cfg.Raw.Section("core").Option("commentChar")
	if value == "" || value == "auto" {
		return "#", nil
	}
	char := string([]rune(value)[0])
	logDebug("[git] CommentChar: core.commentChar=%s", char)
	return char, nil
}

// ChangedFiles returns the number of tracked files with staged or unstaged
// changes. Untracked files are not counted.
func ChangedFiles(path string) (int, error) {
	repo, err := openRepo(path)
	if err != nil {
		return 0, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return 0, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return 0, fmt.Errorf("getting worktree status: %w", err)
	}

	changed := 0
	for _, s := range status {
		if s.Worktree == git.Untracked {
			continue
		}
		if s.Staging != git.Unmodified || s.Worktree != git.Unmodified {
			changed++
		}
	}
	logDebug("[git] ChangedFiles: %d", changed)
	return changed, nil
}

// BranchInfo contains metadata about a git branch
type BranchInfo struct {
	Name     string
	IsRemote bool
	Remote   string // Remote name (e.g., "origin") if IsRemote is true
}

// Branches returns the repository's local branches sorted by name and, when
// includeRemote is set, remote-tracking branches that have no local counterpart.
func Branches(path string, includeRemote bool) ([]BranchInfo, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	branches, err := collectLocalBranches(repo, nil, seen)
	if err != nil {
		return nil, err
	}

	if includeRemote {
		branches, err = collectRemoteBranches(repo, branches, seen)
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Name < branches[j].Name
	})

	logDebug("[git] Branches: found %d branches", len(branches))
	return branches, nil
}

// LocalBranches returns the names of the local branches, sorted.
func LocalBranches(path string) ([]string, error) {
	branches, err := Branches(path, false)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.Name
	}
	return names, nil
}

// collectLocalBranches iterates local branches and adds them to the list.
func collectLocalBranches(repo *git.Repository, branches []BranchInfo, seen map[string]bool) ([]BranchInfo, error) {
	branchIter, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing local branches: %w", err)
	}

	err = branchIter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if name == "HEAD" {
			return nil
		}
		branches = addBranchWithDedup(branches, BranchInfo{Name: name}, seen)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating local branches: %w", err)
	}

	return branches, nil
}

// collectRemoteBranches iterates remote-tracking branches and adds them to the list.
func collectRemoteBranches(repo *git.Repository, branches []BranchInfo, seen map[string]bool) ([]BranchInfo, error) {
	refIter, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}

	err = refIter.ForEach(func(ref *plumbing.Reference) error {
		if !ref.Name().IsRemote() {
			return nil
		}

		parts := strings.SplitN(ref.Name().Short(), "/", 2) // e.g., "origin/main"
		if len(parts) != 2 || parts[1] == "HEAD" {
			return nil
		}

		info := BranchInfo{
			Name:     parts[1],
			IsRemote: true,
			Remote:   parts[0],
		}
		branches = addBranchWithDedup(branches, info, seen)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating remote branches: %w", err)
	}

	return branches, nil
}

// addBranchWithDedup adds a branch, handling duplicates (prefer local over remote).
// If branch name already seen and new branch is local, replaces the existing
// remote branch in-place. Otherwise appends if not seen.
func addBranchWithDedup(branches []BranchInfo, info BranchInfo, seen map[string]bool) []BranchInfo {
	if seen[info.Name] && !info.IsRemote {
		for i, b := range branches {
			if b.Name == info.Name && b.IsRemote {
				branches[i] = info
				break
			}
		}
		return branches
	}

	if seen[info.Name] {
		return branches
	}

	seen[info.Name] = true
	return append(branches, info)
}
