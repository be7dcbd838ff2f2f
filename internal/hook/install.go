package hook

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	clierrors "github.com/nemwiz/jiracommit/internal/errors"
	"github.com/nemwiz/jiracommit/internal/git"
)

// Name is the git hook jiracommit installs.
const Name = "prepare-commit-msg"

// marker identifies hook scripts written by Install.
const marker = "# installed by jiracommit"

// InstallOptions configures Install.
type InstallOptions struct {
	// Force overwrites a hook script not written by jiracommit.
	Force bool
	// Executable is the command the hook runs (default: jiracommit, resolved via PATH).
	Executable string
}

// Script returns the hook script that invokes executable.
func Script(executable string) string {
	if executable == "" {
		executable = "jiracommit"
	}
	return fmt.Sprintf(`#!/bin/sh
%s
exec %s hook run "$@"
`, marker, shellQuote(executable))
}

// shellQuote single-quotes s for POSIX sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Path returns the location of the prepare-commit-msg hook for the repository at repoPath.
func Path(repoPath string) (string, error) {
	dir, err := git.HooksDir(repoPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, Name), nil
}

// Installed reports whether the hook at path was written by jiracommit.
func Installed(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading hook: %w", err)
	}
	return strings.Contains(string(data), marker), nil
}

// Install writes the prepare-commit-msg hook into the repository at repoPath
// and returns its path. An existing jiracommit hook is replaced; a foreign
// hook is only replaced with opts.Force.
func Install(repoPath string, opts InstallOptions) (string, error) {
	path, err := Path(repoPath)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		ours, err := Installed(path)
		if err != nil {
			return "", err
		}
		if !ours && !opts.Force {
			return "", clierrors.HookExists(path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating hooks directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Script(opts.Executable)), 0o755); err != nil {
		return "", fmt.Errorf("writing hook: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o755); err != nil {
		return "", fmt.Errorf("making hook executable: %w", err)
	}

	log.Printf("[hook] debug: installed %s", path)
	return path, nil
}

// Uninstall removes the jiracommit hook from the repository at repoPath and
// returns the removed path. Hooks not written by jiracommit are left alone.
func Uninstall(repoPath string) (string, error) {
	path, err := Path(repoPath)
	if err != nil {
		return "", err
	}

	ours, err := Installed(path)
	if err != nil {
		return "", err
	}
	if !ours {
		return "", clierrors.HookNotInstalled(path)
	}

	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("removing hook: %w", err)
	}
	log.Printf("[hook] debug: removed %s", path)
	return path, nil
}
