package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# jiracommit configuration
# See 'jiracommit config keys' for all options

# Issue key detection
auto_detect_project_key: false        # Match any KEY-123 in the branch instead of project_keys
project_keys: []                      # Project keys tried in order, e.g. [PROJ, ABC]

# Conventional commits
conventional_commits: false           # Prepend feat/fix/... when the branch starts with one

# Message formatting (applied as wrapper, infix, conventional type, prefix)
message:
  wrapper: none                       # none | [] | () | {} | <>
  infix: none                         # none | space | colon | dash | pipe
  prefix: none                        # none | hash | custom
  prefix_text: ""                     # Text used when prefix is custom

# Missing-configuration warnings
notifications:
  enabled: false                      # Also send desktop notifications (terminal warning is always shown)
  type: terminal                      # terminal | visual | both

# prepare-commit-msg hook
hook:
  skip_sources: [message, merge, squash, commit]  # git message sources left untouched
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		// Neither detection mode is configured by default, so a fresh install
		// warns until the user sets project_keys or enables auto-detection.
		"auto_detect_project_key": false,
		"project_keys":            []string{},
		"project_prefix":          "",
		"conventional_commits":    false,
		"message": map[string]interface{}{
			"wrapper":     "none",
			"infix":       "none",
			"prefix":      "none",
			"prefix_text": "",
		},
		"notifications": map[string]interface{}{
			"enabled": false,
			"type":    "terminal",
		},
		// Sources where git (or the user) already supplied a message.
		"hook": map[string]interface{}{
			"skip_sources": []string{"message", "merge", "squash", "commit"},
		},
	}
}
