package message

import (
	"errors"
	"regexp"
	"strings"
	"sync"
)

// ErrMissingConfiguration is returned when neither auto-detection nor any
// project key is configured. It is distinct from "no key found".
var ErrMissingConfiguration = errors.New("no project keys configured and auto-detection is off")

// autoDetectPattern matches a generic issue key such as ABC-123 or ABC_123.
var autoDetectPattern = regexp.MustCompile(`[A-Z]+[_-][0-9]+`)

// keyPatterns caches compiled per-key patterns; keys come from user config and
// repeat on every call.
var keyPatterns sync.Map

// keyAttempt is one (pattern, transform) step of known-key matching.
type keyAttempt struct {
	pattern   *regexp.Regexp
	transform func(string) string
}

// ExtractIssueKey returns the first issue key found in branch, or "" when none
// matches. It returns ErrMissingConfiguration when detection is not configured.
func ExtractIssueKey(branch string, cfg KeyDetection) (string, error) {
	if cfg.AutoDetect {
		return autoDetectPattern.FindString(branch), nil
	}
	if len(cfg.ProjectKeys) == 0 {
		return "", ErrMissingConfiguration
	}

	for _, key := range cfg.ProjectKeys {
		for _, attempt := range attemptsFor(key) {
			if match := attempt.pattern.FindString(branch); match != "" {
				return attempt.transform(match), nil
			}
		}
	}
	return "", nil
}

// attemptsFor returns the exact-case attempt followed by the lowercase retry.
// A key that is already lowercase yields a single attempt.
func attemptsFor(key string) []keyAttempt {
	attempts := []keyAttempt{{pattern: patternFor(key), transform: strings.ToUpper}}
	if lower := strings.ToLower(key); lower != key {
		attempts = append(attempts, keyAttempt{pattern: patternFor(lower), transform: strings.ToUpper})
	}
	return attempts
}

// patternFor builds "<key>[_-]+[0-9]+" with the key taken literally.
func patternFor(key string) *regexp.Regexp {
	if cached, ok := keyPatterns.Load(key); ok {
		return cached.(*regexp.Regexp)
	}
	re := regexp.MustCompile(regexp.QuoteMeta(key) + `[_-]+[0-9]+`)
	actual, _ := keyPatterns.LoadOrStore(key, re)
	return actual.(*regexp.Regexp)
}
