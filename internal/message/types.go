package message

import "fmt"

// Wrapper is a bracket pair placed around the issue key.
// Any value other than WrapperNone must be exactly two characters long.
type Wrapper string

const (
	// WrapperNone leaves the issue key untouched.
	WrapperNone        Wrapper = "none"
	WrapperBrackets    Wrapper = "[]"
	WrapperParentheses Wrapper = "()"
	WrapperBraces      Wrapper = "{}"
	WrapperAngle       Wrapper = "<>"
)

// Wrappers lists the accepted wrapper values in display order.
var Wrappers = []Wrapper{WrapperNone, WrapperBrackets, WrapperParentheses, WrapperBraces, WrapperAngle}

// Valid reports whether w is one of the known wrappers.
func (w Wrapper) Valid() bool {
	for _, known := range Wrappers {
		if w == known {
			return true
		}
	}
	return false
}

// Infix is the separator appended after the wrapped issue key.
type Infix string

const (
	InfixNone  Infix = "none"
	InfixSpace Infix = "space"
	InfixColon Infix = "colon"
	InfixDash  Infix = "dash"
	InfixPipe  Infix = "pipe"
)

// Infixes lists the accepted infix values in display order.
var Infixes = []Infix{InfixNone, InfixSpace, InfixColon, InfixDash, InfixPipe}

var infixText = map[Infix]string{
	InfixNone:  "",
	InfixSpace: " ",
	InfixColon: ": ",
	InfixDash:  " - ",
	InfixPipe:  " | ",
}

// Text returns the literal separator. Unknown values render as no infix.
func (i Infix) Text() string {
	return infixText[i]
}

// Valid reports whether i is one of the known infixes.
func (i Infix) Valid() bool {
	_, ok := infixText[i]
	return ok
}

// Prefix is text placed in front of the whole composed message.
type Prefix string

const (
	PrefixNone Prefix = "none"
	PrefixHash Prefix = "hash"
	// PrefixCustom uses the free text configured alongside it.
	PrefixCustom Prefix = "custom"
)

// Prefixes lists the accepted prefix values in display order.
var Prefixes = []Prefix{PrefixNone, PrefixHash, PrefixCustom}

// Text returns the literal prefix. custom is only used for PrefixCustom.
func (p Prefix) Text(custom string) string {
	switch p {
	case PrefixHash:
		return "#"
	case PrefixCustom:
		return custom
	default:
		return ""
	}
}

// Valid reports whether p is one of the known prefixes.
func (p Prefix) Valid() bool {
	switch p {
	case PrefixNone, PrefixHash, PrefixCustom:
		return true
	default:
		return false
	}
}

// CommitTypes are the conventional-commit types recognised in branch names,
// in the order they appear in the matching alternation.
var CommitTypes = []string{"feat", "fix", "build", "ci", "chore", "docs", "perf", "refactor", "style", "test"}

// KeyDetection selects how issue keys are found in a branch name.
type KeyDetection struct {
	// AutoDetect matches any run of uppercase letters followed by a separator and digits.
	AutoDetect bool
	// ProjectKeys are tried in order when AutoDetect is off.
	ProjectKeys []string
}

// Missing reports whether neither detection mode is configured.
func (d KeyDetection) Missing() bool {
	return !d.AutoDetect && len(d.ProjectKeys) == 0
}

// Options are the formatting selections applied by the builder.
type Options struct {
	Wrapper    Wrapper
	Infix      Infix
	Prefix     Prefix
	PrefixText string
	// CommitType is folded in when non-empty.
	CommitType string
}

// Config is an immutable snapshot of everything the pipeline needs.
type Config struct {
	KeyDetection
	ConventionalCommits bool
	Wrapper             Wrapper
	Infix               Infix
	Prefix              Prefix
	PrefixText          string
}

// DefaultConfig returns a Config with every formatting option switched off and
// no key detection configured.
func DefaultConfig() Config {
	return Config{
		Wrapper: WrapperNone,
		Infix:   InfixNone,
		Prefix:  PrefixNone,
	}
}

// Validate checks that the enumerated selections are known values.
func (c Config) Validate() error {
	if !c.Wrapper.Valid() {
		return fmt.Errorf("unknown wrapper %q", c.Wrapper)
	}
	if !c.Infix.Valid() {
		return fmt.Errorf("unknown infix %q", c.Infix)
	}
	if !c.Prefix.Valid() {
		return fmt.Errorf("unknown prefix %q", c.Prefix)
	}
	return nil
}

func (c Config) options(commitType string) Options {
	return Options{
		Wrapper:    c.Wrapper,
		Infix:      c.Infix,
		Prefix:     c.Prefix,
		PrefixText: c.PrefixText,
		CommitType: commitType,
	}
}
