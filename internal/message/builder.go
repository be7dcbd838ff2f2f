package message

// Builder composes a commit message around an issue key. Stages must be
// applied in the order wrapper, infix, conventional commit, prefix; each one
// transforms the output of the previous stage.
type Builder struct {
	message string
}

// NewBuilder starts a composition from key. An empty key is composed like any other.
func NewBuilder(key string) *Builder {
	return &Builder{message: key}
}

// WithWrapper places the wrapper's first character before the message and
// its second after it. WrapperNone is the identity.
func (b *Builder) WithWrapper(w Wrapper) *Builder {
	b.message = wrap(b.message, w)
	return b
}

// WithInfix appends the infix separator.
func (b *Builder) WithInfix(i Infix) *Builder {
	b.message += i.Text()
	return b
}

// WithConventionalCommit prepends "<type>: " when commitType is non-empty.
func (b *Builder) WithConventionalCommit(commitType string) *Builder {
	if commitType != "" {
		b.message = commitType + ": " + b.message
	}
	return b
}

// WithPrefix prepends the prefix text; custom is used for PrefixCustom.
func (b *Builder) WithPrefix(p Prefix, custom string) *Builder {
	b.message = p.Text(custom) + b.message
	return b
}

// Message returns the composed message.
func (b *Builder) Message() string {
	return b.message
}

// Build runs every stage over key in the fixed order.
func Build(key string, opts Options) string {
	return NewBuilder(key).
		WithWrapper(opts.Wrapper).
		WithInfix(opts.Infix).
		WithConventionalCommit(opts.CommitType).
		WithPrefix(opts.Prefix, opts.PrefixText).
		Message()
}

func wrap(s string, w Wrapper) string {
	if w == WrapperNone || len(w) != 2 {
		return s
	}
	return string(w[0]) + s + string(w[1])
}
