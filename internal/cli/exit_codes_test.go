package cli

import (
	"errors"
	"fmt"
	"testing"

	clierrors "github.com/nemwiz/jiracommit/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":           {err: nil, want: ExitSuccess},
		"plain error":   {err: errors.New("boom"), want: ExitFailure},
		"argument":      {err: clierrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"configuration": {err: clierrors.ConfigFileInvalid(errors.New("yaml")), want: ExitConfigError},
		"prerequisite":  {err: clierrors.NotAGitRepository("."), want: ExitPrerequisite},
		"runtime":       {err: clierrors.NewRuntimeError("io"), want: ExitFailure},
		"wrapped": {
			err:  fmt.Errorf("context: %w", clierrors.HookExists("/tmp/hook")),
			want: ExitPrerequisite,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
