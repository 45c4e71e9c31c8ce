package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"plain error", stderrors.New("boom"), ExitFailure},
		{"exit error", &ExitError{Code: ExitConfigError}, ExitConfigError},
		{"wrapped exit error", fmt.Errorf("context: %w", NewConfigError("bad config", nil)), ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "bad config", (&ExitError{Code: ExitConfigError, Message: "bad config"}).Error())

	underlying := stderrors.New("yaml: line 3")
	assert.Equal(t, "yaml: line 3", (&ExitError{Code: ExitFailure, Err: underlying}).Error())

	assert.Equal(t, "exit code 2", (&ExitError{Code: ExitFailure}).Error())
}

func TestExitErrorUnwrap(t *testing.T) {
	underlying := stderrors.New("root cause")
	err := NewConfigError("failed to load config", underlying)

	assert.True(t, stderrors.Is(err, underlying))
	assert.Equal(t, ExitConfigError, err.Code)
}
