package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkylineError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SkylineError
		contains []string
	}{
		{
			name:     "code and message",
			err:      New(ErrCodeMissingField, "origin must not be empty"),
			contains: []string{"[INPUT-001]", "origin must not be empty"},
		},
		{
			name:     "with cause",
			err:      Wrap(ErrCodeAgentUnreachable, "could not reach the booking agent", fmt.Errorf("dial tcp: connection refused")),
			contains: []string{"[AGENT-001]", "connection refused"},
		},
		{
			name:     "with suggestions",
			err:      New(ErrCodeNotLoggedIn, "you must be logged in to book flights").WithSuggestion("Run 'skyline login' first"),
			contains: []string{"Suggestions:", "skyline login"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
		})
	}
}

func TestSkylineError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(ErrCodeStateRead, "failed to read session state", cause)
	require.ErrorIs(t, err, cause)
}

func TestIsCode(t *testing.T) {
	err := NewLoginRejectedError("Invalid email or password")
	assert.True(t, IsCode(err, ErrCodeLoginRejected))
	assert.False(t, IsCode(err, ErrCodeAgentUnreachable))
	assert.False(t, IsCode(fmt.Errorf("plain"), ErrCodeLoginRejected))
}

func TestNewLoginRejectedError_VerbatimDetail(t *testing.T) {
	err := NewLoginRejectedError("Invalid email or password")
	assert.Contains(t, err.Error(), "Invalid email or password")
}
