package exitcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, Success},
		{"plain error", fmt.Errorf("boom"), GeneralError},
		{"login rejected", errors.NewLoginRejectedError("Invalid email or password"), AuthError},
		{"not logged in", errors.NewNotLoggedInError("bookings"), AuthError},
		{"agent unreachable", errors.NewAgentUnreachableError(nil), NetworkError},
		{"bad payload", errors.New(errors.ErrCodeAgentPayload, "bad json"), NetworkError},
		{"missing field", errors.NewMissingFieldError("origin"), ValidationError},
		{"bad selection", errors.New(errors.ErrCodeBadSelection, "out of range"), ValidationError},
		{"state write", errors.New(errors.ErrCodeStateWrite, "disk full"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "Success", Description(Success))
	assert.Equal(t, "Authentication error", Description(AuthError))
	assert.Equal(t, "Unknown error", Description(99))
}
