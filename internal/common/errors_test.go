package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad input"), KindValidation},
		{"unauthorized", Unauthorized("Unauthorized"), KindUnauthorized},
		{"forbidden", Forbidden("no"), KindForbidden},
		{"not found", NotFound("Document not found"), KindNotFound},
		{"conflict", Conflict("exists"), KindConflict},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("Document not found")), KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
		{"internal", Internal("db down", errors.New("dial tcp")), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestPublicMessage_HidesInternalDetail(t *testing.T) {
	err := Internal("failed to insert document", errors.New("pq: connection refused"))

	assert.Equal(t, "Something went wrong", PublicMessage(err))
	assert.Equal(t, "Something went wrong", PublicMessage(errors.New("raw")))
	assert.Equal(t, "Document not found", PublicMessage(NotFound("Document not found")))
}

func TestError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("pq: deadlock detected")
	err := Internal("failed to update document", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "deadlock detected")
}
