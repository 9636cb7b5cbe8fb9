package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.True(t, r.IsAdmin())

	r, err = ParseRole("staff")
	require.NoError(t, err)
	assert.False(t, r.IsAdmin())

	_, err = ParseRole("Admin")
	assert.Error(t, err)
	assert.False(t, Role("root").IsAdmin())
}

func TestSession_IsAdmin_NilSafe(t *testing.T) {
	var s *Session
	assert.False(t, s.IsAdmin())
	assert.True(t, (&Session{Role: RoleAdmin}).IsAdmin())
}

func TestDocumentChanges_Empty(t *testing.T) {
	assert.True(t, DocumentChanges{}.Empty())

	tags := ""
	assert.False(t, DocumentChanges{Tags: &tags}.Empty())
}

func TestParseAccessLevel(t *testing.T) {
	for _, s := range []string{"public", "internal", "confidential"} {
		lvl, err := ParseAccessLevel(s)
		require.NoError(t, err)
		assert.Equal(t, AccessLevel(s), lvl)
	}
	_, err := ParseAccessLevel("secret")
	assert.Error(t, err)
}
