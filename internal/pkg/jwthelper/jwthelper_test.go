package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("test-key")

	token, err := GenerateToken(key, 42, "test-agent")
	require.NoError(t, err)

	claims, err := ParseToken(key, token, "test-agent")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestParseTokenWrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("test-key"), 42, "test-agent")
	require.NoError(t, err)

	_, err = ParseToken([]byte("other-key"), token, "test-agent")
	assert.Error(t, err)
}

func TestParseTokenWrongUserAgent(t *testing.T) {
	token, err := GenerateToken([]byte("test-key"), 42, "test-agent")
	require.NoError(t, err)

	_, err = ParseToken([]byte("test-key"), token, "another-agent")
	assert.Error(t, err)
}
