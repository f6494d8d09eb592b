package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHash_ProducesVerifiableHash(t *testing.T) {
	hashed, err := GenerateHash("1234")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$argon2id$"), "hash must be in argon2id PHC format")

	ok, err := VerifyHash(hashed, "1234")
	require.NoError(t, err)
	assert.True(t, ok, "correct PIN must verify")
}

func TestVerifyHash_RejectsWrongPin(t *testing.T) {
	hashed, err := GenerateHash("1234")
	require.NoError(t, err)

	ok, err := VerifyHash(hashed, "4321")
	require.NoError(t, err)
	assert.False(t, ok, "wrong PIN must not verify")
}

func TestGenerateHash_SaltsDiffer(t *testing.T) {
	first, err := GenerateHash("1234")
	require.NoError(t, err)
	second, err := GenerateHash("1234")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same PIN must hash differently each time")
}

func TestVerifyHash_MalformedHash(t *testing.T) {
	_, err := VerifyHash("not-a-hash", "1234")
	assert.Error(t, err)
}
