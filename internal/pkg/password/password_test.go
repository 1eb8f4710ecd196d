package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, Verify("password123", hash))
	assert.False(t, Verify("wrong-password", hash))
}

func TestHash_SaltedPerCall(t *testing.T) {
	first, err := Hash("password123")
	require.NoError(t, err)
	second, err := Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Verify("password123", first))
	assert.True(t, Verify("password123", second))
}

func TestIsHashed(t *testing.T) {
	hash, err := Hash("password123")
	require.NoError(t, err)

	assert.True(t, IsHashed(hash))
	assert.False(t, IsHashed("password123"))
	assert.False(t, IsHashed(""))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("secret"))
	assert.True(t, ValidatePassword("a-much-longer-password"))
	assert.False(t, ValidatePassword("short"))
	assert.False(t, ValidatePassword(""))
}
