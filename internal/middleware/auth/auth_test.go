package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationCode_KnownDigest(t *testing.T) {
	// sha256("user@example.com")
	assert.Equal(t,
		"b4c9a289323b21a01c3e940f150eb9b8c542587f1abfd8f0e1cc1ffc5e475514",
		ConfirmationCode("user@example.com"))
}

func TestCheckConfirmationCode(t *testing.T) {
	code := ConfirmationCode("reader@example.com")

	assert.True(t, CheckConfirmationCode("reader@example.com", code))
	assert.False(t, CheckConfirmationCode("other@example.com", code))
	assert.False(t, CheckConfirmationCode("reader@example.com", ""))
}

// The code is derivable by anyone: there is no server-side secret involved.
func TestConfirmationCode_IsDeterministicWithoutSecret(t *testing.T) {
	assert.Equal(t, ConfirmationCode("victim@example.com"), ConfirmationCode("victim@example.com"))
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "s3cret-pass"))
	assert.Error(t, VerifyPassword(hash, "wrong"))
	assert.Error(t, VerifyPassword("", "anything"))
}
