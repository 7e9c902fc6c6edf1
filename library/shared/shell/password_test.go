package shell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell"
)

func Test_PasswordHasher_HashThenVerify(t *testing.T) {
	// arrange
	hasher := shell.PasswordHasher{Cost: bcrypt.MinCost}

	// act
	hash, err := hasher.Hash("correct horse battery")

	// assert
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash, "the hash must not be the password")
	assert.NoError(t, hasher.Verify(hash, "correct horse battery"), "the right password should verify")
	assert.ErrorIs(t, hasher.Verify(hash, "wrong horse battery"), core.ErrUnauthorized, "a wrong password should not verify")
	assert.ErrorIs(t, hasher.Verify("", "anything"), core.ErrUnauthorized, "an empty hash should not verify")
}
