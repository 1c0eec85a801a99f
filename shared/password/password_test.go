package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lakeside/shared/password"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("s3cret-passphrase")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-passphrase", hash)

	assert.NoError(t, password.Verify("s3cret-passphrase", hash))
	assert.ErrorIs(t, password.Verify("wrong-passphrase", hash), password.ErrInvalidPassword)
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := password.Hash("")
	assert.Error(t, err)
}

func TestVerifyEmptyInputs(t *testing.T) {
	assert.ErrorIs(t, password.Verify("", "hash"), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("pass", ""), password.ErrInvalidPassword)
}
