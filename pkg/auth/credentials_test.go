package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStaticPasscodePlain(t *testing.T) {
	checker := NewStaticPasscode("secret-passcode")

	assert.True(t, checker.Check("secret-passcode"))
	assert.False(t, checker.Check("wrong"))
	assert.False(t, checker.Check(""))
}

func TestStaticPasscodeBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-passcode"), bcrypt.MinCost)
	require.NoError(t, err)

	checker := NewStaticPasscode(string(hash))

	assert.True(t, checker.Check("secret-passcode"))
	assert.False(t, checker.Check("wrong"))
}

func TestStaticPasscodeEmptySecretRejectsEverything(t *testing.T) {
	checker := NewStaticPasscode("")
	assert.False(t, checker.Check(""))
	assert.False(t, checker.Check("anything"))
}
