package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfirmationCodeRoundtrip(t *testing.T) {
	code := NewConfirmationCode()
	assert.NotEmpty(t, code)
	assert.NotEqual(t, code, NewConfirmationCode())

	hash, err := HashConfirmationCode(code)
	assert.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.True(t, CheckConfirmationCode(hash, time.Now(), code))
	assert.False(t, CheckConfirmationCode(hash, time.Now(), "wrong-code"))
}

func TestConfirmationCodeExpiry(t *testing.T) {
	code := NewConfirmationCode()
	hash, err := HashConfirmationCode(code)
	assert.NoError(t, err)

	justInside := time.Now().Add(-ConfirmationTTL + time.Minute)
	assert.True(t, CheckConfirmationCode(hash, justInside, code))

	justOutside := time.Now().Add(-ConfirmationTTL - time.Minute)
	assert.False(t, CheckConfirmationCode(hash, justOutside, code))
}
