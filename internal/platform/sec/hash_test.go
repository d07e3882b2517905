// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/conduit/internal/platform/sec"
)

/*
TestDerive_Deterministic verifies that the derivation is a pure function of
plaintext and salt.
*/
func TestDerive_Deterministic(t *testing.T) {
	salt := sec.NewSalt()

	first := sec.Derive("correct horse battery staple", salt)
	second := sec.Derive("correct horse battery staple", salt)

	assert.Equal(t, first, second)
}

/*
TestDerive_SaltSeparation verifies that the same plaintext under distinct
salts yields distinct hashes.
*/
func TestDerive_SaltSeparation(t *testing.T) {
	saltA := sec.NewSalt()
	saltB := sec.NewSalt()
	require.NotEqual(t, saltA, saltB)

	assert.NotEqual(t,
		sec.Derive("hunter2", saltA),
		sec.Derive("hunter2", saltB),
	)
}

/*
TestDerive_OutputShape verifies the hex encoding of the derived key. 512
output bytes encode to 1024 hex characters.
*/
func TestDerive_OutputShape(t *testing.T) {
	hash := sec.Derive("secret", sec.NewSalt())
	assert.Len(t, string(hash), 1024)
}

/*
TestNewSalt_Shape verifies salts are 16 random bytes hex-encoded.
*/
func TestNewSalt_Shape(t *testing.T) {
	salt := sec.NewSalt()
	assert.Len(t, string(salt), 32)
}

/*
TestVerifyPassword covers the accept/reject matrix for credential checks.
*/
func TestVerifyPassword(t *testing.T) {
	credential := sec.HashPassword("open sesame")

	tests := []struct {
		name      string
		plaintext string
		isValid   bool
	}{
		{"correct_password", "open sesame", true},
		{"wrong_password", "open says me", false},
		{"empty_password", "", false},
		{"case_sensitive", "Open Sesame", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := sec.VerifyPassword(tt.plaintext, credential.Hash, credential.Salt)
			assert.Equal(t, tt.isValid, ok)
		})
	}
}

/*
TestVerifyPassword_WrongSalt verifies that a valid hash paired with a foreign
salt never verifies.
*/
func TestVerifyPassword_WrongSalt(t *testing.T) {
	credential := sec.HashPassword("open sesame")
	foreign := sec.NewSalt()

	assert.False(t, sec.VerifyPassword("open sesame", credential.Hash, foreign))
}

/*
TestParseSalt_ParseHash checks the untrusted-input constructors.
*/
func TestParseSalt_ParseHash(t *testing.T) {
	_, ok := sec.ParseSalt(42)
	assert.False(t, ok)

	_, ok = sec.ParseHash(nil)
	assert.False(t, ok)

	salt, ok := sec.ParseSalt("aabbccdd")
	require.True(t, ok)
	assert.Equal(t, sec.Salt("aabbccdd"), salt)
}

/*
TestHashToken_Stable verifies token digests are stable and token-specific.
*/
func TestHashToken_Stable(t *testing.T) {
	assert.Equal(t, sec.HashToken("abc"), sec.HashToken("abc"))
	assert.NotEqual(t, sec.HashToken("abc"), sec.HashToken("abd"))
	assert.Len(t, sec.HashToken("abc"), 64)
}
