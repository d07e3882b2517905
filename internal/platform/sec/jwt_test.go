// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/conduit/internal/platform/sec"
)

const (
	testSecret = "unit-test-secret"
	testUserID = "0191e3a4-5b6c-7000-8000-0123456789ab"
)

// fixedNow keeps token contents reproducible across runs.
var fixedNow = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

/*
TestIssueVerify_RoundTrip verifies a freshly issued token carries the
identity it was minted for and expires exactly 60 calendar days out.
*/
func TestIssueVerify_RoundTrip(t *testing.T) {
	token, err := sec.Issue(testUserID, "jacob", fixedNow, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := sec.Verify(token, testSecret, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "jacob", claims.Username)
	assert.Equal(t, fixedNow.AddDate(0, 0, 60).Unix(), claims.ExpiresAt)
}

/*
TestVerify_WrongSecret verifies a token signed under a different secret is
rejected as invalid, not expired.
*/
func TestVerify_WrongSecret(t *testing.T) {
	token, err := sec.Issue(testUserID, "jacob", fixedNow, testSecret)
	require.NoError(t, err)

	_, err = sec.Verify(token, "a-different-secret", fixedNow)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestVerify_Expired verifies expiry is judged against the injected clock.
*/
func TestVerify_Expired(t *testing.T) {
	token, err := sec.Issue(testUserID, "jacob", fixedNow, testSecret)
	require.NoError(t, err)

	// One second past the 60-day window.
	after := fixedNow.AddDate(0, 0, 60).Add(time.Second)

	_, err = sec.Verify(token, testSecret, after)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestVerify_Garbage verifies non-JWT input is rejected as invalid.
*/
func TestVerify_Garbage(t *testing.T) {
	_, err := sec.Verify("not-a-token", testSecret, fixedNow)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestIssue_EmptySecret verifies tokens are never minted without a signing key.
*/
func TestIssue_EmptySecret(t *testing.T) {
	_, err := sec.Issue(testUserID, "jacob", fixedNow, "")
	assert.ErrorIs(t, err, sec.ErrEmptySecret)
}

// signedWith mints a token with arbitrary claims, bypassing Issue, so tests
// can produce structurally broken but correctly signed tokens.
func signedWith(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

/*
TestVerify_ClaimStructure verifies that a correctly signed token still fails
claim re-validation when its payload is structurally wrong.
*/
func TestVerify_ClaimStructure(t *testing.T) {
	future := float64(fixedNow.Add(time.Hour).Unix())

	tests := []struct {
		name   string
		claims jwt.MapClaims
		field  string
	}{
		{"missing_id", jwt.MapClaims{"username": "jacob", "exp": future}, "id"},
		{"non_uuid_id", jwt.MapClaims{"id": "12345", "username": "jacob", "exp": future}, "id"},
		{"numeric_id", jwt.MapClaims{"id": 42.0, "username": "jacob", "exp": future}, "id"},
		{"missing_username", jwt.MapClaims{"id": testUserID, "exp": future}, "username"},
		{"numeric_username", jwt.MapClaims{"id": testUserID, "username": 7.0, "exp": future}, "username"},
		{"missing_exp", jwt.MapClaims{"id": testUserID, "username": "jacob"}, "exp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.Verify(signedWith(t, tt.claims), testSecret, fixedNow)

			var claimErr *sec.ClaimError
			require.ErrorAs(t, err, &claimErr)
			assert.Equal(t, tt.field, claimErr.Field)
		})
	}
}

/*
TestVerifier_Binding verifies the bound Verifier reads its clock per call.
*/
func TestVerifier_Binding(t *testing.T) {
	token, err := sec.Issue(testUserID, "jacob", fixedNow, testSecret)
	require.NoError(t, err)

	verifier := sec.Verifier{Secret: testSecret, Now: func() time.Time { return fixedNow }}
	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)

	late := sec.Verifier{Secret: testSecret, Now: func() time.Time {
		return fixedNow.AddDate(0, 0, 61)
	}}
	_, err = late.Verify(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}
