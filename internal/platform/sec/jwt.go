// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taibuivan/conduit/internal/platform/constants"
)

// # Token Errors

var (
	// ErrEmptySecret is returned when a sign/verify call is attempted without
	// a signing key. Production deployments must configure SECRET explicitly.
	ErrEmptySecret = errors.New("sec: signing secret must not be empty")

	// ErrTokenInvalid is returned when the signature does not verify or the
	// token is otherwise malformed.
	ErrTokenInvalid = errors.New("sec: token invalid")

	// ErrTokenExpired is returned when the token's exp claim is in the past.
	ErrTokenExpired = errors.New("sec: token expired")
)

// ClaimError reports a structurally invalid claim in an otherwise
// cryptographically valid token.
//
// # Why re-validate after verification?
//
// The JWT library returns loosely-typed claim values. Structural re-validation
// after signature verification is mandatory, not optional: a token signed with
// the right key can still carry claims of the wrong shape.
type ClaimError struct {
	// Field is the offending claim name (id, username, exp).
	Field string
	// Reason is a human-readable description of the failure.
	Reason string
}

// Error implements the error interface.
func (e *ClaimError) Error() string {
	return fmt.Sprintf("sec: claim %q: %s", e.Field, e.Reason)
}

// # Claims

// Claims is the identity payload embedded inside a Conduit bearer token.
//
// By embedding the user ID and username directly, authenticated handlers can
// reconstruct the active user context without a database round trip.
type Claims struct {
	// UserID is the account identifier (UUID string).
	UserID string
	// Username is the account's display handle.
	Username string
	// ExpiresAt is the absolute expiry in epoch seconds.
	ExpiresAt int64
}

// # Issuance

// Issue builds and signs a bearer token for the given identity using HS256
// with the process-wide symmetric secret.
//
// Expiry is now + 60 calendar days (AddDate semantics: crossing a month
// boundary shifts the day-of-month). The issued-at claim is attached
// alongside. Time is injected so issuance is deterministic and testable.
func Issue(userID, username string, now time.Time, secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	expiry := now.AddDate(0, 0, constants.TokenLifetimeDays)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       userID,
		"username": username,
		"exp":      expiry.Unix(),
		"iat":      now.Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signed, nil
}

// # Verification

// Verify checks the signature and expiry of a token string, then structurally
// validates the decoded claims.
//
// Failure modes:
//   - [ErrTokenExpired] when now is past the exp claim.
//   - [ErrTokenInvalid] for signature mismatch or malformed tokens.
//   - [*ClaimError] when a decoded claim is missing or of the wrong shape.
func Verify(tokenString string, secret string, now time.Time) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	token, err := parser.Parse(tokenString, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	payload, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		// A payload that decoded to something other than a keyed record.
		return nil, &ClaimError{Field: "payload", Reason: "not a keyed record"}
	}

	return parseClaims(payload)
}

// parseClaims re-validates the loosely-typed claim map into [Claims].
func parseClaims(payload jwt.MapClaims) (*Claims, error) {
	id, ok := payload["id"].(string)
	if !ok || uuid.Validate(id) != nil {
		return nil, &ClaimError{Field: "id", Reason: "not a valid identifier"}
	}

	username, ok := payload["username"].(string)
	if !ok {
		return nil, &ClaimError{Field: "username", Reason: "not a string"}
	}

	exp, ok := asEpochSeconds(payload["exp"])
	if !ok {
		return nil, &ClaimError{Field: "exp", Reason: "not a number"}
	}

	return &Claims{UserID: id, Username: username, ExpiresAt: exp}, nil
}

// # Middleware Binding

// Verifier binds the process-wide secret and a clock so transport middleware
// can verify tokens without carrying configuration around.
type Verifier struct {
	// Secret is the symmetric signing key.
	Secret string
	// Now supplies the current time. Injected for deterministic tests.
	Now func() time.Time
}

// Verify implements the single-method verification contract used by the
// authentication middleware.
func (v Verifier) Verify(tokenString string) (*Claims, error) {
	return Verify(tokenString, v.Secret, v.Now())
}

// asEpochSeconds accepts the numeric JSON shapes the decoder may produce.
func asEpochSeconds(value any) (int64, bool) {
	switch n := value.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}
