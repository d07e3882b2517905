// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Identity use cases: registration, login, current-user resolution, logout.
//
// # Review Process
//
// This service is critical for security. Any changes to credential handling,
// token issuance, or revocation must be reviewed by the security team.

package user

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/taibuivan/conduit/internal/platform/apperr"
	"github.com/taibuivan/conduit/internal/platform/sec"
)

// # Contracts & Types

// Service implements user identity use cases.
//
// The clock and identifier generator are injected so every observable output
// (token expiry, account IDs) is deterministic under test.
type Service struct {
	repository Repository
	denylist   TokenDenylist
	secret     string
	now        func() time.Time
	newID      IDGenerator
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	repository Repository,
	denylist TokenDenylist,
	secret string,
	now func() time.Time,
	newID IDGenerator,
) *Service {
	return &Service{
		repository: repository,
		denylist:   denylist,
		secret:     secret,
		now:        now,
		newID:      newID,
	}
}

// mapParseError converts a structural parse failure into a client-facing
// validation error. Field details are sorted for stable response bodies.
func mapParseError(err error) error {
	if errors.Is(err, ErrNotAnObject) {
		return apperr.ValidationError("Request body is not an object")
	}

	var invalid *InvalidFieldsError
	if errors.As(err, &invalid) {
		details := make([]apperr.FieldError, 0, len(invalid.Fields))
		for field, message := range invalid.Fields {
			details = append(details, apperr.FieldError{Field: field, Message: message})
		}
		sort.Slice(details, func(i, j int) bool { return details[i].Field < details[j].Field })
		return apperr.ValidationError("Validation failed", details...)
	}

	return apperr.Internal(err)
}

// # Registration Flow

/*
Register validates, hashes, and persists a brand new user account, then
issues its first bearer token.

Description: The raw body is pushed through the structural parser so every
invalid field is reported at once. Uniqueness is NOT pre-checked here - the
database constraint is the arbiter, which keeps concurrent registrations of
the same email race-free.

Parameters:
  - context: context.Context
  - raw: any (decoded request body, shape unverified)

Returns:
  - *AuthView: Public view with a fresh token
  - error: Validation failures, apperr.Duplicate, or storage errors
*/
func (service *Service) Register(context context.Context, raw any) (*AuthView, error) {

	// Structural validation with accumulation.
	payload, err := ParseCreateUserPayload(raw)
	if err != nil {
		return nil, mapParseError(err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index
	// fragmentation.
	created := Create(*payload, service.newID)

	// Persist; a username/email collision surfaces as apperr.Duplicate.
	if err := service.repository.Insert(context, &created); err != nil {
		return nil, err
	}

	view, err := ToAuthView(created, service.now(), service.secret)
	if err != nil {
		return nil, fmt.Errorf("user_service_register_token_failed: %w", err)
	}

	return view, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login verifies credentials and issues a bearer token.

Description: Every failure path - unknown email, malformed email, wrong
password - collapses into the same Unauthorized response so the endpoint
cannot be used to enumerate registered addresses.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthView: Public view with a fresh token
  - error: apperr.Unauthorized or infrastructure failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthView, error) {
	invalidCredentials := apperr.Unauthorized("Invalid email or password")

	email, ok := ParseEmail(input.Email)
	if !ok {
		return nil, invalidCredentials
	}

	account, err := service.repository.FindByEmail(context, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, invalidCredentials
		}
		return nil, err
	}

	if !IsValidPassword(input.Password, *account) {
		return nil, invalidCredentials
	}

	view, err := ToAuthView(*account, service.now(), service.secret)
	if err != nil {
		return nil, fmt.Errorf("user_service_login_token_failed: %w", err)
	}

	return view, nil
}

// # Session Flow

/*
Current resolves the authenticated caller into a fresh public view.

Description: The claims have already survived signature and structural
verification at the middleware; here they are resolved against storage and
the token is re-issued so its expiry window slides forward.

Parameters:
  - context: context.Context
  - claims: *sec.Claims

Returns:
  - *AuthView: Public view with a re-issued token
  - error: apperr.NotFound when the account no longer exists
*/
func (service *Service) Current(context context.Context, claims *sec.Claims) (*AuthView, error) {
	id, ok := ParseID(claims.UserID)
	if !ok {
		return nil, apperr.Unauthorized("Token subject is not a valid user")
	}

	account, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	view, err := ToAuthView(*account, service.now(), service.secret)
	if err != nil {
		return nil, fmt.Errorf("user_service_current_token_failed: %w", err)
	}

	return view, nil
}

/*
Logout revokes the caller's bearer token until its natural expiry.

Description: The denylist entry's TTL equals the token's remaining lifetime,
so revocations never outlive the tokens they suppress. A token already past
its expiry needs no entry at all.

Parameters:
  - context: context.Context
  - token: string (raw bearer token)
  - claims: *sec.Claims

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, token string, claims *sec.Claims) error {
	remaining := time.Unix(claims.ExpiresAt, 0).Sub(service.now())
	if remaining <= 0 {
		return nil
	}

	if err := service.denylist.Revoke(context, token, remaining); err != nil {
		return fmt.Errorf("user_service_logout_failed: %w", err)
	}

	return nil
}
