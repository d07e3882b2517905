// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"time"
)

// # User Data Access

// Repository defines the data access contract for user accounts.
//
// Implementations translate storage-specific failures into domain outcomes:
// a missing row becomes apperr.NotFound, a unique-constraint violation
// becomes apperr.Duplicate naming the offending field, and everything else
// becomes apperr.Internal. Rows returned from storage are re-validated
// through [ParseUser] before they become User values.
type Repository interface {

	/*
		FindByID returns the account with the given identifier.

		Parameters:
		  - context: context.Context
		  - id: ID

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id ID) (*User, error)

	/*
		FindByEmail returns the account with the given email address.

		Parameters:
		  - context: context.Context
		  - email: Email

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByEmail(context context.Context, email Email) (*User, error)

	/*
		Insert persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Duplicate on username/email collision, or
		    persistence failures
	*/
	Insert(context context.Context, user *User) error
}

// # Volatile Data Access

// TokenDenylist defines the contract for revoking bearer tokens before
// their natural expiry. Entries need to live only as long as the token they
// revoke, so TTL-based storage fits.
type TokenDenylist interface {

	/*
		Revoke records the token as invalidated for the given duration.

		Parameters:
		  - context: context.Context
		  - token: string (raw bearer token)
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, token string, ttl time.Duration) error

	/*
		IsRevoked reports whether the token has been invalidated.

		Parameters:
		  - context: context.Context
		  - token: string (raw bearer token)

		Returns:
		  - bool: Revocation status
		  - error: Retrieval failures
	*/
	IsRevoked(context context.Context, token string) (bool, error)
}
