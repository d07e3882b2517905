// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementation of the user [Repository].
//
// # Architecture
//
// Rows read from storage are treated as untrusted input: each one is scanned
// into a raw record and pushed back through [ParseUser] before the domain
// sees it. A row that fails re-validation indicates corrupted or
// hand-modified data and surfaces as an internal error, never as a User.
//
// # err Mapping
//
// Storage-specific errors (pgx.ErrNoRows, unique-constraint violations) are
// mapped to domain-friendly [apperr.AppError] values via dberr.Wrap to avoid
// leaking storage implementation details.

package user

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/conduit/internal/platform/apperr"
	"github.com/taibuivan/conduit/internal/platform/dberr"
)

// accountConstraints maps unique-index names on users.account to the domain
// field each one guards. dberr.Wrap uses this to name the duplicated field.
var accountConstraints = map[string]string{
	"account_username_key": FieldUsername,
	"account_email_key":    FieldEmail,
}

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const accountColumns = "id, username, email, bio, image, favorites, following, hash, salt"

// scanAccount reads one account row into a raw record and re-validates it
// through the domain parser.
func scanAccount(row interface{ Scan(...any) error }) (*User, error) {
	var (
		id        string
		username  string
		email     string
		bio       *string
		image     *string
		favorites []string
		following []string
		hash      string
		salt      string
	)

	if err := row.Scan(&id, &username, &email, &bio, &image, &favorites, &following, &hash, &salt); err != nil {
		return nil, err
	}

	record := map[string]any{
		FieldID:        id,
		FieldUsername:  username,
		FieldEmail:     email,
		FieldFavorites: favorites,
		FieldFollowing: following,
		FieldHash:      hash,
		FieldSalt:      salt,
	}
	if bio != nil {
		record[FieldBio] = *bio
	}
	if image != nil {
		record[FieldImage] = *image
	}

	parsed, err := ParseUser(record)
	if err != nil {
		// The row violates domain invariants; this is a storage-integrity
		// problem, not a client problem.
		return nil, apperr.Internal(err)
	}
	return parsed, nil
}

/*
FindByID retrieves a user account by its primary key.

Description: Primary key resolution with domain re-validation of the row.

Parameters:
  - context: context.Context
  - id: ID

Returns:
  - *User: Hydrated, re-validated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id ID) (*User, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users.account
		WHERE id = $1`

	parsed, err := scanAccount(repository.pool.QueryRow(context, query, string(id)))
	if err != nil {
		return nil, dberr.Wrap(err, "User", accountConstraints)
	}
	return parsed, nil
}

/*
FindByEmail retrieves a user account by its unique email address.

Description: Lookup used by login; the caller decides how much to reveal
about a miss.

Parameters:
  - context: context.Context
  - email: Email

Returns:
  - *User: Hydrated, re-validated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByEmail(context context.Context, email Email) (*User, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users.account
		WHERE email = $1`

	parsed, err := scanAccount(repository.pool.QueryRow(context, query, string(email)))
	if err != nil {
		return nil, dberr.Wrap(err, "User", accountConstraints)
	}
	return parsed, nil
}

/*
Insert persists a new user account into the users.account table.

Description: Uniqueness of username and email is enforced by database
constraints, not by a read-then-write check, so concurrent registrations of
the same email race safely - exactly one wins and the rest receive an
apperr.Duplicate naming the colliding field. Timestamps come from the column
defaults; this layer reads no clock.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Duplicate, or persistence failures
*/
func (repository *PostgresRepository) Insert(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, bio, image, favorites, following, hash, salt
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	favorites := make([]string, len(user.Favorites))
	for i, memberID := range user.Favorites {
		favorites[i] = string(memberID)
	}
	following := make([]string, len(user.Following))
	for i, memberID := range user.Following {
		following[i] = string(memberID)
	}

	var image *string
	if user.Image != nil {
		link := string(*user.Image)
		image = &link
	}

	_, err := repository.pool.Exec(context, query,
		string(user.ID),
		user.Username,
		string(user.Email),
		user.Bio,
		image,
		favorites,
		following,
		string(user.Hash),
		string(user.Salt),
	)

	if err != nil {
		return dberr.Wrap(err, "User", accountConstraints)
	}

	return nil
}
