// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Duplicate-Key Classification
//
// Unique-constraint violations (SQLSTATE 23505) are mapped to a 409
// [apperr.Duplicate] naming the offending column. The mapping from constraint
// name to field name is supplied by the calling repository, since only the
// repository knows its own schema.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/conduit/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// constraints maps Postgres constraint names to the JSON field they protect.
func Wrap(err error, resource string, constraints map[string]string) error {
	if err == nil {
		return nil
	}

	// Already classified upstream; keep the original status and message.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Unique violation -> duplicate key naming the field
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if field, ok := constraints[pgErr.ConstraintName]; ok {
			return apperr.Duplicate(field)
		}
		return apperr.Conflict("Resource already exists")
	}

	// 3. Everything else is an infrastructure failure. Never swallowed: the
	// cause rides along for server-side logging.
	return apperr.Internal(err)
}
