// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
User record parsing.

Untrusted data - decoded request bodies, raw database rows - enters the
domain only through the parsers in this file. Validation accumulates: every
field is checked regardless of earlier failures, so a client learns about
all problems in one round trip instead of one per request.
*/
package user

import (
	"fmt"
	"sort"
	"strings"

	"github.com/taibuivan/conduit/internal/platform/sec"
)

// # Error Types

// ErrNotAnObject reports input whose top-level shape is not a key/value
// record, so no field-level diagnosis is possible.
var ErrNotAnObject = fmt.Errorf("not an object")

// FieldErrors maps a field name to the description of what is wrong with it.
type FieldErrors map[string]string

// Merge folds other into f and returns f. Field sets from independent checks
// never overlap, so merge order does not matter.
func (f FieldErrors) Merge(other FieldErrors) FieldErrors {
	for field, message := range other {
		f[field] = message
	}
	return f
}

// InvalidFieldsError reports a record whose shape was fine but whose fields
// failed validation. Fields holds every failing field, not just the first.
type InvalidFieldsError struct {
	Fields FieldErrors
}

func (e *InvalidFieldsError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// # Field Messages

const (
	msgNotValidID    = "Not a valid ID"
	msgNotString     = "Not a string"
	msgNotValidEmail = "Not a valid email"
	msgNotValidURL   = "Not a valid URL"
	msgNotArrayOfIDs = "Not an array of valid IDs"
	msgNotRecord     = "Not a record"
)

// # Record Parsing

// asRecord narrows untrusted input to a key/value record.
func asRecord(input any) (map[string]any, bool) {
	record, ok := input.(map[string]any)
	return record, ok
}

// parseIDField validates a single identifier field.
func parseIDField(record map[string]any, field string) (ID, FieldErrors) {
	id, ok := ParseID(record[field])
	if !ok {
		return "", FieldErrors{field: msgNotValidID}
	}
	return id, nil
}

// parseStringField validates a required string field. Any string is
// acceptable, including the empty one; only a missing or non-string value
// fails.
func parseStringField(record map[string]any, field string) (string, FieldErrors) {
	s, ok := record[field].(string)
	if !ok {
		return "", FieldErrors{field: msgNotString}
	}
	return s, nil
}

// parseEmailField validates an email field.
func parseEmailField(record map[string]any, field string) (Email, FieldErrors) {
	email, ok := ParseEmail(record[field])
	if !ok {
		return "", FieldErrors{field: msgNotValidEmail}
	}
	return email, nil
}

// parseOptionalString validates a field that may be absent. Absent yields
// nil with no error; present but non-string is an error.
func parseOptionalString(record map[string]any, field string) (*string, FieldErrors) {
	value, present := record[field]
	if !present || value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, FieldErrors{field: msgNotString}
	}
	return &s, nil
}

// parseOptionalURL validates an optional link field.
func parseOptionalURL(record map[string]any, field string) (*URL, FieldErrors) {
	value, present := record[field]
	if !present || value == nil {
		return nil, nil
	}
	link, ok := ParseURL(value)
	if !ok {
		return nil, FieldErrors{field: msgNotValidURL}
	}
	return &link, nil
}

// parseIDList validates a field that must be a list of identifiers. Both
// []any (decoded JSON) and []string (database rows) shapes are accepted;
// one bad member fails the whole field.
func parseIDList(record map[string]any, field string) ([]ID, FieldErrors) {
	var members []any
	switch value := record[field].(type) {
	case []any:
		members = value
	case []string:
		members = make([]any, len(value))
		for i, s := range value {
			members[i] = s
		}
	default:
		return nil, FieldErrors{field: msgNotArrayOfIDs}
	}

	ids := make([]ID, 0, len(members))
	for _, member := range members {
		id, ok := ParseID(member)
		if !ok {
			return nil, FieldErrors{field: msgNotArrayOfIDs}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseSaltField validates a stored credential salt.
func parseSaltField(record map[string]any, field string) (sec.Salt, FieldErrors) {
	salt, ok := sec.ParseSalt(record[field])
	if !ok {
		return "", FieldErrors{field: msgNotString}
	}
	return salt, nil
}

// parseHashField validates a stored credential hash.
func parseHashField(record map[string]any, field string) (sec.Hash, FieldErrors) {
	hash, ok := sec.ParseHash(record[field])
	if !ok {
		return "", FieldErrors{field: msgNotString}
	}
	return hash, nil
}

// ParseUser reconstructs a full User from an untrusted record, typically a
// raw database row. Every field is validated even after the first failure.
//
// Returns [ErrNotAnObject] when input is not a record, or
// [*InvalidFieldsError] listing every failing field.
func ParseUser(input any) (*User, error) {
	record, ok := asRecord(input)
	if !ok {
		return nil, ErrNotAnObject
	}

	failures := FieldErrors{}

	id, errs := parseIDField(record, FieldID)
	failures.Merge(errs)

	username, errs := parseStringField(record, FieldUsername)
	failures.Merge(errs)

	email, errs := parseEmailField(record, FieldEmail)
	failures.Merge(errs)

	bio, errs := parseOptionalString(record, FieldBio)
	failures.Merge(errs)

	image, errs := parseOptionalURL(record, FieldImage)
	failures.Merge(errs)

	favorites, errs := parseIDList(record, FieldFavorites)
	failures.Merge(errs)

	following, errs := parseIDList(record, FieldFollowing)
	failures.Merge(errs)

	hash, errs := parseHashField(record, FieldHash)
	failures.Merge(errs)

	salt, errs := parseSaltField(record, FieldSalt)
	failures.Merge(errs)

	if len(failures) > 0 {
		return nil, &InvalidFieldsError{Fields: failures}
	}

	return &User{
		ID:        id,
		Username:  username,
		Email:     email,
		Bio:       bio,
		Image:     image,
		Favorites: favorites,
		Following: following,
		Hash:      hash,
		Salt:      salt,
	}, nil
}

// ParseCreateUserPayload validates a registration request body. The client
// contract nests the fields under a "user" key:
//
//	{"user": {"username": ..., "email": ..., "password": ...}}
//
// A missing or malformed "user" value is reported as a single error keyed by
// "user"; otherwise each nested field is validated with accumulation.
func ParseCreateUserPayload(input any) (*CreateUserPayload, error) {
	record, ok := asRecord(input)
	if !ok {
		return nil, ErrNotAnObject
	}

	nested, ok := asRecord(record[FieldUser])
	if !ok {
		return nil, &InvalidFieldsError{Fields: FieldErrors{FieldUser: msgNotRecord}}
	}

	failures := FieldErrors{}

	username, errs := parseStringField(nested, FieldUsername)
	failures.Merge(errs)

	email, errs := parseEmailField(nested, FieldEmail)
	failures.Merge(errs)

	password, errs := parseStringField(nested, FieldPassword)
	failures.Merge(errs)

	if len(failures) > 0 {
		return nil, &InvalidFieldsError{Fields: failures}
	}

	return &CreateUserPayload{
		Username: username,
		Email:    email,
		Password: password,
	}, nil
}
