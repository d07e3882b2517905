// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/conduit/internal/platform/sec"
	"github.com/taibuivan/conduit/internal/users/user"
)

// validRecord builds a raw record that survives ParseUser unchanged.
func validRecord() map[string]any {
	credential := sec.HashPassword("hunter2")
	return map[string]any{
		"id":        idAlice,
		"username":  "jacob",
		"email":     "jacob@jacob.jacob",
		"bio":       "I work at statefarm",
		"image":     "https://jacob.com/me.png",
		"favorites": []any{idBob},
		"following": []any{idBob, idCarol},
		"hash":      string(credential.Hash),
		"salt":      string(credential.Salt),
	}
}

/*
TestParseUser_Valid verifies a well-formed record reconstructs the full
entity, including the optional fields.
*/
func TestParseUser_Valid(t *testing.T) {
	parsed, err := user.ParseUser(validRecord())
	require.NoError(t, err)

	assert.Equal(t, user.ID(idAlice), parsed.ID)
	assert.Equal(t, "jacob", parsed.Username)
	assert.Equal(t, user.Email("jacob@jacob.jacob"), parsed.Email)
	require.NotNil(t, parsed.Bio)
	assert.Equal(t, "I work at statefarm", *parsed.Bio)
	require.NotNil(t, parsed.Image)
	assert.Equal(t, user.URL("https://jacob.com/me.png"), *parsed.Image)
	assert.Equal(t, []user.ID{user.ID(idBob)}, parsed.Favorites)
	assert.Equal(t, []user.ID{user.ID(idBob), user.ID(idCarol)}, parsed.Following)
}

/*
TestParseUser_OptionalAbsent verifies absent bio and image parse to nil
rather than failing.
*/
func TestParseUser_OptionalAbsent(t *testing.T) {
	record := validRecord()
	delete(record, "bio")
	delete(record, "image")

	parsed, err := user.ParseUser(record)
	require.NoError(t, err)
	assert.Nil(t, parsed.Bio)
	assert.Nil(t, parsed.Image)
}

/*
TestParseUser_DatabaseShapes verifies the []string list shape produced by
row scans is accepted alongside decoded-JSON []any.
*/
func TestParseUser_DatabaseShapes(t *testing.T) {
	record := validRecord()
	record["favorites"] = []string{idBob, idCarol}
	record["following"] = []string{}

	parsed, err := user.ParseUser(record)
	require.NoError(t, err)
	assert.Len(t, parsed.Favorites, 2)
	assert.Empty(t, parsed.Following)
}

/*
TestParseUser_NotAnObject verifies non-record input short-circuits before
any field diagnosis.
*/
func TestParseUser_NotAnObject(t *testing.T) {
	for _, input := range []any{nil, "jacob", 42, []any{"a"}} {
		_, err := user.ParseUser(input)
		assert.ErrorIs(t, err, user.ErrNotAnObject)
	}
}

/*
TestParseUser_AccumulatesAllFailures verifies validation reports every
failing field in one pass, not just the first.
*/
func TestParseUser_AccumulatesAllFailures(t *testing.T) {
	_, err := user.ParseUser(map[string]any{})

	var invalid *user.InvalidFieldsError
	require.ErrorAs(t, err, &invalid)

	for _, field := range []string{"id", "username", "email", "favorites", "following", "hash", "salt"} {
		assert.Contains(t, invalid.Fields, field)
	}
	// Optional fields are absent, not failing.
	assert.NotContains(t, invalid.Fields, "bio")
	assert.NotContains(t, invalid.Fields, "image")
}

/*
TestParseUser_FieldMessages pins the per-field failure messages clients
depend on.
*/
func TestParseUser_FieldMessages(t *testing.T) {
	record := validRecord()
	record["id"] = "not-a-uuid"
	record["email"] = "not-an-email"
	record["image"] = "not a url"
	record["favorites"] = []any{idBob, "broken"}
	record["bio"] = 42

	_, err := user.ParseUser(record)

	var invalid *user.InvalidFieldsError
	require.ErrorAs(t, err, &invalid)

	assert.Equal(t, "Not a valid ID", invalid.Fields["id"])
	assert.Equal(t, "Not a valid email", invalid.Fields["email"])
	assert.Equal(t, "Not a valid URL", invalid.Fields["image"])
	assert.Equal(t, "Not an array of valid IDs", invalid.Fields["favorites"])
	assert.Equal(t, "Not a string", invalid.Fields["bio"])
	// Untouched fields do not appear.
	assert.NotContains(t, invalid.Fields, "username")
}

/*
TestParseCreateUserPayload_Valid verifies the nested registration envelope.
*/
func TestParseCreateUserPayload_Valid(t *testing.T) {
	payload, err := user.ParseCreateUserPayload(map[string]any{
		"user": map[string]any{
			"username": "jacob",
			"email":    "jacob@jacob.jacob",
			"password": "hunter2",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "jacob", payload.Username)
	assert.Equal(t, user.Email("jacob@jacob.jacob"), payload.Email)
	assert.Equal(t, "hunter2", payload.Password)
}

/*
TestParseCreateUserPayload_MissingEnvelope verifies a missing or malformed
"user" key yields a single envelope-level failure.
*/
func TestParseCreateUserPayload_MissingEnvelope(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"no_user_key", map[string]any{"username": "jacob"}},
		{"user_not_record", map[string]any{"user": "jacob"}},
		{"user_nil", map[string]any{"user": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := user.ParseCreateUserPayload(tt.input)

			var invalid *user.InvalidFieldsError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, user.FieldErrors{"user": "Not a record"}, invalid.Fields)
		})
	}
}

/*
TestParseCreateUserPayload_AccumulatesNestedFailures verifies all three
nested fields are reported together.
*/
func TestParseCreateUserPayload_AccumulatesNestedFailures(t *testing.T) {
	_, err := user.ParseCreateUserPayload(map[string]any{
		"user": map[string]any{
			"username": 42,
			"email":    "nope",
			"password": nil,
		},
	})

	var invalid *user.InvalidFieldsError
	require.ErrorAs(t, err, &invalid)

	assert.Equal(t, "Not a string", invalid.Fields["username"])
	assert.Equal(t, "Not a valid email", invalid.Fields["email"])
	assert.Equal(t, "Not a string", invalid.Fields["password"])
}

/*
TestParse_EmptyStringsAccepted verifies that plain-string fields require any
string, the empty one included. Only non-string values fail.
*/
func TestParse_EmptyStringsAccepted(t *testing.T) {
	record := validRecord()
	record["username"] = ""
	record["hash"] = ""
	record["salt"] = ""

	parsed, err := user.ParseUser(record)
	require.NoError(t, err)
	assert.Equal(t, "", parsed.Username)
	assert.Equal(t, sec.Hash(""), parsed.Hash)
	assert.Equal(t, sec.Salt(""), parsed.Salt)

	payload, err := user.ParseCreateUserPayload(map[string]any{
		"user": map[string]any{
			"username": "",
			"email":    "jacob@jacob.jacob",
			"password": "",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "", payload.Username)
	assert.Equal(t, "", payload.Password)
}

/*
TestFieldErrors_Merge verifies merge keeps entries from both sides.
*/
func TestFieldErrors_Merge(t *testing.T) {
	merged := user.FieldErrors{"a": "1"}.Merge(user.FieldErrors{"b": "2"})
	assert.Equal(t, user.FieldErrors{"a": "1", "b": "2"}, merged)
}
