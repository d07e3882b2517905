// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/conduit/internal/users/user"
)

const (
	idAlice = "0191e3a4-5b6c-7000-8000-0123456789ab"
	idBob   = "0191e3a4-5b6c-7000-8000-0123456789ac"
	idCarol = "0191e3a4-5b6c-7000-8000-0123456789ad"
)

var testNow = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

func fixedID(id string) user.IDGenerator {
	return func() user.ID { return user.ID(id) }
}

/*
TestParseID covers the identifier constructor's accept/reject matrix.
*/
func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		isValid bool
	}{
		{"valid_uuid", idAlice, true},
		{"not_a_uuid", "12345", false},
		{"empty_string", "", false},
		{"wrong_type", 42, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := user.ParseID(tt.input)
			assert.Equal(t, tt.isValid, ok)
		})
	}
}

/*
TestParseEmail covers the email constructor, including the rejection of
display-name forms whose bare address would otherwise parse.
*/
func TestParseEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		isValid bool
	}{
		{"plain_address", "jacob@jacob.jacob", true},
		{"subdomain", "a@b.co.uk", true},
		{"no_at_sign", "jacobjacob.jacob", false},
		{"display_name_form", "Jacob <jacob@jacob.jacob>", false},
		{"empty", "", false},
		{"wrong_type", 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := user.ParseEmail(tt.input)
			assert.Equal(t, tt.isValid, ok)
		})
	}
}

/*
TestParseURL covers absolute and schemeless link forms.
*/
func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		isValid bool
	}{
		{"https_absolute", "https://jacob.com/image.png", true},
		{"http_absolute", "http://jacob.com", true},
		{"schemeless_host", "www.imgur.com/avatar/123", true},
		{"ftp_scheme", "ftp://jacob.com/file", false},
		{"bare_word", "jacob", false},
		{"contains_space", "https://jacob.com/a b", false},
		{"empty", "", false},
		{"wrong_type", []string{"x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := user.ParseURL(tt.input)
			assert.Equal(t, tt.isValid, ok)
		})
	}
}

/*
TestCreate verifies the shape of a freshly enrolled account: generated
identifier, derived credential pair, and empty optional state.
*/
func TestCreate(t *testing.T) {
	email, ok := user.ParseEmail("jacob@jacob.jacob")
	require.True(t, ok)

	created := user.Create(user.CreateUserPayload{
		Username: "jacob",
		Email:    email,
		Password: "hunter2",
	}, fixedID(idAlice))

	assert.Equal(t, user.ID(idAlice), created.ID)
	assert.Equal(t, "jacob", created.Username)
	assert.Equal(t, email, created.Email)
	assert.Nil(t, created.Bio)
	assert.Nil(t, created.Image)
	assert.Empty(t, created.Favorites)
	assert.Empty(t, created.Following)
	assert.NotEmpty(t, created.Hash)
	assert.NotEmpty(t, created.Salt)

	// The plaintext never survives in the entity.
	assert.True(t, user.IsValidPassword("hunter2", created))
	assert.False(t, user.IsValidPassword("hunter3", created))
}

/*
TestFavorite_SetSemantics verifies the favorites set: adding is idempotent,
removal is a true inverse, and the receiver is never mutated.
*/
func TestFavorite_SetSemantics(t *testing.T) {
	base := user.Create(user.CreateUserPayload{Username: "jacob", Email: "j@j.jp", Password: "pw"}, fixedID(idAlice))

	favorited := base.Favorite(user.ID(idBob))
	assert.True(t, favorited.IsFavorite(user.ID(idBob)))
	assert.False(t, base.IsFavorite(user.ID(idBob)), "receiver must not be mutated")

	// Idempotent: favoriting twice leaves exactly one membership.
	twice := favorited.Favorite(user.ID(idBob))
	assert.Len(t, twice.Favorites, 1)

	// Inverse: unfavorite undoes favorite regardless of how many times the
	// member was added.
	reverted := twice.Unfavorite(user.ID(idBob))
	assert.False(t, reverted.IsFavorite(user.ID(idBob)))
	assert.Empty(t, reverted.Favorites)

	// Removing an absent member is a no-op.
	assert.Empty(t, base.Unfavorite(user.ID(idCarol)).Favorites)
}

/*
TestFollow_SetSemantics mirrors the favorites laws for the following set.
*/
func TestFollow_SetSemantics(t *testing.T) {
	base := user.Create(user.CreateUserPayload{Username: "jacob", Email: "j@j.jp", Password: "pw"}, fixedID(idAlice))

	following := base.Follow(user.ID(idBob)).Follow(user.ID(idCarol)).Follow(user.ID(idBob))
	assert.Len(t, following.Following, 2)
	assert.True(t, following.IsFollowing(user.ID(idBob)))
	assert.True(t, following.IsFollowing(user.ID(idCarol)))

	unfollowed := following.Unfollow(user.ID(idBob))
	assert.False(t, unfollowed.IsFollowing(user.ID(idBob)))
	assert.True(t, unfollowed.IsFollowing(user.ID(idCarol)))
}

/*
TestToAuthView verifies the public view: identity fields plus a token, and
never the credential pair or the membership sets.
*/
func TestToAuthView(t *testing.T) {
	bio := "I work at statefarm"
	image, ok := user.ParseURL("https://jacob.com/me.png")
	require.True(t, ok)

	account := user.Create(user.CreateUserPayload{Username: "jacob", Email: "j@j.jp", Password: "pw"}, fixedID(idAlice))
	account.Bio = &bio
	account.Image = &image

	view, err := user.ToAuthView(account, testNow, "view-test-secret")
	require.NoError(t, err)

	assert.Equal(t, "jacob", view.Username)
	assert.Equal(t, "j@j.jp", view.Email)
	assert.NotEmpty(t, view.Token)
	require.NotNil(t, view.Bio)
	assert.Equal(t, bio, *view.Bio)
	require.NotNil(t, view.Image)
	assert.Equal(t, "https://jacob.com/me.png", *view.Image)
}

/*
TestToAuthView_EmptySecret verifies view assembly refuses to mint unsigned
tokens.
*/
func TestToAuthView_EmptySecret(t *testing.T) {
	account := user.Create(user.CreateUserPayload{Username: "jacob", Email: "j@j.jp", Password: "pw"}, fixedID(idAlice))

	_, err := user.ToAuthView(account, testNow, "")
	assert.Error(t, err)
}
