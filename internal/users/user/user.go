// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package user implements the identity core of the Conduit platform.

It defines the User entity, its semantic value types, and the pure
transformations over it (favorites, follows, credential checks, token views).

# Architecture

This layer is the "Truth" of the system. Every User value in the process has
either been built by [Create] or reconstructed from an untrusted record via
[ParseUser] - there is no third way to obtain one, so a User always satisfies
its invariants. Functions here perform no I/O; clocks and identifier
generators are injected.
*/
package user

import (
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/conduit/internal/platform/sec"
	"github.com/taibuivan/conduit/pkg/pointer"
)

// # Semantic Value Types

// ID is an opaque account identifier. The backing store keys accounts by
// UUID, so only UUID-formatted strings construct one. Immutable once built.
type ID string

// ParseID constructs an [ID] from untrusted input. It accepts a UUID string
// or a [uuid.UUID] value and reports failure instead of erroring.
func ParseID(input any) (ID, bool) {
	switch v := input.(type) {
	case string:
		if uuid.Validate(v) != nil {
			return "", false
		}
		return ID(v), true
	case uuid.UUID:
		return ID(v.String()), true
	default:
		return "", false
	}
}

// Email is an address that passed RFC 5322 validation at construction.
type Email string

// ParseEmail constructs an [Email] from untrusted input.
//
// The address must stand alone: display-name forms like "Bob <b@x.com>"
// are rejected so the stored value is exactly what was validated.
func ParseEmail(input any) (Email, bool) {
	s, ok := input.(string)
	if !ok {
		return "", false
	}
	parsed, err := mail.ParseAddress(s)
	if err != nil || parsed.Address != s {
		return "", false
	}
	return Email(s), true
}

// URL is a link that passed format validation at construction.
type URL string

// ParseURL constructs a [URL] from untrusted input. Absolute http(s) URLs
// are accepted, as are schemeless host paths like "www.imgur.com/123"
// (treated as https).
func ParseURL(input any) (URL, bool) {
	s, ok := input.(string)
	if !ok || s == "" || strings.ContainsAny(s, " \t\n") {
		return "", false
	}

	parsed, err := url.Parse(s)
	if err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != "" {
		return URL(s), true
	}
	if err != nil || parsed.Scheme != "" {
		return "", false
	}

	// Schemeless: require at least a dotted host.
	parsed, err = url.Parse("https://" + s)
	if err != nil || !strings.Contains(parsed.Host, ".") {
		return "", false
	}
	return URL(s), true
}

// # Field Identifiers

// Field names used by parsers, stores, and validation error keys.
const (
	FieldID        = "id"
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldBio       = "bio"
	FieldImage     = "image"
	FieldFavorites = "favorites"
	FieldFollowing = "following"
	FieldHash      = "hash"
	FieldSalt      = "salt"
	FieldUser      = "user"
)

// # Domain Entities

// User represents a registered member of the Conduit platform.
//
// Bio and Image are pointers because absence is meaningful: a user who never
// set a bio is distinct from one who set it to "". Favorites and Following
// are membership sets - insertion order is preserved but carries no semantic
// contract.
//
// Users are immutable: transformation methods return a new value and never
// share mutable state with the receiver.
type User struct {
	ID        ID
	Username  string
	Email     Email
	Bio       *string
	Image     *URL
	Favorites []ID
	Following []ID
	Hash      sec.Hash
	Salt      sec.Salt
}

// CreateUserPayload carries validated registration input. Password is the
// plaintext credential; it exists only in memory and is never persisted.
type CreateUserPayload struct {
	Username string
	Email    Email
	Password string
}

// IDGenerator produces a fresh account identifier. Injected so entity
// creation never reads a global random source.
type IDGenerator func() ID

// Create builds a brand-new User from a validated payload: a generated
// identifier, a freshly salted credential pair, and empty bio, image,
// favorites, and following.
func Create(payload CreateUserPayload, newID IDGenerator) User {
	credential := sec.HashPassword(payload.Password)

	return User{
		ID:        newID(),
		Username:  payload.Username,
		Email:     payload.Email,
		Favorites: []ID{},
		Following: []ID{},
		Hash:      credential.Hash,
		Salt:      credential.Salt,
	}
}

// IsValidPassword reports whether plaintext is the password the user's
// credential pair was derived from.
func IsValidPassword(plaintext string, u User) bool {
	return sec.VerifyPassword(plaintext, u.Hash, u.Salt)
}

// # Membership Sets
//
// Favorites and Following use set semantics: adding a present member is a
// no-op and removing then re-adding is a true inverse. (The historic
// behavior allowed duplicate insertion, which broke the inverse law; it was
// deliberately not preserved.)

// Favorite returns a new User with id in the favorites set.
func (u User) Favorite(id ID) User {
	if u.IsFavorite(id) {
		return u
	}
	u.Favorites = append(slices.Clone(u.Favorites), id)
	return u
}

// Unfavorite returns a new User with id removed from the favorites set.
func (u User) Unfavorite(id ID) User {
	u.Favorites = slices.DeleteFunc(slices.Clone(u.Favorites), func(member ID) bool {
		return member == id
	})
	return u
}

// IsFavorite reports membership in the favorites set.
func (u User) IsFavorite(id ID) bool {
	return slices.Contains(u.Favorites, id)
}

// Follow returns a new User with id in the following set.
func (u User) Follow(id ID) User {
	if u.IsFollowing(id) {
		return u
	}
	u.Following = append(slices.Clone(u.Following), id)
	return u
}

// Unfollow returns a new User with id removed from the following set.
func (u User) Unfollow(id ID) User {
	u.Following = slices.DeleteFunc(slices.Clone(u.Following), func(member ID) bool {
		return member == id
	})
	return u
}

// IsFollowing reports membership in the following set.
func (u User) IsFollowing(id ID) bool {
	return slices.Contains(u.Following, id)
}

// # Client Views

// AuthView is the representation returned to a client after login, create,
// or authenticated fetch. It carries a freshly issued bearer token and the
// user's public fields - never the hash, salt, identifier, or membership sets.
type AuthView struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Bio      *string `json:"bio,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// ToAuthView issues a bearer token for the user and assembles the public
// view. The clock and secret are injected by the caller.
func ToAuthView(u User, now time.Time, secret string) (*AuthView, error) {
	token, err := sec.Issue(string(u.ID), u.Username, now, secret)
	if err != nil {
		return nil, err
	}

	view := &AuthView{
		Username: u.Username,
		Email:    string(u.Email),
		Token:    token,
		Bio:      u.Bio,
	}
	if u.Image != nil {
		view.Image = pointer.To(string(*u.Image))
	}
	return view, nil
}
