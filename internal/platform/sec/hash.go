// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (key derivation, JWT signing)
// from the domain logic. Domain packages consume it through small injected
// functions so that issuance stays deterministic and testable.
package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Key derivation parameters. Changing any of these invalidates every stored
// credential, so they are fixed for the lifetime of the schema.
const (
	// saltBytes is the salt entropy: 128 bits.
	saltBytes = 16

	// deriveIterations is the PBKDF2 iteration count. High enough that
	// brute-forcing stored hashes is computationally expensive.
	deriveIterations = 10000

	// deriveKeyBytes is the derived key length in bytes.
	deriveKeyBytes = 512
)

// # Semantic Value Types

// Salt is a hex-encoded random value mixed into password hashing, generated
// once per credential and never reused. Only [NewSalt] and [ParseSalt] can
// produce one.
type Salt string

// Hash is a hex-encoded PBKDF2 derivation of (plaintext, salt). Only [Derive]
// and [ParseHash] can produce one. Plaintext passwords are never stored or
// compared directly.
type Hash string

// ParseSalt accepts any previously-persisted salt string.
func ParseSalt(input any) (Salt, bool) {
	s, ok := input.(string)
	if !ok {
		return "", false
	}
	return Salt(s), true
}

// ParseHash accepts any previously-persisted hash string.
func ParseHash(input any) (Hash, bool) {
	s, ok := input.(string)
	if !ok {
		return "", false
	}
	return Hash(s), true
}

// # Key Derivation

// NewSalt returns a fresh cryptographically random salt.
//
// Entropy failure is an unrecoverable system-level error.
func NewSalt() Salt {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		panic(fmt.Sprintf("sec: failed to read random salt: %v", err))
	}
	return Salt(hex.EncodeToString(raw))
}

// Derive computes the deterministic PBKDF2-HMAC-SHA512 hash of a plaintext
// password under the given salt. The same (plaintext, salt) pair always
// yields the same Hash; different salts yield different hashes for the same
// plaintext, which defeats precomputed lookup-table attacks.
func Derive(plaintext string, salt Salt) Hash {
	key := pbkdf2.Key([]byte(plaintext), []byte(salt), deriveIterations, deriveKeyBytes, sha512.New)
	return Hash(hex.EncodeToString(key))
}

// Credential is a salted hash pair, created once at account creation or
// password change time.
type Credential struct {
	Hash Hash
	Salt Salt
}

// HashPassword generates a fresh salt and derives the credential pair for a
// plaintext password. The plaintext itself is never retained.
func HashPassword(plaintext string) Credential {
	salt := NewSalt()
	return Credential{Hash: Derive(plaintext, salt), Salt: salt}
}

// VerifyPassword recomputes the derivation under the stored salt and compares
// it against the stored hash. String equality is sufficient here: the hash is
// not secret-dependent in a way that an equality short-circuit would leak.
func VerifyPassword(plaintext string, hash Hash, salt Salt) bool {
	return Derive(plaintext, salt) == hash
}

// # Token Digests

// HashToken returns the hex-encoded SHA-256 digest of a token string.
// Volatile stores key revoked tokens by digest so the raw credential never
// lands in Redis.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
