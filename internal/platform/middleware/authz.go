// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/conduit/internal/platform/apperr"
	"github.com/taibuivan/conduit/internal/platform/constants"
	"github.com/taibuivan/conduit/internal/platform/ctxutil"
	"github.com/taibuivan/conduit/internal/platform/respond"
	"github.com/taibuivan/conduit/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify bearer tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// signer wiring (secret, clock), allowing mocks to be injected during tests.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.Claims, error)
}

// Denylist reports whether a previously-issued token has been revoked
// (e.g. by logout) before its natural expiry.
type Denylist interface {
	IsRevoked(ctx context.Context, tokenString string) (bool, error)
}

// ExtractToken pulls the bearer token out of the Authorization header.
//
// Accepted forms are "Token <token>" and "Bearer <token>" (case-insensitive
// scheme). Any other form, or a missing header, yields ok == false and the
// request is treated as unauthenticated.
func ExtractToken(request *http.Request) (token string, present, ok bool) {
	header := request.Header.Get(constants.HeaderAuthorization)
	if header == "" {
		return "", false, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", true, false
	}

	scheme := strings.ToLower(parts[0])
	if scheme != "token" && scheme != "bearer" {
		return "", true, false
	}

	return parts[1], true, true
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. Check for an 'Authorization: Token <t>' or 'Authorization: Bearer <t>' header.
//  2. If absent, the request proceeds as anonymous.
//  3. If present but malformed, abort with HTTP 401.
//  4. If present, verify the signature, expiry, and claim structure, then
//     reject tokens found on the revocation denylist.
//  5. Inject [*sec.Claims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier, denylist Denylist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			tokenString, present, ok := ExtractToken(request)

			// 1. Anonymous access: protected routes 401 via RequireAuth.
			if !present {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Malformed header
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// 3. Cryptographic + structural verification
			claims, err := verifier.Verify(tokenString)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// 4. Revocation check
			if denylist != nil {
				revoked, err := denylist.IsRevoked(request.Context(), tokenString)
				if err != nil {
					respond.Error(writer, request, apperr.Internal(err))
					return
				}
				if revoked {
					respond.Error(writer, request, apperr.Unauthorized("Token has been revoked"))
					return
				}
			}

			// 5. Context injection
			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetClaims(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
