// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away common body decoding patterns and context lookups,
ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/taibuivan/conduit/internal/platform/apperr"
	"github.com/taibuivan/conduit/internal/platform/ctxutil"
	"github.com/taibuivan/conduit/internal/platform/sec"
	"github.com/taibuivan/conduit/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// Returns [validate.ErrInvalidJSON] if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// DecodeRaw reads the request body into an untyped value for structural
// parsing. Entity parsers expect raw input so they can report the
// not-a-record case themselves; only transport-level decode failures
// surface here.
func DecodeRaw(request *http.Request) (any, error) {
	var raw any
	if err := json.NewDecoder(request.Body).Decode(&raw); err != nil {
		return nil, validate.ErrInvalidJSON
	}
	return raw, nil
}

// Claims extracts the authenticated token claims from the request context.
//
// Returns nil if the request is not authenticated.
func Claims(request *http.Request) *sec.Claims {
	return ctxutil.GetClaims(request.Context())
}

// RequiredClaims ensures the request is authenticated and returns the claims.
//
// Returns apperr.Unauthorized if the request is not authenticated.
func RequiredClaims(request *http.Request) (*sec.Claims, error) {
	claims := ctxutil.GetClaims(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}
