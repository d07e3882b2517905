// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP delivery layer for user identity management.

# Architecture

The handler acts as a thin mediation layer between the web and the domain
service:
  - Protocol: Standard RESTful JSON interface, bodies enveloped under "user".
  - Security: Bearer tokens via the Authorization header ("Token <t>" or
    "Bearer <t>").
  - Verification: Registration bodies go through the structural parser so
    malformed shapes never reach the service as typed structs.

This layer is strictly responsible for transport concerns (status codes,
headers, JSON).
*/
package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/conduit/internal/platform/apperr"
	"github.com/taibuivan/conduit/internal/platform/middleware"
	requestutil "github.com/taibuivan/conduit/internal/platform/request"
	"github.com/taibuivan/conduit/internal/platform/respond"
	"github.com/taibuivan/conduit/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements user-identity HTTP endpoints.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// Routes returns a [chi.Router] configured with identity routes.
//
// # Endpoints
//   - POST /users        : Creates a new account.
//   - POST /users/login  : Authenticates and returns a token.
//   - GET  /user         : Returns the authenticated user.
//   - POST /users/logout : Revokes the caller's token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/users", handler.register)
	router.Post("/users/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/user", handler.current)
		r.Post("/users/logout", handler.logout)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	User struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

/*
Register handles the creation of a new user account.

POST /api/users

Description: Decodes the body as an untyped record and hands it to the
service, which reports every invalid field in one response.

Request:
  - Body: {"user": {"username", "email", "password"}}

Response:
  - 201: AuthView: Created user with a fresh token
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	raw, err := requestutil.DecodeRaw(request)
	if err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	view, err := handler.userService.Register(request.Context(), raw)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{FieldUser: view})
}

/*
Login authenticates a user and issues a bearer token.

POST /api/users/login

Description: Verifies credentials against the stored hash/salt pair. All
failure modes return the same 401 body.

Request:
  - Body: {"user": {"email", "password"}}

Response:
  - 200: AuthView: Token and public profile
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.User.Email).
		Required(FieldPassword, input.User.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.userService.Login(request.Context(), LoginInput{
		Email:    input.User.Email,
		Password: input.User.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldUser: view})
}

/*
Current returns the authenticated user with a re-issued token.

GET /api/user

Response:
  - 200: AuthView: Public profile and fresh token
  - 401: ErrUnauthorized: Missing, invalid, or revoked token
*/
func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.userService.Current(request.Context(), claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldUser: view})
}

/*
Logout revokes the caller's bearer token.

POST /api/users/logout

Description: The exact token presented on this request is denylisted for its
remaining lifetime; other tokens for the same account stay valid.

Response:
  - 204: No Content: Token revoked
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, present, ok := middleware.ExtractToken(request)
	if !present || !ok {
		respond.Error(writer, request, apperr.Unauthorized("Missing bearer token"))
		return
	}

	if err := handler.userService.Logout(request.Context(), token, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
