// Package session carries the admin's bearer credential explicitly through
// every call that talks to the remote API.
package session

import (
	"errors"
	"net/http"
	"strings"
)

var ErrNotAuthenticated = errors.New("authentication required")

type Session struct {
	token string
}

func New(token string) Session {
	return Session{token: strings.TrimSpace(token)}
}

// FromRequest reads the bearer token from the Authorization header. A missing
// or malformed header yields an unauthenticated session.
func FromRequest(r *http.Request) Session {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return Session{}
	}
	return New(token)
}

func (s Session) Authenticated() bool {
	return s.token != ""
}

func (s Session) Token() string {
	return s.token
}

// Authorize sets the Authorization header on an outgoing request, or returns
// ErrNotAuthenticated when there is no token to send.
func (s Session) Authorize(req *http.Request) error {
	if !s.Authenticated() {
		return ErrNotAuthenticated
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	return nil
}
