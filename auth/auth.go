// Package auth guards routes with a bearer token.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/siegeai/cloudmock/reply"
)

const UnauthenticatedMessage = "Invalid or missing authentication token"

var ErrUnauthenticated = errors.New("invalid or missing authentication token")

type Gate interface {
	Verify(credential string) error
}

// StaticToken accepts exactly one token.
type StaticToken string

func (t StaticToken) Verify(credential string) error {
	if credential == "" || t == "" {
		return ErrUnauthenticated
	}
	if subtle.ConstantTimeCompare([]byte(credential), []byte(t)) != 1 {
		return ErrUnauthenticated
	}
	return nil
}

// BearerToken returns the credential of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func Middleware(gate Gate) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _ := BearerToken(r)
			if err := gate.Verify(token); err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				reply.Error(w, http.StatusUnauthorized, UnauthenticatedMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
