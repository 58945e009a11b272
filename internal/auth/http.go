// ABOUTME: Bearer token extraction and HTTP middleware for protected routes
// ABOUTME: Verifies the token once and injects claims into the request context

package auth

import (
	"errors"
	"net/http"
	"strings"
)

// ErrNoToken is returned when the Authorization header is absent or is not
// a well-formed bearer credential.
var ErrNoToken = errors.New("no bearer token")

// ExtractBearerToken parses an Authorization header of the form
// "Bearer <token>". The scheme match is case-insensitive. Returns
// ErrNoToken for an absent header, a non-bearer scheme, or an empty
// token segment.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return "", ErrNoToken
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrNoToken
	}
	if parts[1] == "" {
		return "", ErrNoToken
	}
	return parts[1], nil
}

// Middleware returns an HTTP middleware that authenticates requests with
// the given codec. A missing token is rejected with 401 "Unauthorized",
// an invalid or expired one with 401 "Invalid token". On success the
// decoded claims are attached to the request context for handlers to read
// via FromContext, so handlers never re-verify the token themselves.
func Middleware(codec *JWTCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractBearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeAuthError(w, "Unauthorized")
				return
			}

			claims, err := codec.Verify(token)
			if err != nil {
				writeAuthError(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"error":"` + msg + `"}`))
}
