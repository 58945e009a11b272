// ABOUTME: Tests for bearer token extraction and the HTTP auth middleware
// ABOUTME: Covers header parsing edge cases and 401 rejection paths

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// httpTestSecret is a 32-byte secret that meets MinSecretLength.
var httpTestSecret = []byte("http-middleware-test-secret-32b!")

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{
			name:   "well formed",
			header: "Bearer abc",
			want:   "abc",
		},
		{
			name:   "lowercase scheme",
			header: "bearer abc",
			want:   "abc",
		},
		{
			name:    "missing header",
			header:  "",
			wantErr: true,
		},
		{
			name:    "non-bearer scheme",
			header:  "Basic abc",
			wantErr: true,
		},
		{
			name:    "scheme only",
			header:  "Bearer",
			wantErr: true,
		},
		{
			name:    "empty token segment",
			header:  "Bearer ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, ErrNoToken) {
					t.Errorf("ExtractBearerToken(%q) error = %v, want ErrNoToken", tt.header, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractBearerToken(%q) error = %v", tt.header, err)
			}
			if got != tt.want {
				t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	codec, err := NewJWTCodec(httpTestSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTCodec() error = %v", err)
	}

	token, err := codec.Sign(Claims{UserID: "user-123", Email: "alex@example.com"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	var gotClaims *Claims
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Middleware(codec)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if gotClaims == nil {
		t.Fatal("expected Claims in request context")
	}
	if gotClaims.UserID != "user-123" {
		t.Errorf("Claims.UserID = %q, want %q", gotClaims.UserID, "user-123")
	}
	if gotClaims.Email != "alex@example.com" {
		t.Errorf("Claims.Email = %q, want %q", gotClaims.Email, "alex@example.com")
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	codec, _ := NewJWTCodec(httpTestSecret, time.Hour)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()

	Middleware(codec)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unauthorized") {
		t.Errorf("body = %q, want Unauthorized message", rec.Body.String())
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	codec, _ := NewJWTCodec(httpTestSecret, time.Hour)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()

	Middleware(codec)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid token") {
		t.Errorf("body = %q, want Invalid token message", rec.Body.String())
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	expiredCodec, _ := NewJWTCodec(httpTestSecret, -time.Minute)
	token, err := expiredCodec.Sign(Claims{UserID: "user-123"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	codec, _ := NewJWTCodec(httpTestSecret, time.Hour)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Middleware(codec)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}
