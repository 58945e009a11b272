// ABOUTME: JWT signing and verification for taskdeck bearer tokens
// ABOUTME: Uses HS256 with a configured secret and fixed TTL

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum signing secret length in bytes.
const MinSecretLength = 32

// Token errors
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrMissingClaim   = errors.New("missing required claim")
	ErrSecretTooShort = errors.New("signing secret too short")
)

// Claims is the identity payload embedded in a signed token.
type Claims struct {
	UserID string // "sub" claim
	Email  string // "email" claim
}

// JWTCodec signs and verifies HS256 JWTs carrying a user identity.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTCodec creates a codec with the given secret and token TTL.
// The secret must be at least MinSecretLength bytes; there is no default.
func NewJWTCodec(secret []byte, ttl time.Duration) (*JWTCodec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrSecretTooShort, MinSecretLength, len(secret))
	}
	return &JWTCodec{secret: secret, ttl: ttl}, nil
}

// TTL returns the token lifetime the codec signs with.
func (c *JWTCodec) TTL() time.Duration {
	return c.ttl
}

// Sign creates a token for the given claims expiring after the codec's TTL.
func (c *JWTCodec) Sign(claims Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	})
	return token.SignedString(c.secret)
}

// Verify validates the token signature and expiry and returns the embedded
// claims. Returns ErrExpiredToken past the embedded expiry, ErrInvalidToken
// for any other failure. The session store is not consulted.
func (c *JWTCodec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Only HS256-family tokens are accepted
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	email, _ := mapClaims["email"].(string)

	return &Claims{UserID: sub, Email: email}, nil
}
