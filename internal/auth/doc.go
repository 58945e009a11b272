// ABOUTME: Package documentation for taskdeck authentication
// ABOUTME: Describes password hashing, JWT tokens, and HTTP middleware

// Package auth provides authentication for taskdeck.
//
// # Passwords
//
// Passwords are hashed with bcrypt at the default cost:
//
//	hash, err := auth.HashPassword(password)
//	ok := auth.CheckPassword(password, hash)
//
// CheckPassword treats a malformed stored hash as a mismatch rather than
// an error, so a corrupted row can never authenticate.
//
// # Tokens
//
// Bearer tokens are JWTs signed with HS256. The codec is constructed once
// at startup with the configured secret and TTL:
//
//	codec, err := auth.NewJWTCodec(secret, 15*time.Minute)
//	token, err := codec.Sign(auth.Claims{UserID: user.ID, Email: user.Email})
//	claims, err := codec.Verify(token)
//
// Verify is a pure function of the token, the secret, and the clock. It
// does not consult the session store, so a token outlives its session row
// until the embedded expiry passes.
//
// # Middleware
//
// Middleware wraps protected handlers. It extracts the bearer token from
// the Authorization header, verifies it, and injects the decoded claims
// into the request context where handlers read them via FromContext.
// Requests without a valid token are rejected with 401 before the handler
// runs.
package auth
