// ABOUTME: Password hashing and verification using bcrypt
// ABOUTME: Malformed stored hashes are treated as a mismatch, never an error

package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a bcrypt hash of a random string, used for constant-time
// comparison when the looked-up user does not exist.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMye1J9XKzXk3xS9F7rAKJ5qGxGxK5FqOHe"

// HashPassword hashes a password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored bcrypt hash.
// Returns false for any mismatch, including a malformed hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckDummyPassword burns a bcrypt comparison against a throwaway hash.
// Called on login when no user matches the email so that the response
// time does not reveal whether the account exists.
func CheckDummyPassword(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
