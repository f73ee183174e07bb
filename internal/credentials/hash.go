package credentials

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing these invalidates every stored hash.
const (
	saltLength   = 16
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// generateSalt returns a fresh random per-user salt.
func generateSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// hashPassword derives the stored hash for a password and salt. The same
// inputs always produce the same hash, which login verification relies on.
func hashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// verifyPassword recomputes the hash for the supplied password and compares
// it against the stored hash in full, in constant time.
func verifyPassword(password string, salt, storedHash []byte) bool {
	return subtle.ConstantTimeCompare(hashPassword(password, salt), storedHash) == 1
}
