package usecase

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// resetTokenBytes is the entropy of a reset token before hex encoding.
	resetTokenBytes = 32

	// ResetTokenTTL is how long a password-reset token stays valid.
	ResetTokenTTL = time.Hour
)

// GenerateResetToken creates a new password-reset token. It returns the
// plaintext token (sent to the user exactly once), the SHA-256 hex digest to
// persist, and the expiry timestamp. The function is pure apart from reading
// the clock and the system randomness source; applying the result to the user
// record is the caller's job.
func GenerateResetToken() (plaintext, hash string, expiresAt time.Time, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate reset token: %w", err)
	}

	plaintext = hex.EncodeToString(buf)
	return plaintext, HashResetToken(plaintext), time.Now().Add(ResetTokenTTL), nil
}

// HashResetToken recomputes the stored digest for a plaintext reset token.
// Verification compares this digest against the persisted one by exact equality.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
