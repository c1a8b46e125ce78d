package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// resetTokenBytes gives 256 bits of entropy, comfortably past the point
// where collisions or guessing are a concern.
const resetTokenBytes = 32

// NewResetToken generates an opaque URL-safe password-reset token.
func NewResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
