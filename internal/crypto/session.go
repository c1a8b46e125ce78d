package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// SessionClaims is the payload of the signed session cookie.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// NewSessionToken creates a signed session token for the given user.
func NewSessionToken(userID int64, secret string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "inkwell",
			Audience:  jwt.ClaimStrings{"inkwell-web"},
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates a session token string and returns its
// claims if the signature and expiry check out.
func ParseSessionToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("inkwell"), jwt.WithAudience("inkwell-web"))
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
