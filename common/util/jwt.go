package util

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sunthewhat/olymp-cert-api/type/shared"
)

const AdminTokenTTL = time.Hour * 24 * 2 // 2 days

// GenerateAdminToken signs an HS256 admin token for subject.
func GenerateAdminToken(secret string, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt secret is empty")
	}

	role := shared.RoleAdmin
	now := time.Now()
	claims := &shared.AdminClaims{
		Role: &role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}
