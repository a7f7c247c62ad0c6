package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/olymp-cert-api/type/shared"
)

func TestGenerateAdminToken(t *testing.T) {
	signed, err := GenerateAdminToken("s3cret", "jury@olymp.example", time.Hour)
	require.NoError(t, err)

	claims := new(shared.AdminClaims)
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (any, error) {
		return []byte("s3cret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "jury@olymp.example", claims.Subject)
	require.NotNil(t, claims.Role)
	assert.Equal(t, shared.RoleAdmin, *claims.Role)
}

func TestGenerateAdminToken_EmptySecret(t *testing.T) {
	_, err := GenerateAdminToken("", "jury", time.Hour)
	assert.Error(t, err)
}
