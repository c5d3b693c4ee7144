package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novashop_back_end/internal/models"
)

func TestGenerateJWTClaims(t *testing.T) {
	user := models.User{ID: "u-42", Email: "client@example.com", Role: models.RoleUser}

	tokenString, err := GenerateJWT(user)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret(), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "u-42", claims["user_id"])
	assert.Equal(t, "client@example.com", claims["email"])
	assert.Equal(t, models.RoleUser, claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, int64(exp), time.Now().Add(29*24*time.Hour).Unix(), "le token doit valoir 30 jours")
}
