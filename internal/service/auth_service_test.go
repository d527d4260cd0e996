package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/data-migration-api/internal/models"
)

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims models.JWTClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	svc := NewAuthService("secret")
	token := signToken(t, jwt.SigningMethodHS256, "secret", models.JWTClaims{
		UserID: "u1",
		Role:   models.RoleApprover,
		Email:  "approver@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleApprover, claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewAuthService("secret")
	token := signToken(t, jwt.SigningMethodHS256, "other-secret", models.JWTClaims{
		UserID: "u1",
		Role:   models.RoleReviewer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := svc.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewAuthService("secret")
	token := signToken(t, jwt.SigningMethodHS256, "secret", models.JWTClaims{
		UserID: "u1",
		Role:   models.RoleReviewer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := svc.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenUnknownRole(t *testing.T) {
	svc := NewAuthService("secret")
	token := signToken(t, jwt.SigningMethodHS256, "secret", models.JWTClaims{
		UserID: "u1",
		Role:   "auditor",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := svc.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenRejectsWrongAlgorithm(t *testing.T) {
	svc := NewAuthService("secret")
	token := signToken(t, jwt.SigningMethodHS512, "secret", models.JWTClaims{
		UserID: "u1",
		Role:   models.RoleReviewer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := svc.ValidateToken(token)
	require.Error(t, err)
}
