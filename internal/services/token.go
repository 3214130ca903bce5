package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventmanagement/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

type tokenManager struct {
	secret []byte
	expiry time.Duration
}

// NewTokenManager returns a manager that issues and verifies HS256 JWTs
// carrying the identity in the claims.
func NewTokenManager(secret string, expiry time.Duration) interface {
	domain.TokenIssuer
	domain.TokenVerifier
} {
	return &tokenManager{secret: []byte(secret), expiry: expiry}
}

func (m *tokenManager) Issue(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
		Username: identity.Username,
		Role:     string(identity.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *tokenManager) Verify(tokenString string) (domain.Identity, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	return domain.Identity{
		UserID:   claims.Subject,
		Username: claims.Username,
		Role:     domain.ParseRole(claims.Role),
	}, nil
}
