package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/justsurfingit/govconnect/internal/apperr"
)

// Claims is the identity carried by a session token.
type Claims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	UserType Role   `json:"userType"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs an HS256 token for the user. The returned time is the expiry.
func (m *TokenManager) Issue(userID, email string, role Role) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		UserID:   userID,
		Email:    email,
		UserType: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry, then the identity fields.
// Every failure is reported as an unauthenticated error.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, apperr.Unauthenticated("Invalid token", err)
	}

	if claims.UserID == "" {
		return nil, apperr.Unauthenticated("Invalid token", errors.New("missing user id"))
	}
	role, ok := ParseRole(string(claims.UserType))
	if !ok {
		return nil, apperr.Unauthenticated("Invalid token", fmt.Errorf("unknown user type %q", claims.UserType))
	}
	claims.UserType = role
	return claims, nil
}
