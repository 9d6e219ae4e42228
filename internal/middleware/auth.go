package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/auth"
	"github.com/justsurfingit/govconnect/internal/response"
)

const claimsKey = "claims"

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticate rejects requests without a valid bearer token before any
// handler runs. Identity headers sent by the client are never trusted.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, apperr.Unauthenticated("No token provided", nil))
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
			response.Abort(c, apperr.Unauthenticated("Invalid authorization header", nil))
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			response.Abort(c, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequirePermission lets the request through only when the caller's role
// holds p. It must run after Authenticate.
func RequirePermission(p auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			response.Abort(c, apperr.Unauthenticated("Authentication required", nil))
			return
		}
		if err := auth.RequirePermission(claims.UserType, p); err != nil {
			response.Abort(c, err)
			return
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
