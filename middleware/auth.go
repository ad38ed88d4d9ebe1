package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"mindwell/services"
	"mindwell/utils"
)

const (
	ContextUserID    = "user_id"
	ContextSessionID = "session_id"
	ContextToken     = "token"
	ContextClaims    = "claims"
)

// RevocationChecker rejects tokens that are well formed but no longer valid,
// e.g. after logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string, claims *services.Claims) (bool, error)
}

// BearerToken extracts the token from "Bearer <t>" or "Token <t>".
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return "", false
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthMiddleware verifies the session token and stores the caller in the
// context. revocation may be nil.
func AuthMiddleware(issuer *services.TokenIssuer, revocation RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.TrackError("auth", "missing_token")
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			utils.TrackError("auth", "invalid_token")
			utils.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		if revocation != nil {
			revoked, err := revocation.IsRevoked(c.Request.Context(), token, claims)
			if err != nil {
				Logger(c).WithError(err).Error("token revocation check failed")
				utils.InternalError(c, "Failed to validate session")
				c.Abort()
				return
			}
			if revoked {
				utils.TrackError("auth", "revoked_token")
				utils.Unauthorized(c, "Token has been invalidated")
				c.Abort()
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextSessionID, claims.SessionID)
		c.Set(ContextToken, token)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func Claims(c *gin.Context) (*services.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.Claims)
	return claims, ok
}
