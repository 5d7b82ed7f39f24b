package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/presentation/http/dto/response"
	"github.com/sangkips/insights/pkg/utils"
)

// Context keys set by the auth middlewares
const (
	IdentityKey  = "identity"
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// AuthMiddleware rejects requests without a valid bearer token
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller identity when a valid token is
// present and otherwise lets the request through anonymously. Backend
// functions use it and decide on their own how to treat anonymous callers.
func OptionalAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if claims, err := jwtManager.ValidateAccessToken(tokenString); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// GetIdentity returns the caller identity or nil for anonymous requests
func GetIdentity(c *gin.Context) *entity.Identity {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*entity.Identity)
	return ident
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func setIdentity(c *gin.Context, claims *utils.JWTClaims) {
	c.Set(IdentityKey, claims.Identity())
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserEmailKey, claims.Email)
}
