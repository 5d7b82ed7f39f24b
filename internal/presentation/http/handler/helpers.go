package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/presentation/http/middleware"
)

// GetIdentity extracts the caller identity from the Gin context
func GetIdentity(c *gin.Context) *entity.Identity {
	return middleware.GetIdentity(c)
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	return c.GetString(middleware.UserEmailKey)
}
