package middleware

import (
	"strings"

	"studio_backend/internal/auth"
	"studio_backend/internal/logger"
	"studio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const AdminIDKey = "adminID"

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// AdminAuthMiddleware - проверка JWT администратора
func AdminAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("No token"))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken(err))
			return
		}

		c.Set(AdminIDKey, claims.AdminID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.AdminID))
		c.Next()
	}
}
