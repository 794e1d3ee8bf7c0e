package middleware

import (
	"fmt"
	"github.com/14kear/pollstore/internal/lib/identity"
	"github.com/14kear/pollstore/internal/lib/jwt"
	"github.com/gin-gonic/gin"
	"log/slog"
	"net/http"
	"strings"
)

type AuthMiddleware struct {
	log    *slog.Logger
	secret string
}

func NewAuthMiddleware(log *slog.Logger, secret string) *AuthMiddleware {
	return &AuthMiddleware{log: log, secret: secret}
}

// Middleware пропускает только запросы с валидным access-токеном и кладёт
// автора запроса в контекст.
func (m *AuthMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := extractTokenFromHeader(c.GetHeader("Authorization"))
		if accessToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
			return
		}

		claims, err := jwt.ParseAccessToken(accessToken, m.secret)
		if err != nil {
			m.log.Debug("rejected token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		principal := PrincipalFor(claims.UserID)
		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Request = c.Request.WithContext(identity.WithCaller(c.Request.Context(), principal))

		c.Next()
	}
}

// PrincipalFor возвращает идентичность, которая записывается автором опроса
func PrincipalFor(userID int64) identity.Principal {
	return identity.Principal(fmt.Sprintf("user:%d", userID))
}

func extractTokenFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
