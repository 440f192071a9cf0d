package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-complaint-tracker/internal/application"
	"github.com/oksasatya/go-complaint-tracker/pkg/helpers"
	"github.com/oksasatya/go-complaint-tracker/pkg/response"
)

const CtxUserIDKey = "userID"

// accessToken prefers the cookie and falls back to an Authorization bearer header.
func accessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth validates the access token and, when rdb is set, requires the token's
// session id to match the active session in Redis. It sets userID in the
// Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		if rdb != nil {
			data, err := rdb.HGetAll(c.Request.Context(), application.SessionKey(claims.UserID)).Result()
			if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
				response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
				return
			}
			c.Set("userEmail", data["email"])
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
