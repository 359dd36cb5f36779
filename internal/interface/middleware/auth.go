package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/membernet/member-info-service/pkg/helpers"
	"github.com/membernet/member-info-service/pkg/response"
)

const CtxMemberIDKey = "memberID"

// Auth validates the bearer access token and injects the member ID into the
// Gin context. The redis session hash, when present, enriches the context with
// the cached username; its absence does not reject the request since the
// session store is a best-effort cache.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			c.Abort()
			return
		}

		memberID := claims.Subject
		c.Set(CtxMemberIDKey, memberID)
		c.Set("memberEmail", claims.Email)

		if rdb != nil {
			key := "member:session:" + memberID
			if data, err := rdb.HGetAll(c.Request.Context(), key).Result(); err == nil && len(data) > 0 {
				c.Set("memberUsername", data["username"])
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
