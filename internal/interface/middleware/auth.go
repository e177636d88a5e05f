package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agenticlearn/educator-portal/pkg/helpers"
	"github.com/agenticlearn/educator-portal/pkg/response"
)

// CtxEducatorIDKey holds the authenticated educator id in the Gin context.
const CtxEducatorIDKey = "educatorID"

// AccessTokenCookie is accepted when no Authorization header is sent.
const AccessTokenCookie = "access_token"

// Auth validates the bearer access token and sets educatorID in the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}
		c.Set(CtxEducatorIDKey, claims.EducatorID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
		return ""
	}
	tok, err := c.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}
	return tok
}
