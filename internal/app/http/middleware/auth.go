package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seatservice/internal/app/auth"
	"seatservice/internal/app/dto"
)

const localSubject = "local-dev"

// Auth verifies the bearer token and stores its claims in the request
// context. With a nil verifier every request runs as a local admin.
func Auth(verifier *auth.Verifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			ctx := auth.WithClaims(c.Request.Context(), &auth.Claims{Subject: localSubject, Local: true})
			c.Request = c.Request.WithContext(ctx)
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "missing or malformed authorization header")
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			log.Warn("auth failure", zap.String("path", c.Request.URL.Path), zap.Error(err))
			unauthorized(c, "invalid token")
			return
		}

		c.Request = c.Request.WithContext(auth.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: dto.Error{
			Code:    "UNAUTHORIZED",
			Message: msg,
		},
	})
}
