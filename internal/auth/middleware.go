package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userKey = "auth.user"

// Middleware rejects requests without a valid token. The token is read
// from the "token" header, falling back to "Authorization: Bearer".
func Middleware(issuer *Issuer, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := issuer.Verify(tokenFromRequest(c.Request))
		if err != nil {
			log.Debugw("rejecting request", "path", c.Request.URL.Path, "error", err)
			message := "Not Authorized"
			if errors.Is(err, ErrMissingToken) {
				message = "No token provided"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "fail",
				"message": message,
			})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func tokenFromRequest(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get("token")); t != "" {
		return t
	}
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// UserFrom returns the user stored by Middleware.
func UserFrom(c *gin.Context) (User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return User{}, false
	}
	user, ok := v.(User)
	return user, ok
}
