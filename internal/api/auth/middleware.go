package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireAuth redirects to the login page unless the session holds a user.
// The user is made available to handlers as "user".
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := SessionUser(sessions.Default(c))
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Next()
	}
}
