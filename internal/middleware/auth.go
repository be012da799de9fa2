package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/property-management-api/internal/constants"
	apierrors "github.com/yukikurage/property-management-api/internal/errors"
)

// RequireAuth admits requests whose session carries an account ID and stores
// that ID on the context as a uint64. A session holding anything else is
// cleared before the 401 is sent.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(constants.ContextKeyUserID)
		if raw == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		accountID, ok := sessionAccountID(raw)
		if !ok {
			session.Clear()
			_ = session.Save()
			apierrors.Unauthorized(c, "Session is no longer valid")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, accountID)
		c.Next()
	}
}

// GetUserID returns the account ID stored by RequireAuth.
func GetUserID(c *gin.Context) (uint64, bool) {
	accountID, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := accountID.(uint64)
	return id, ok && id != 0
}

// sessionAccountID normalizes the integer types session backends hand back
// after gob or JSON round trips.
func sessionAccountID(v interface{}) (uint64, bool) {
	var id int64
	switch n := v.(type) {
	case uint64:
		return n, n != 0
	case uint:
		return uint64(n), n != 0
	case int64:
		id = n
	case int:
		id = int64(n)
	case float64:
		id = int64(n)
		if float64(id) != n {
			return 0, false
		}
	default:
		return 0, false
	}
	if id <= 0 {
		return 0, false
	}
	return uint64(id), true
}
