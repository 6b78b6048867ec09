package middlewares

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Asip90/User-View-OpenFood/pkg/resp"
	"github.com/Asip90/User-View-OpenFood/services"
)

const (
	SessionCookie = "dine_session"
	// ContextSession is the gin context key the resolved session is set
	// under.
	ContextSession = "session"
)

// SessionMiddleware resolves (or creates) the diner session for the table
// token in the route. The cookie identifies the diner; the table token is
// the capability. No authentication beyond that.
func SessionMiddleware(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		if token == "" {
			resp.BadRequest(c, "missing table token")
			c.Abort()
			return
		}

		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
		}

		c.Set(ContextSession, sessions.GetOrCreate(id, token))
		c.Next()
	}
}

// CurrentSession pulls the resolved session off the gin context.
func CurrentSession(c *gin.Context) *services.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	sess, ok := v.(*services.Session)
	if !ok {
		return nil
	}
	return sess
}

// RequireMenu guards endpoints that need a snapshot already fetched.
func RequireMenu(c *gin.Context) *services.Session {
	sess := CurrentSession(c)
	if sess == nil {
		resp.ServerError(c, errors.New("session not resolved"))
		return nil
	}
	if sess.Menu() == nil {
		resp.Conflict(c, "menu not loaded for this session")
		return nil
	}
	return sess
}
