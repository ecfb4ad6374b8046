package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionCookieName = "medcart_session"
const CookieMaxAge = 30 * 24 * 60 * 60 // 30 days

// SessionMiddleware scopes conversation state to a cookie-carried session id
// so concurrent clients never share history.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID uuid.UUID

		cookie, err := c.Cookie(SessionCookieName)
		if err == http.ErrNoCookie {
			sessionID = uuid.New()
			c.SetCookie(SessionCookieName, sessionID.String(), CookieMaxAge, "/", "", false, true)
		} else if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "failed to read session cookie"})
			return
		} else {
			sessionID, err = uuid.Parse(cookie)
			if err != nil {
				// Stale or tampered cookie; issue a fresh session.
				sessionID = uuid.New()
				c.SetCookie(SessionCookieName, sessionID.String(), CookieMaxAge, "/", "", false, true)
			}
		}

		c.Set("sessionID", sessionID)
		c.Next()
	}
}
