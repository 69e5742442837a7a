package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionHeader = "X-Cart-Session"
	SessionCookie = "cart_session"

	sessionContextKey = "cartSession"
	sessionMaxAge     = 24 * 60 * 60
)

// CartSession resolves the cart session from the X-Cart-Session header or
// the cart_session cookie. Anything that is not a UUID is replaced by a new
// session, which is returned as a cookie.
func CartSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(SessionHeader))
			if id == "" {
				if cookie, err := c.Cookie(SessionCookie); err == nil {
					id = cookie.Value
				}
			}

			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   sessionMaxAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Response().Header().Set(SessionHeader, id)
			c.Set(sessionContextKey, id)
			return next(c)
		}
	}
}

func sessionID(c echo.Context) string {
	id, _ := c.Get(sessionContextKey).(string)
	return id
}
