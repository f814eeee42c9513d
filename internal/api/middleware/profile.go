package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	ProfileHeader = "X-Profile-ID"
	ProfileCookie = "aifinder_profile"
)

// ResolveProfile scopes every request to a profile taken from the
// X-Profile-ID header or the profile cookie. A fresh profile is issued, and
// remembered in the cookie, when neither carries a valid id.
func ResolveProfile(secure bool, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			profileID, ok := profileFromRequest(c)
			if !ok {
				profileID = uuid.New()
				c.SetCookie(&http.Cookie{
					Name:     ProfileCookie,
					Value:    profileID.String(),
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := ContextWithProfileID(c.Request().Context(), profileID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func profileFromRequest(c echo.Context) (uuid.UUID, bool) {
	if header := strings.TrimSpace(c.Request().Header.Get(ProfileHeader)); header != "" {
		if id, err := uuid.Parse(header); err == nil {
			return id, true
		}
	}

	cookie, err := c.Cookie(ProfileCookie)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
