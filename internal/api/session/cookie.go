// Package session manages the HTTP-only cookie that carries the admin
// session token, and token extraction from incoming requests.
package session

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CookieName is the session cookie attached after a successful login.
const CookieName = "admin_session"

const cookieMaxAge = 24 * 60 * 60

// CookieManager sets and clears the session cookie with one consistent
// policy: HttpOnly, SameSite=Lax, Path=/, Secure in production.
type CookieManager struct {
	secure bool
}

func NewCookieManager(secure bool) *CookieManager {
	return &CookieManager{secure: secure}
}

// Attach sets the session cookie carrying token on the outgoing response.
func (m *CookieManager) Attach(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie immediately. The token itself stays
// valid until its natural expiry; only the client copy is removed.
func (m *CookieManager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Extract reads the session token from the request: cookie first, then an
// Authorization bearer header. The second return is false when neither is
// present.
func (m *CookieManager) Extract(c echo.Context) (string, bool) {
	if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
		return ck.Value, true
	}

	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
		return parts[1], true
	}
	return "", false
}
