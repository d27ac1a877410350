package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/lamsaclean/site-api/internal/api/metrics"
	"github.com/lamsaclean/site-api/internal/api/session"
	"github.com/lamsaclean/site-api/internal/core/domain"
	"github.com/lamsaclean/site-api/internal/core/ports"
)

// Context keys populated for downstream handlers once a session validates.
const (
	CtxUser        = "user"
	CtxUserID      = "user_id"
	CtxUsername    = "username"
	CtxRole        = "role"
	CtxPermissions = "permissions"
)

const (
	adminRoot        = "/admin"
	loginPath        = "/admin/login"
	unauthorizedPath = "/admin/unauthorized"
)

// SessionManager validates session tokens against the token service and
// resolves the current user from the store. It backs both the admin page
// guard and the API session middleware.
type SessionManager struct {
	tokens  ports.TokenService
	store   ports.UserStore
	cookies *session.CookieManager
}

func NewSessionManager(tokens ports.TokenService, store ports.UserStore, cookies *session.CookieManager) *SessionManager {
	return &SessionManager{tokens: tokens, store: store, cookies: cookies}
}

// Validate resolves the request's session to a user. Any failure (missing
// token, bad signature, expiry, or a user that no longer exists) comes
// back as domain.ErrInvalidToken, never as a distinct error.
func (m *SessionManager) Validate(c echo.Context) (*domain.User, error) {
	token, ok := m.cookies.Extract(c)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidToken
	}

	user, err := m.store.FindByID(c.Request().Context(), claims.UserID)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidToken
	}

	metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
	return user, nil
}

// AdminGuard gates the /admin pages. Unauthenticated visitors are sent to
// the login page with the original path preserved in the "next" query
// parameter; authenticated visitors without an admin-tier role are sent to
// the unauthorized page. The guard fails closed: anything that is not a
// fully valid session counts as unauthenticated.
func (m *SessionManager) AdminGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			user, err := m.Validate(c)

			switch path {
			case loginPath:
				if err == nil {
					// Already signed in; no point rendering the login form.
					return c.Redirect(http.StatusFound, adminRoot)
				}
				return next(c)

			case unauthorizedPath:
				if err != nil {
					return c.Redirect(http.StatusFound, loginPath)
				}
				return next(c)

			default:
				if err != nil {
					return c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(path))
				}
				if user.Role != domain.RoleAdministrator && user.Role != domain.RoleManager {
					return c.Redirect(http.StatusFound, unauthorizedPath)
				}
				setSessionContext(c, user)
				return next(c)
			}
		}
	}
}

// RequireSession protects API routes: 401 when the session is missing or
// invalid, otherwise the resolved user is placed in the request context.
func (m *SessionManager) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := m.Validate(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			setSessionContext(c, user)
			return next(c)
		}
	}
}

func setSessionContext(c echo.Context, user *domain.User) {
	c.Set(CtxUser, user)
	c.Set(CtxUserID, user.ID)
	c.Set(CtxUsername, user.Username)
	c.Set(CtxRole, user.Role)
	c.Set(CtxPermissions, user.Permissions)
}
