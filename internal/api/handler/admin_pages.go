package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lamsaclean/site-api/internal/api/middleware"
)

// AdminPagesHandler renders the minimal back-office pages behind the admin
// guard. The real dashboard UI is served separately; these placeholders
// exist so the guard's redirect targets resolve.
type AdminPagesHandler struct{}

func NewAdminPagesHandler() *AdminPagesHandler {
	return &AdminPagesHandler{}
}

func (h *AdminPagesHandler) Dashboard(c echo.Context) error {
	username, _ := c.Get(middleware.CtxUsername).(string)
	return c.HTML(http.StatusOK, fmt.Sprintf(
		"<!DOCTYPE html><html><body><h1>Admin dashboard</h1><p>Signed in as %s</p></body></html>",
		username))
}

func (h *AdminPagesHandler) Login(c echo.Context) error {
	next := c.QueryParam("next")
	return c.HTML(http.StatusOK, fmt.Sprintf(
		`<!DOCTYPE html><html><body><h1>Sign in</h1><form method="post" action="/api/auth/login" data-next=%q>`+
			`<input name="username" autocomplete="username">`+
			`<input name="password" type="password" autocomplete="current-password">`+
			`<button type="submit">Sign in</button></form></body></html>`, next))
}

func (h *AdminPagesHandler) Unauthorized(c echo.Context) error {
	return c.HTML(http.StatusForbidden,
		"<!DOCTYPE html><html><body><h1>Unauthorized</h1><p>Your account does not have access to the back office.</p></body></html>")
}
