package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lamsaclean/site-api/internal/api/metrics"
	"github.com/lamsaclean/site-api/internal/api/middleware"
	"github.com/lamsaclean/site-api/internal/api/session"
	"github.com/lamsaclean/site-api/internal/core/domain"
	"github.com/lamsaclean/site-api/internal/core/ports"
)

// AuthHandler serves the /api/auth endpoints: login, logout, verify.
type AuthHandler struct {
	auth     ports.AuthService
	tokens   ports.TokenService
	limiter  ports.RateLimiter
	cookies  *session.CookieManager
	sessions *middleware.SessionManager

	loginLimit  int
	loginWindow time.Duration
}

func NewAuthHandler(
	auth ports.AuthService,
	tokens ports.TokenService,
	limiter ports.RateLimiter,
	cookies *session.CookieManager,
	sessions *middleware.SessionManager,
	loginLimit int,
	loginWindow time.Duration,
) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		tokens:      tokens,
		limiter:     limiter,
		cookies:     cookies,
		sessions:    sessions,
		loginLimit:  loginLimit,
		loginWindow: loginWindow,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user,omitempty"`
}

// Login authenticates credentials and attaches the session cookie.
//
// @Summary      Log in to the admin back office
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	ok, err := h.limiter.Allow(ctx, "login:"+c.RealIP(), h.loginLimit, h.loginWindow)
	if err != nil {
		// Limiter backend unreachable: fail open rather than lock everyone out.
		c.Logger().Warn("rate limiter unavailable: ", err)
		ok = true
	}
	if !ok {
		metrics.RateLimitRejectionsTotal.WithLabelValues("login").Inc()
		return c.JSON(http.StatusTooManyRequests, map[string]string{
			"error": "too many login attempts, try again later",
		})
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.auth.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "invalid username or password",
		})
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}

	h.cookies.Attach(c, token)
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "login successful",
		User:    user,
	})
}

// Logout clears the session cookie. The token itself is stateless and
// stays valid until expiry; there is no server-side revocation.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "logged out",
	})
}

// Verify reports the user behind the current session, from the cookie or
// a bearer header.
//
// @Summary      Verify the current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	user, err := h.sessions.Validate(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "authentication required",
		})
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		User:    user,
	})
}
