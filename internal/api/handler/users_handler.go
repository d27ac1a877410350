package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lamsaclean/site-api/internal/api/middleware"
	"github.com/lamsaclean/site-api/internal/core/domain"
	"github.com/lamsaclean/site-api/internal/core/ports"
)

// UsersHandler serves the gated back-office user administration API.
type UsersHandler struct {
	auth ports.AuthService
}

func NewUsersHandler(auth ports.AuthService) *UsersHandler {
	return &UsersHandler{auth: auth}
}

type permissionInput struct {
	Module  string   `json:"module" validate:"required"`
	Actions []string `json:"actions" validate:"required,min=1,dive,oneof=create read update delete"`
}

type createUserRequest struct {
	Username    string            `json:"username" validate:"required,min=3,max=50"`
	Password    string            `json:"password" validate:"required,min=6,max=100"`
	Email       string            `json:"email" validate:"omitempty,email"`
	Role        string            `json:"role" validate:"required,oneof=administrator manager operator"`
	Permissions []permissionInput `json:"permissions" validate:"omitempty,dive"`
}

type userResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

// Create registers a new back-office user.
//
// @Summary      Create a back-office user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/admin/users [post]
func (h *UsersHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	perms := make([]domain.Permission, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		perms = append(perms, domain.Permission{Module: p.Module, Actions: p.Actions})
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Role:        req.Role,
		Permissions: perms,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{Success: true, User: user})
}

// Me returns the user behind the current session.
//
// @Summary      Current session user
// @Tags         admin
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/admin/users/me [get]
func (h *UsersHandler) Me(c echo.Context) error {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}
