package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/ports"
	"github.com/expenseops/ticketing-system/internal/core/validation"
)

// UserHandler handles the manager-only user administration endpoints.
// Route-level RBAC guarantees only managers reach these handlers.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=employee manager"`
}

type updateUserRequest struct {
	Updates []validation.Update `json:"updateObjects" validate:"required,min=1"`
}

type userResponse struct {
	Message string     `json:"message"`
	User    publicUser `json:"user"`
}

type userListResponse struct {
	Message string        `json:"message"`
	Users   []domain.User `json:"users"`
}

// List handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Message: "users retrieved", Users: users})
}

// Get handles GET /users/:user_pkey.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        user_pkey  path      string  true  "User key (UUID)"
// @Success      200        {object}  domain.User
// @Failure      400        {object}  errorResponse
// @Router       /users/{user_pkey} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("user_pkey"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{
		Message: "user created",
		User:    publicUser{Username: user.Username, Role: user.Role},
	})
}

// Update handles PUT /users/:user_pkey.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_pkey  path      string             true  "User key (UUID)"
// @Param        body       body      updateUserRequest  true  "Update instructions"
// @Success      200        {object}  userResponse
// @Failure      400        {object}  errorResponse
// @Router       /users/{user_pkey} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("user_pkey"), req.Updates)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		Message: "user updated",
		User:    publicUser{Username: user.Username, Role: user.Role},
	})
}

// Delete handles DELETE /users — always 405.
//
// @Summary      Delete a user (unsupported)
// @Tags         users
// @Security     BearerAuth
// @Failure      405  {object}  errorResponse
// @Router       /users [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("user_pkey")); err != nil {
		return err
	}
	return echo.NewHTTPError(http.StatusMethodNotAllowed, "delete not available")
}
