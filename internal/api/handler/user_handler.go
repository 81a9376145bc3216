package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

// UserHandler handles user administration and the employee directory.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
	Role      string `json:"role"      validate:"required,oneof=EMPLOYEE MANAGER ADMIN"`
	ManagerID string `json:"managerId"`
}

type updateUserRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"   validate:"omitempty,email"`
	Role      *string `json:"role"    validate:"omitempty,oneof=EMPLOYEE MANAGER ADMIN"`
	Status    *string `json:"status"  validate:"omitempty,oneof=ACTIVE INACTIVE"`
	ManagerID *string `json:"managerId"`
}

type userListResponse struct {
	Data []*domain.User `json:"data"`
}

// List handles GET /v1/admin/users.
//
// @Summary      List user accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role    query  string  false  "Role filter"
// @Param        status  query  string  false  "Status filter (ACTIVE/INACTIVE)"
// @Param        search  query  string  false  "Substring match on name/email"
// @Success      200  {object}  userListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), actor, ports.ListUsersFilter{
		Role:   c.QueryParam("role"),
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Data: users})
}

// Create handles POST /v1/admin/users.
//
// @Summary      Create a user account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.CreateUser(c.Request().Context(), actor, ports.CreateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update handles PUT /v1/admin/users/:id.
//
// @Summary      Update a user account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Editable fields"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateUser(c.Request().Context(), actor, c.Param("id"), ports.UpdateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		Status:    req.Status,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Deactivate handles DELETE /v1/admin/users/:id — soft deactivation.
//
// @Summary      Deactivate a user account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [delete]
func (h *UserHandler) Deactivate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.DeactivateUser(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Employees handles GET /v1/employees — the active user directory.
//
// @Summary      List active users for people pickers
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Router       /v1/employees [get]
func (h *UserHandler) Employees(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListEmployees(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Data: users})
}

// Assigned handles GET /v1/employees/assigned — the caller's direct reports.
//
// @Summary      List the calling manager's direct reports
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/employees/assigned [get]
func (h *UserHandler) Assigned(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListAssigned(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Data: users})
}
