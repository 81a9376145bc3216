package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

// simpleTransitionOp covers the transitions that carry no request body.
type simpleTransitionOp func(ctx context.Context, actor domain.Actor, goalID string) (*domain.Goal, error)

// reviewTransitionOp covers the manager review transitions with comments.
type reviewTransitionOp func(ctx context.Context, actor domain.Actor, input ports.ReviewInput) (*domain.Goal, error)

// GoalHandler handles HTTP requests for goal operations.
type GoalHandler struct {
	service ports.GoalService
}

func NewGoalHandler(service ports.GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

// Create handles POST /v1/goals.
//
// @Summary      Create a new goal (status DRAFT)
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGoalRequest  true  "Goal details"
// @Success      201   {object}  goalResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/goals [post]
func (h *GoalHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.service.CreateGoal(c.Request().Context(), actor, toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// Get handles GET /v1/goals/:id.
//
// @Summary      Get a goal by id
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Goal id"
// @Success      200 {object}  goalResponse
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/goals/{id} [get]
func (h *GoalHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	goal, err := h.service.GetGoal(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// List handles GET /v1/goals.
//
// @Summary      List goals visible to the caller
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Param        status    query  string  false  "Status filter or 'all'"
// @Param        category  query  string  false  "Category filter or 'all'"
// @Param        employee  query  string  false  "Employee id filter or 'all'"
// @Param        search    query  string  false  "Substring match on title/description"
// @Param        rated     query  string  false  "Self-rating presence: rated, unrated or all"
// @Param        page      query  int     false  "1-based page"
// @Param        limit     query  int     false  "Page size (max 100)"
// @Success      200  {object}  listGoalsResponse
// @Router       /v1/goals [get]
func (h *GoalHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	input := ports.ListGoalsInput{
		Status:     c.QueryParam("status"),
		Category:   c.QueryParam("category"),
		EmployeeID: c.QueryParam("employee"),
		Search:     c.QueryParam("search"),
		Rated:      c.QueryParam("rated"),
		Page:       intQueryParam(c, "page"),
		Limit:      intQueryParam(c, "limit"),
	}

	result, err := h.service.ListGoals(c.Request().Context(), actor, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Update handles PUT /v1/goals/:id.
//
// @Summary      Edit a goal while it is still editable
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Goal id"
// @Param        body  body      updateGoalRequest  true  "Editable fields"
// @Success      200   {object}  goalResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/goals/{id} [put]
func (h *GoalHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.service.UpdateGoal(c.Request().Context(), actor, c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// Submit handles PUT /v1/goals/:id/submit — DRAFT/MODIFIED → PENDING.
//
// @Summary      Submit a goal for review
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Goal id"
// @Success      200 {object}  goalResponse
// @Failure      422 {object}  errorResponse
// @Router       /v1/goals/{id}/submit [put]
func (h *GoalHandler) Submit(c echo.Context) error {
	return h.simpleTransition(c, h.service.Submit)
}

// Approve handles PUT /v1/goals/:id/approve — PENDING → APPROVED.
//
// @Summary      Approve a pending goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true   "Goal id"
// @Param        body  body      reviewRequest  false  "Optional review comments"
// @Success      200   {object}  goalResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/goals/{id}/approve [put]
func (h *GoalHandler) Approve(c echo.Context) error {
	return h.reviewTransition(c, h.service.Approve)
}

// Reject handles PUT /v1/goals/:id/reject — PENDING → REJECTED.
// Requires non-empty comments.
//
// @Summary      Reject a pending goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Goal id"
// @Param        body  body      reviewRequest  true  "Rejection comments (required)"
// @Success      200   {object}  goalResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/goals/{id}/reject [put]
func (h *GoalHandler) Reject(c echo.Context) error {
	return h.reviewTransition(c, h.service.Reject)
}

// RequestChanges handles PUT /v1/goals/:id/request-changes — PENDING → MODIFIED.
//
// @Summary      Request changes on a pending goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true   "Goal id"
// @Param        body  body      reviewRequest  false  "Change-request comments"
// @Success      200   {object}  goalResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/goals/{id}/request-changes [put]
func (h *GoalHandler) RequestChanges(c echo.Context) error {
	return h.reviewTransition(c, h.service.RequestChanges)
}

// Complete handles PUT /v1/goals/:id/complete — APPROVED → COMPLETED.
//
// @Summary      Mark an approved goal as completed
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Goal id"
// @Success      200 {object}  goalResponse
// @Failure      422 {object}  errorResponse
// @Router       /v1/goals/{id}/complete [put]
func (h *GoalHandler) Complete(c echo.Context) error {
	return h.simpleTransition(c, h.service.Complete)
}

// Delete handles DELETE /v1/goals/:id — soft delete from any non-terminal state.
//
// @Summary      Soft-delete a goal
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Goal id"
// @Success      200 {object}  goalResponse
// @Failure      422 {object}  errorResponse
// @Router       /v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c echo.Context) error {
	return h.simpleTransition(c, h.service.Delete)
}

func (h *GoalHandler) simpleTransition(c echo.Context, op simpleTransitionOp) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	goal, err := op(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// intQueryParam parses a numeric query parameter, returning 0 when absent or
// malformed so the service applies its defaults.
func intQueryParam(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}

func (h *GoalHandler) reviewTransition(c echo.Context, op reviewTransitionOp) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	goal, err := op(c.Request().Context(), actor, ports.ReviewInput{
		GoalID:   c.Param("id"),
		Comments: req.Comments,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}
