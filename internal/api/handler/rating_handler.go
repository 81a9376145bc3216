package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

// ratingSubmitOp covers the two rating submission use cases.
type ratingSubmitOp func(ctx context.Context, actor domain.Actor, input ports.SubmitRatingInput) (*domain.Rating, error)

// RatingHandler handles HTTP requests for rating submissions.
type RatingHandler struct {
	service ports.RatingService
}

func NewRatingHandler(service ports.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

// SubmitSelf handles POST /v1/goals/:id/self-rating.
//
// @Summary      Submit or update the employee's self-rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Goal id"
// @Param        body  body      ratingRequest  true  "Score (1-5) and optional comments"
// @Success      200   {object}  ratingResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/goals/{id}/self-rating [post]
func (h *RatingHandler) SubmitSelf(c echo.Context) error {
	return h.submit(c, h.service.SubmitSelfRating)
}

// SubmitManager handles POST /v1/goals/:id/manager-rating.
//
// @Summary      Submit or update the manager's rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Goal id"
// @Param        body  body      ratingRequest  true  "Score (1-5) and optional comments"
// @Success      200   {object}  ratingResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/goals/{id}/manager-rating [post]
func (h *RatingHandler) SubmitManager(c echo.Context) error {
	return h.submit(c, h.service.SubmitManagerRating)
}

// List handles GET /v1/goals/:id/ratings.
//
// @Summary      List a goal's ratings with their average
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Goal id"
// @Success      200 {object}  goalRatingsResponse
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/goals/{id}/ratings [get]
func (h *RatingHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	ratings, err := h.service.ListGoalRatings(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGoalRatingsResponse(ratings))
}

func (h *RatingHandler) submit(c echo.Context, op ratingSubmitOp) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := op(c.Request().Context(), actor, ports.SubmitRatingInput{
		GoalID:   c.Param("id"),
		Score:    req.Score,
		Comments: req.Comments,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRatingResponse(rating))
}
