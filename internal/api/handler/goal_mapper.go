package handler

import (
	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createGoalRequest) ports.CreateGoalInput {
	return ports.CreateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     req.DueDate,
		EmployeeID:  req.EmployeeID,
		ManagerID:   req.ManagerID,
	}
}

func toUpdateInput(req updateGoalRequest) ports.UpdateGoalInput {
	return ports.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		DueDate:     req.DueDate,
	}
}

// --- Domain → HTTP response ---

func toGoalResponse(g *domain.Goal) goalResponse {
	history := make([]statusHistoryEntryResponse, len(g.StatusHistory))
	for i, h := range g.StatusHistory {
		history[i] = statusHistoryEntryResponse{
			Status:    string(h.Status),
			Timestamp: h.Timestamp.UTC(),
			ActorID:   h.ActorID,
			Notes:     h.Notes,
		}
	}
	return goalResponse{
		ID:                g.ID,
		Title:             g.Title,
		Description:       g.Description,
		Status:            string(g.Status),
		Category:          string(g.Category),
		DueDate:           g.DueDate.UTC(),
		EmployeeID:        g.EmployeeID,
		ManagerID:         g.ManagerID,
		ManagerComments:   g.ManagerComments,
		EmployeeComment:   g.EmployeeComment,
		OwnershipKind:     string(g.OwnershipKind),
		IsApprovalProcess: g.IsApprovalProcess,
		CreatedAt:         g.CreatedAt.UTC(),
		UpdatedAt:         g.UpdatedAt.UTC(),
		ReviewedAt:        g.ReviewedAt,
		DeletedAt:         g.DeletedAt,
		StatusHistory:     history,
	}
}

func toListResponse(r *ports.ListGoalsResult) listGoalsResponse {
	items := make([]goalResponse, len(r.Items))
	for i, g := range r.Items {
		items[i] = toGoalResponse(g)
	}
	return listGoalsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toRatingResponse(r *domain.Rating) ratingResponse {
	return ratingResponse{
		ID:        r.ID,
		GoalID:    r.GoalID,
		Kind:      string(r.Kind),
		Score:     r.Score,
		Comments:  r.Comments,
		AuthorID:  r.AuthorID,
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func toGoalRatingsResponse(gr *ports.GoalRatings) goalRatingsResponse {
	ratings := make([]ratingResponse, len(gr.Ratings))
	for i := range gr.Ratings {
		ratings[i] = toRatingResponse(&gr.Ratings[i])
	}
	return goalRatingsResponse{Ratings: ratings, Average: gr.Average}
}
