package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createGoalRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category"    validate:"required,oneof=PROFESSIONAL TECHNICAL LEADERSHIP PERSONAL TRAINING KPI"`
	DueDate     time.Time `json:"dueDate"     validate:"required"`
	EmployeeID  string    `json:"employeeId"`
	ManagerID   string    `json:"managerId"`
}

type updateGoalRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category" validate:"omitempty,oneof=PROFESSIONAL TECHNICAL LEADERSHIP PERSONAL TRAINING KPI"`
	DueDate     *time.Time `json:"dueDate"`
}

type reviewRequest struct {
	Comments string `json:"comments"`
}

type ratingRequest struct {
	Score    int    `json:"score"    validate:"required,gte=1,lte=5"`
	Comments string `json:"comments"`
}

// --- Response types ---
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

type statusHistoryEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actorId,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

type goalResponse struct {
	ID                string                       `json:"id"`
	Title             string                       `json:"title"`
	Description       string                       `json:"description"`
	Status            string                       `json:"status"`
	Category          string                       `json:"category"`
	DueDate           time.Time                    `json:"dueDate"`
	EmployeeID        string                       `json:"employeeId"`
	ManagerID         string                       `json:"managerId"`
	ManagerComments   string                       `json:"managerComments,omitempty"`
	EmployeeComment   string                       `json:"employeeComment,omitempty"`
	OwnershipKind     string                       `json:"ownershipKind"`
	IsApprovalProcess bool                         `json:"isApprovalProcess"`
	CreatedAt         time.Time                    `json:"createdAt"`
	UpdatedAt         time.Time                    `json:"updatedAt"`
	ReviewedAt        *time.Time                   `json:"reviewedAt,omitempty"`
	DeletedAt         *time.Time                   `json:"deletedAt,omitempty"`
	StatusHistory     []statusHistoryEntryResponse `json:"statusHistory"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type listGoalsResponse struct {
	Data       []goalResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type ratingResponse struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goalId"`
	Kind      string    `json:"kind"`
	Score     int       `json:"score"`
	Comments  string    `json:"comments,omitempty"`
	AuthorID  string    `json:"authorId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type goalRatingsResponse struct {
	Ratings []ratingResponse `json:"ratings"`
	Average string           `json:"average"`
}
