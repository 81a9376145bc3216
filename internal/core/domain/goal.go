package domain

import (
	"errors"
	"time"
)

// GoalStatus represents the lifecycle state of a performance goal.
type GoalStatus string

const (
	StatusDraft     GoalStatus = "DRAFT"
	StatusPending   GoalStatus = "PENDING"
	StatusApproved  GoalStatus = "APPROVED"
	StatusRejected  GoalStatus = "REJECTED"
	StatusModified  GoalStatus = "MODIFIED"
	StatusCompleted GoalStatus = "COMPLETED"
	StatusDeleted   GoalStatus = "DELETED"
)

// validTransitions defines the allowed state machine transitions.
// COMPLETED is reachable only from APPROVED; COMPLETED and DELETED are
// terminal and have no outgoing edges.
var validTransitions = map[GoalStatus][]GoalStatus{
	StatusDraft:    {StatusPending, StatusDeleted},
	StatusPending:  {StatusApproved, StatusRejected, StatusModified, StatusDeleted},
	StatusApproved: {StatusCompleted, StatusDeleted},
	StatusRejected: {StatusDeleted},
	StatusModified: {StatusPending, StatusDeleted},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrInvalidState = errors.New("goal is in an invalid state for this operation")
var ErrGoalNotFound = errors.New("goal not found")
var ErrForbidden = errors.New("access forbidden")
var ErrValidation = errors.New("validation failed")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s GoalStatus) CanTransitionTo(next GoalStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s GoalStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// GoalCategory classifies a goal for dashboard grouping.
type GoalCategory string

const (
	CategoryProfessional GoalCategory = "PROFESSIONAL"
	CategoryTechnical    GoalCategory = "TECHNICAL"
	CategoryLeadership   GoalCategory = "LEADERSHIP"
	CategoryPersonal     GoalCategory = "PERSONAL"
	CategoryTraining     GoalCategory = "TRAINING"
	CategoryKPI          GoalCategory = "KPI"
)

// Categories lists every known goal category.
var Categories = []GoalCategory{
	CategoryProfessional,
	CategoryTechnical,
	CategoryLeadership,
	CategoryPersonal,
	CategoryTraining,
	CategoryKPI,
}

// IsValid reports whether the category is one of the known values.
func (c GoalCategory) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// OwnershipKind distinguishes goals an employee assigned to themselves
// (tracked in the approval-process dashboard bucket) from goals assigned
// by a manager. It is decided once at creation time.
type OwnershipKind string

const (
	SelfAssigned    OwnershipKind = "SELF_ASSIGNED"
	ManagerAssigned OwnershipKind = "MANAGER_ASSIGNED"
)

// StatusHistoryEntry records a single status transition on a goal.
type StatusHistoryEntry struct {
	Status    GoalStatus `json:"status" bson:"status"`
	Timestamp time.Time  `json:"timestamp" bson:"timestamp"`
	ActorID   string     `json:"actorId,omitempty" bson:"actor_id,omitempty"`
	Notes     string     `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Goal is the core aggregate root.
type Goal struct {
	ID                string               `json:"id" bson:"_id,omitempty"`
	Title             string               `json:"title" bson:"title"`
	Description       string               `json:"description" bson:"description"`
	Status            GoalStatus           `json:"status" bson:"status"`
	Category          GoalCategory         `json:"category" bson:"category"`
	DueDate           time.Time            `json:"dueDate" bson:"due_date"`
	EmployeeID        string               `json:"employeeId" bson:"employee_id"`
	ManagerID         string               `json:"managerId" bson:"manager_id"`
	ManagerComments   string               `json:"managerComments,omitempty" bson:"manager_comments,omitempty"`
	EmployeeComment   string               `json:"employeeComment,omitempty" bson:"employee_comment,omitempty"`
	OwnershipKind     OwnershipKind        `json:"ownershipKind" bson:"ownership_kind"`
	IsApprovalProcess bool                 `json:"isApprovalProcess" bson:"is_approval_process"`
	CreatedAt         time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time            `json:"updatedAt" bson:"updated_at"`
	ReviewedAt        *time.Time           `json:"reviewedAt,omitempty" bson:"reviewed_at,omitempty"`
	DeletedAt         *time.Time           `json:"deletedAt,omitempty" bson:"deleted_at,omitempty"`
	DeletedByID       string               `json:"deletedById,omitempty" bson:"deleted_by_id,omitempty"`
	StatusHistory     []StatusHistoryEntry `json:"statusHistory" bson:"status_history"`
}
