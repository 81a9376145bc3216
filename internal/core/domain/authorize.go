package domain

// Actor is the authenticated principal performing an operation. It is passed
// explicitly to every authorization check so the engine never reads ambient
// session state.
type Actor struct {
	ID   string
	Role string
}

// reviewTransition reports whether the edge PENDING -> to is a manager review
// decision (approve, reject, or request changes).
func reviewTransition(from, to GoalStatus) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusRejected || to == StatusModified
}

// CanTransition decides whether actor may move goal g to the requested status.
//
// The edge is checked before the actor: an illegal edge yields
// ErrInvalidTransition regardless of who asks, a legal edge attempted by the
// wrong actor yields ErrForbidden. Nil error means the transition is allowed.
func CanTransition(actor Actor, g *Goal, to GoalStatus) error {
	if !g.Status.CanTransitionTo(to) {
		return ErrInvalidTransition
	}

	if actor.Role == RoleAdmin {
		return nil
	}

	isOwner := actor.ID == g.EmployeeID
	isGoalManager := actor.ID == g.ManagerID

	switch {
	case reviewTransition(g.Status, to):
		// Review decisions belong to the assigned manager alone.
		if actor.Role == RoleManager && isGoalManager {
			return nil
		}
	case to == StatusPending && g.Status == StatusDraft:
		// Either the owning employee or the assigning manager submits.
		if isOwner || (actor.Role == RoleManager && isGoalManager) {
			return nil
		}
	case to == StatusPending && g.Status == StatusModified:
		// Only the employee resubmits after a change request.
		if isOwner {
			return nil
		}
	case to == StatusCompleted:
		if isOwner || (actor.Role == RoleManager && isGoalManager) {
			return nil
		}
	case to == StatusDeleted:
		if isOwner || (actor.Role == RoleManager && isGoalManager) {
			return nil
		}
	}

	return ErrForbidden
}

// DecideOwnership classifies a goal at creation time. A goal reviews itself
// when its manager and employee coincide, or when the employee is an admin;
// those goals live in the approval-process dashboard bucket.
func DecideOwnership(employeeID, managerID, employeeRole string) OwnershipKind {
	if employeeID == managerID || employeeRole == RoleAdmin {
		return SelfAssigned
	}
	return ManagerAssigned
}
