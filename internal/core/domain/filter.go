package domain

import "strings"

// FilterAll is the sentinel value that turns any filter into the identity.
const FilterAll = "all"

// RatingPresence selects goals by whether a self-rating exists for them.
type RatingPresence string

const (
	PresenceAll     RatingPresence = "all"
	PresenceRated   RatingPresence = "rated"
	PresenceUnrated RatingPresence = "unrated"
)

// GoalFilter is a pure predicate-style transformation over a goal collection.
// Filters never mutate their input and compose via AND in any order.
type GoalFilter func([]*Goal) []*Goal

// ApplyFilters runs each filter over the collection in sequence.
func ApplyFilters(goals []*Goal, filters ...GoalFilter) []*Goal {
	out := goals
	for _, f := range filters {
		out = f(out)
	}
	return out
}

func keep(goals []*Goal, pred func(*Goal) bool) []*Goal {
	out := make([]*Goal, 0, len(goals))
	for _, g := range goals {
		if pred(g) {
			out = append(out, g)
		}
	}
	return out
}

// ByEmployee keeps goals owned by the given employee. "all" is the identity.
func ByEmployee(employeeID string) GoalFilter {
	return func(goals []*Goal) []*Goal {
		if employeeID == FilterAll || employeeID == "" {
			return goals
		}
		return keep(goals, func(g *Goal) bool { return g.EmployeeID == employeeID })
	}
}

// ByStatus keeps goals with an exact status match. "all" is the identity.
func ByStatus(status string) GoalFilter {
	return func(goals []*Goal) []*Goal {
		if status == FilterAll || status == "" {
			return goals
		}
		return keep(goals, func(g *Goal) bool { return string(g.Status) == status })
	}
}

// ByCategory keeps goals with an exact category match. "all" is the identity.
func ByCategory(category string) GoalFilter {
	return func(goals []*Goal) []*Goal {
		if category == FilterAll || category == "" {
			return goals
		}
		return keep(goals, func(g *Goal) bool { return string(g.Category) == category })
	}
}

// ByRatingPresence keeps goals by self-rating presence. selfRated maps goal id
// to whether a self-rating record exists.
func ByRatingPresence(mode RatingPresence, selfRated map[string]bool) GoalFilter {
	return func(goals []*Goal) []*Goal {
		switch mode {
		case PresenceRated:
			return keep(goals, func(g *Goal) bool { return selfRated[g.ID] })
		case PresenceUnrated:
			return keep(goals, func(g *Goal) bool { return !selfRated[g.ID] })
		default:
			return goals
		}
	}
}

// BySearchText keeps goals whose title or description contains the query,
// case-insensitively. A blank query is the identity.
func BySearchText(query string) GoalFilter {
	return func(goals []*Goal) []*Goal {
		q := strings.ToLower(strings.TrimSpace(query))
		if q == "" {
			return goals
		}
		return keep(goals, func(g *Goal) bool {
			return strings.Contains(strings.ToLower(g.Title), q) ||
				strings.Contains(strings.ToLower(g.Description), q)
		})
	}
}
