package domain

import "math"

// Stats holds the per-status and per-category counts for a goal collection.
// Counting is order-independent: shuffling the input never changes the result.
type Stats struct {
	Total         int                  `json:"total"`
	Draft         int                  `json:"draft"`
	Pending       int                  `json:"pending"`
	Approved      int                  `json:"approved"`
	Rejected      int                  `json:"rejected"`
	Modified      int                  `json:"modified"`
	Completed     int                  `json:"completed"`
	Deleted       int                  `json:"deleted"`
	CategoryStats map[GoalCategory]int `json:"categoryStats"`
}

// Aggregate computes counts for the given collection. An empty or nil input
// yields all-zero counts.
func Aggregate(goals []*Goal) Stats {
	stats := Stats{CategoryStats: make(map[GoalCategory]int)}
	for _, g := range goals {
		stats.Total++
		switch g.Status {
		case StatusDraft:
			stats.Draft++
		case StatusPending:
			stats.Pending++
		case StatusApproved:
			stats.Approved++
		case StatusRejected:
			stats.Rejected++
		case StatusModified:
			stats.Modified++
		case StatusCompleted:
			stats.Completed++
		case StatusDeleted:
			stats.Deleted++
		}
		stats.CategoryStats[g.Category]++
	}
	return stats
}

// Percentage returns count as a rounded integer percent of total.
// A zero total yields 0, never NaN or a panic.
func Percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// SplitByOwnership partitions goals into the employee-goals bucket and the
// approval-process (self-assigned) bucket used by manager and admin dashboards.
func SplitByOwnership(goals []*Goal) (employee, approval []*Goal) {
	for _, g := range goals {
		if g.OwnershipKind == SelfAssigned {
			approval = append(approval, g)
		} else {
			employee = append(employee, g)
		}
	}
	return employee, approval
}
