package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

// In-memory repository stubs shared by the service tests.

type stubGoalRepo struct {
	mu    sync.Mutex
	goals map[string]*domain.Goal

	createErr error
	listErr   error
}

func newStubGoalRepo(goals ...*domain.Goal) *stubGoalRepo {
	r := &stubGoalRepo{goals: make(map[string]*domain.Goal)}
	for _, g := range goals {
		r.goals[g.ID] = g
	}
	return r
}

func (r *stubGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *g
	r.goals[g.ID] = &cp
	return nil
}

func (r *stubGoalRepo) FindByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[goalID]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *stubGoalRepo) List(ctx context.Context, filter ports.ListGoalsFilter) ([]*domain.Goal, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.Goal
	for _, g := range r.goals {
		if filter.EmployeeIDs != nil && !contains(filter.EmployeeIDs, g.EmployeeID) {
			continue
		}
		if filter.Status != "" && string(g.Status) != filter.Status {
			continue
		}
		if filter.Category != "" && string(g.Category) != filter.Category {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(g.Title), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(g.Description), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *g
		matched = append(matched, &cp)
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubGoalRepo) FindAll(ctx context.Context) ([]*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Goal, 0, len(r.goals))
	for _, g := range r.goals {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubGoalRepo) UpdateDetails(ctx context.Context, g *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.goals[g.ID]
	if !ok {
		return domain.ErrGoalNotFound
	}
	stored.Title = g.Title
	stored.Description = g.Description
	stored.Category = g.Category
	stored.DueDate = g.DueDate
	stored.UpdatedAt = g.UpdatedAt
	return nil
}

func (r *stubGoalRepo) ApplyTransition(ctx context.Context, goalID string, upd ports.TransitionUpdate) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[goalID]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	if g.Status != upd.From {
		return nil, domain.ErrInvalidTransition
	}

	g.Status = upd.To
	g.UpdatedAt = upd.Timestamp
	if upd.ManagerComments != nil {
		g.ManagerComments = *upd.ManagerComments
	}
	if upd.ReviewedAt != nil {
		g.ReviewedAt = upd.ReviewedAt
	}
	if upd.DeletedAt != nil {
		g.DeletedAt = upd.DeletedAt
		g.DeletedByID = upd.DeletedByID
	}

	entry := domain.StatusHistoryEntry{Status: upd.To, Timestamp: upd.Timestamp, ActorID: upd.ActorID}
	if upd.ManagerComments != nil {
		entry.Notes = *upd.ManagerComments
	}
	g.StatusHistory = append(g.StatusHistory, entry)

	cp := *g
	return &cp, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return user, nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(u.Name), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubUserRepo) ListByManager(ctx context.Context, managerID string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if u.Manager != nil && u.Manager.ID == managerID && u.Status == domain.UserActive {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return user, nil
}

type stubRatingRepo struct {
	mu      sync.Mutex
	ratings map[string]*domain.Rating // keyed by goalID+kind

	upsertErr error
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{ratings: make(map[string]*domain.Rating)}
}

func ratingKey(goalID string, kind domain.RatingKind) string {
	return goalID + "/" + string(kind)
}

func (r *stubRatingRepo) Upsert(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ratingKey(rating.GoalID, rating.Kind)
	if existing, ok := r.ratings[key]; ok {
		existing.Score = rating.Score
		existing.Comments = rating.Comments
		existing.AuthorID = rating.AuthorID
		existing.UpdatedAt = rating.UpdatedAt
		cp := *existing
		return &cp, nil
	}
	cp := *rating
	r.ratings[key] = &cp
	out := cp
	return &out, nil
}

func (r *stubRatingRepo) ListByGoal(ctx context.Context, goalID string) ([]domain.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Rating
	for _, rt := range r.ratings {
		if rt.GoalID == goalID {
			out = append(out, *rt)
		}
	}
	return out, nil
}

func (r *stubRatingRepo) SelfRatedGoalIDs(ctx context.Context, goalIDs []string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rated := make(map[string]bool, len(goalIDs))
	for _, id := range goalIDs {
		if _, ok := r.ratings[ratingKey(id, domain.RatingSelf)]; ok {
			rated[id] = true
		}
	}
	return rated, nil
}

type stubSettingsRepo struct {
	stored *domain.Settings
	getErr error
}

func (r *stubSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.stored, nil
}

func (r *stubSettingsRepo) Save(ctx context.Context, s *domain.Settings) error {
	cp := *s
	r.stored = &cp
	return nil
}

type stubSnapshotCache struct {
	mu      sync.Mutex
	snap    *ports.DashboardSnapshot
	getErr  error
	setErr  error
	gets    int
	sets    int
}

func (c *stubSnapshotCache) Get(ctx context.Context) (*ports.DashboardSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.snap, nil
}

func (c *stubSnapshotCache) Set(ctx context.Context, snap *ports.DashboardSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.snap = snap
	return nil
}

var errStub = errors.New("stub failure")
