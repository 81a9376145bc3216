package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

var (
	employeeActor = domain.Actor{ID: "emp-1", Role: domain.RoleEmployee}
	managerActor  = domain.Actor{ID: "mgr-1", Role: domain.RoleManager}
	adminActor    = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
)

func testUsers() *stubUserRepo {
	mgr := &domain.User{ID: "mgr-1", Name: "Morgan", Email: "morgan@example.com", Role: domain.RoleManager, Status: domain.UserActive}
	mgrRef := mgr.Ref()
	return newStubUserRepo(
		mgr,
		&domain.User{ID: "emp-1", Name: "Erin", Email: "erin@example.com", Role: domain.RoleEmployee, Status: domain.UserActive, Manager: &mgrRef},
		&domain.User{ID: "emp-2", Name: "Evan", Email: "evan@example.com", Role: domain.RoleEmployee, Status: domain.UserActive, Manager: &mgrRef},
		&domain.User{ID: "emp-3", Name: "Olive", Email: "olive@example.com", Role: domain.RoleEmployee, Status: domain.UserActive},
	)
}

func newTestGoalService(goals *stubGoalRepo) (*GoalService, *stubRatingRepo) {
	ratings := newStubRatingRepo()
	return NewGoalService(goals, testUsers(), ratings, zerolog.Nop()), ratings
}

func validCreateInput() ports.CreateGoalInput {
	return ports.CreateGoalInput{
		Title:       "Ship the reporting service",
		Description: "End-to-end delivery",
		Category:    string(domain.CategoryTechnical),
		DueDate:     time.Now().UTC().Add(30 * 24 * time.Hour),
	}
}

func TestCreateGoal_StartsInDraft(t *testing.T) {
	repo := newStubGoalRepo()
	svc, _ := newTestGoalService(repo)

	goal, err := svc.CreateGoal(context.Background(), employeeActor, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if goal.Status != domain.StatusDraft {
		t.Errorf("status: got %s, want DRAFT", goal.Status)
	}
	if goal.EmployeeID != "emp-1" {
		t.Errorf("employee defaulting: got %s", goal.EmployeeID)
	}
	if goal.ManagerID != "mgr-1" {
		t.Errorf("manager defaulting: got %s", goal.ManagerID)
	}
	if goal.OwnershipKind != domain.ManagerAssigned {
		t.Errorf("ownership: got %s", goal.OwnershipKind)
	}
	if len(goal.StatusHistory) != 1 || goal.StatusHistory[0].Status != domain.StatusDraft {
		t.Errorf("history not seeded: %+v", goal.StatusHistory)
	}
}

func TestCreateGoal_SelfAssignedWithoutManager(t *testing.T) {
	repo := newStubGoalRepo()
	svc, _ := newTestGoalService(repo)

	// emp-3 has no assigned manager: the goal reviews itself.
	actor := domain.Actor{ID: "emp-3", Role: domain.RoleEmployee}
	goal, err := svc.CreateGoal(context.Background(), actor, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if goal.ManagerID != "emp-3" {
		t.Errorf("manager fallback: got %s", goal.ManagerID)
	}
	if goal.OwnershipKind != domain.SelfAssigned || !goal.IsApprovalProcess {
		t.Errorf("self-assigned classification: %s / %v", goal.OwnershipKind, goal.IsApprovalProcess)
	}
}

func TestCreateGoal_Validation(t *testing.T) {
	repo := newStubGoalRepo()
	svc, _ := newTestGoalService(repo)
	ctx := context.Background()

	blank := validCreateInput()
	blank.Title = "   "
	if _, err := svc.CreateGoal(ctx, employeeActor, blank); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank title: got %v", err)
	}

	past := validCreateInput()
	past.DueDate = time.Now().UTC().Add(-48 * time.Hour)
	if _, err := svc.CreateGoal(ctx, employeeActor, past); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("past due date: got %v", err)
	}

	badCat := validCreateInput()
	badCat.Category = "HOBBY"
	if _, err := svc.CreateGoal(ctx, employeeActor, badCat); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad category: got %v", err)
	}

	if len(repo.goals) != 0 {
		t.Errorf("invalid goals were persisted: %d", len(repo.goals))
	}
}

func TestCreateGoal_EmployeeCannotCreateForOthers(t *testing.T) {
	repo := newStubGoalRepo()
	svc, _ := newTestGoalService(repo)

	input := validCreateInput()
	input.EmployeeID = "emp-2"
	if _, err := svc.CreateGoal(context.Background(), employeeActor, input); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestCreateGoal_ManagerOnlyForOwnReports(t *testing.T) {
	repo := newStubGoalRepo()
	svc, _ := newTestGoalService(repo)
	ctx := context.Background()

	input := validCreateInput()
	input.EmployeeID = "emp-2"
	if _, err := svc.CreateGoal(ctx, managerActor, input); err != nil {
		t.Fatalf("manager assigning own report: %v", err)
	}

	input.EmployeeID = "emp-3" // not managed by mgr-1
	if _, err := svc.CreateGoal(ctx, managerActor, input); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("manager assigning foreign employee: got %v, want ErrForbidden", err)
	}
}

func TestSubmitThenApprove(t *testing.T) {
	repo := newStubGoalRepo(&domain.Goal{
		ID: "g1", Status: domain.StatusDraft, EmployeeID: "emp-1", ManagerID: "mgr-1",
	})
	svc, _ := newTestGoalService(repo)
	ctx := context.Background()

	goal, err := svc.Submit(ctx, employeeActor, "g1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if goal.Status != domain.StatusPending {
		t.Fatalf("after submit: got %s", goal.Status)
	}

	goal, err = svc.Approve(ctx, managerActor, ports.ReviewInput{GoalID: "g1", Comments: "looks good"})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if goal.Status != domain.StatusApproved {
		t.Fatalf("after approve: got %s", goal.Status)
	}
	if goal.ReviewedAt == nil {
		t.Errorf("approve must stamp ReviewedAt")
	}
	if goal.ManagerComments != "looks good" {
		t.Errorf("manager comments: got %q", goal.ManagerComments)
	}
	if len(goal.StatusHistory) != 2 {
		t.Errorf("history length: got %d, want 2", len(goal.StatusHistory))
	}
}

func TestApprove_EmptyCommentsAllowed(t *testing.T) {
	repo := newStubGoalRepo(&domain.Goal{
		ID: "g1", Status: domain.StatusPending, EmployeeID: "emp-1", ManagerID: "mgr-1",
	})
	svc, _ := newTestGoalService(repo)

	goal, err := svc.Approve(context.Background(), managerActor, ports.ReviewInput{GoalID: "g1"})
	if err != nil {
		t.Fatalf("approve without comments: %v", err)
	}
	if goal.Status != domain.StatusApproved {
		t.Fatalf("got %s", goal.Status)
	}
}

func TestReject_RequiresComments(t *testing.T) {
	repo := newStubGoalRepo(&domain.Goal{
		ID: "g1", Status: domain.StatusPending, EmployeeID: "emp-1", ManagerID: "mgr-1",
	})
	svc, _ := newTestGoalService(repo)
	ctx := context.Background()

	if _, err := svc.Reject(ctx, managerActor, ports.ReviewInput{GoalID: "g1", Comments: "  "}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank comments: got %v, want ErrValidation", err)
	}

	stored, _ := repo.FindByID(ctx, "g1")
	if stored.Status != domain.StatusPending {
		t.Fatalf("goal moved despite validation failure: %s", stored.Status)
	}

	goal, err := svc.Reject(ctx, managerActor, ports.ReviewInput{GoalID: "g1", Comments: "scope too broad"})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if goal.Status != domain.StatusRejected || goal.ReviewedAt == nil {
		t.Fatalf("reject result: %s / %v", goal.Status, goal.ReviewedAt)
	}
}

func TestTransition_WrongManagerLeavesGoalUntouched(t *testing.T) {
	repo := newStubGoalRepo(&domain.Goal{
		ID: "g1", Status: domain.StatusPending, EmployeeID: "emp-1", ManagerID: "mgr-1",
	})
	svc, _ := newTestGoalService(repo)
	ctx := context.Background()

	other := domain.Actor{ID: "mgr-2", Role: domain.RoleManager}
	if _, err := svc.Approve(ctx, other, ports.ReviewInput{GoalID: "g1"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}

	stored, _ := repo.FindByID(ctx, "g1")
	if stored.Status != domain.StatusPending || len(stored.StatusHistory) != 0 {
		t.Fatalf("goal mutated by forbidden transition: %+v", stored)
	}
}

func TestRequestChangesThenResubmit(t *testing.T) {
	repo := newStubGoalRepo(&domain.Goal{
		ID: "g1", Status: domain.StatusPending, EmployeeID: "emp-1", ManagerID: "mgr-1",
	})
	svc, _ := newTestGoalService(repo)
	ctx := context.Background()

	goal, err := svc.RequestChanges(ctx, managerActor, ports.ReviewInput{GoalID: "g1", Comments: "tighten the scope"})
	if err != nil {
		t.Fatalf("request changes: %v", err)
	}
	if goal.Status != domain.StatusModified {
		t.Fatalf("after request changes: %s", goal.Status)
	}

	goal, err = svc.Submit(ctx, employeeActor, "g1")
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if goal.Status != domain.StatusPending {
		t.Fatalf("after resubmit: %s", goal.Status)
	}
}

func TestDelete_StampsAndIsTerminal(t *testing.T) {
	repo := newStubGoalRepo(&domain.Goal{
		ID: "g1", Status: domain.StatusDraft, EmployeeID: "emp-1", ManagerID: "mgr-1",
	})
	svc, _ := newTestGoalService(repo)
	ctx := context.Background()

	goal, err := svc.Delete(ctx, employeeActor, "g1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if goal.Status != domain.StatusDeleted {
		t.Fatalf("after delete: %s", goal.Status)
	}
	if goal.DeletedAt == nil || goal.DeletedByID != "emp-1" {
		t.Fatalf("delete stamps missing: %v / %s", goal.DeletedAt, goal.DeletedByID)
	}

	if _, err := svc.Submit(ctx, employeeActor, "g1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("transition out of DELETED: got %v, want ErrInvalidTransition", err)
	}
}

func TestComplete_OnlyFromApproved(t *testing.T) {
	repo := newStubGoalRepo(
		&domain.Goal{ID: "ok", Status: domain.StatusApproved, EmployeeID: "emp-1", ManagerID: "mgr-1"},
		&domain.Goal{ID: "nope", Status: domain.StatusPending, EmployeeID: "emp-1", ManagerID: "mgr-1"},
	)
	svc, _ := newTestGoalService(repo)
	ctx := context.Background()

	goal, err := svc.Complete(ctx, employeeActor, "ok")
	if err != nil {
		t.Fatalf("complete approved: %v", err)
	}
	if goal.Status != domain.StatusCompleted {
		t.Fatalf("got %s", goal.Status)
	}

	if _, err := svc.Complete(ctx, employeeActor, "nope"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("complete pending: got %v, want ErrInvalidTransition", err)
	}
}

func TestUpdateGoal_OnlyEditableStates(t *testing.T) {
	future := time.Now().UTC().Add(14 * 24 * time.Hour)
	repo := newStubGoalRepo(
		&domain.Goal{ID: "draft", Status: domain.StatusDraft, Title: "old", Category: domain.CategoryTechnical, DueDate: future, EmployeeID: "emp-1", ManagerID: "mgr-1"},
		&domain.Goal{ID: "approved", Status: domain.StatusApproved, Title: "locked", Category: domain.CategoryTechnical, DueDate: future, EmployeeID: "emp-1", ManagerID: "mgr-1"},
	)
	svc, _ := newTestGoalService(repo)
	ctx := context.Background()

	title := "new title"
	goal, err := svc.UpdateGoal(ctx, employeeActor, "draft", ports.UpdateGoalInput{Title: &title})
	if err != nil {
		t.Fatalf("update draft: %v", err)
	}
	if goal.Title != "new title" {
		t.Fatalf("title: got %q", goal.Title)
	}

	if _, err := svc.UpdateGoal(ctx, employeeActor, "approved", ports.UpdateGoalInput{Title: &title}); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("update approved: got %v, want ErrInvalidState", err)
	}

	if _, err := svc.UpdateGoal(ctx, domain.Actor{ID: "emp-2", Role: domain.RoleEmployee}, "draft", ports.UpdateGoalInput{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("update by non-owner: got %v, want ErrForbidden", err)
	}
}

func TestListGoals_Scoping(t *testing.T) {
	future := time.Now().UTC().Add(24 * time.Hour)
	repo := newStubGoalRepo(
		&domain.Goal{ID: "g1", Status: domain.StatusDraft, Category: domain.CategoryTechnical, DueDate: future, EmployeeID: "emp-1", ManagerID: "mgr-1"},
		&domain.Goal{ID: "g2", Status: domain.StatusPending, Category: domain.CategoryKPI, DueDate: future, EmployeeID: "emp-2", ManagerID: "mgr-1"},
		&domain.Goal{ID: "g3", Status: domain.StatusDraft, Category: domain.CategoryPersonal, DueDate: future, EmployeeID: "emp-3", ManagerID: "emp-3"},
	)
	svc, _ := newTestGoalService(repo)
	ctx := context.Background()

	// Employee sees only their own goals.
	res, err := svc.ListGoals(ctx, employeeActor, ports.ListGoalsInput{})
	if err != nil {
		t.Fatalf("employee list: %v", err)
	}
	if res.Total != 1 || res.Items[0].ID != "g1" {
		t.Fatalf("employee scope: total=%d", res.Total)
	}

	// Manager sees their own plus their reports'.
	res, err = svc.ListGoals(ctx, managerActor, ports.ListGoalsInput{})
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("manager scope: total=%d, want 2", res.Total)
	}

	// Admin sees everything; "all" sentinels are identity filters.
	res, err = svc.ListGoals(ctx, adminActor, ports.ListGoalsInput{Status: "all", Category: "all", EmployeeID: "all"})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if res.Total != 3 {
		t.Fatalf("admin scope: total=%d, want 3", res.Total)
	}

	// Employee asking for someone else's goals is refused.
	if _, err := svc.ListGoals(ctx, employeeActor, ports.ListGoalsInput{EmployeeID: "emp-2"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("employee cross-scope: got %v, want ErrForbidden", err)
	}

	// Manager narrowing outside their team is refused.
	if _, err := svc.ListGoals(ctx, managerActor, ports.ListGoalsInput{EmployeeID: "emp-3"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("manager cross-scope: got %v, want ErrForbidden", err)
	}
}

func TestListGoals_Pagination(t *testing.T) {
	future := time.Now().UTC().Add(24 * time.Hour)
	goals := make([]*domain.Goal, 0, 5)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		goals = append(goals, &domain.Goal{
			ID: id, Status: domain.StatusDraft, Category: domain.CategoryTechnical,
			DueDate: future, EmployeeID: "emp-1", ManagerID: "mgr-1",
		})
	}
	repo := newStubGoalRepo(goals...)
	svc, _ := newTestGoalService(repo)

	res, err := svc.ListGoals(context.Background(), employeeActor, ports.ListGoalsInput{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 5 || res.Page != 2 || res.Limit != 2 {
		t.Fatalf("pagination meta: %+v", res)
	}
	if res.TotalPages != 3 {
		t.Fatalf("total pages: got %d, want 3", res.TotalPages)
	}
	if len(res.Items) != 2 {
		t.Fatalf("page size: got %d", len(res.Items))
	}
}

func TestListGoals_RatedFilter(t *testing.T) {
	future := time.Now().UTC().Add(24 * time.Hour)
	repo := newStubGoalRepo(
		&domain.Goal{ID: "g1", Status: domain.StatusApproved, Category: domain.CategoryTechnical, DueDate: future, EmployeeID: "emp-1", ManagerID: "mgr-1"},
		&domain.Goal{ID: "g2", Status: domain.StatusApproved, Category: domain.CategoryTechnical, DueDate: future, EmployeeID: "emp-1", ManagerID: "mgr-1"},
	)
	svc, ratings := newTestGoalService(repo)
	ctx := context.Background()

	ratings.ratings[ratingKey("g1", domain.RatingSelf)] = &domain.Rating{ID: "r1", GoalID: "g1", Kind: domain.RatingSelf, Score: 4}

	res, err := svc.ListGoals(ctx, employeeActor, ports.ListGoalsInput{Rated: "rated"})
	if err != nil {
		t.Fatalf("rated list: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].ID != "g1" {
		t.Fatalf("rated filter: got %d items", len(res.Items))
	}

	res, err = svc.ListGoals(ctx, employeeActor, ports.ListGoalsInput{Rated: "unrated"})
	if err != nil {
		t.Fatalf("unrated list: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].ID != "g2" {
		t.Fatalf("unrated filter: got %d items", len(res.Items))
	}
}

func TestGetGoal_Visibility(t *testing.T) {
	repo := newStubGoalRepo(&domain.Goal{
		ID: "g1", Status: domain.StatusDraft, EmployeeID: "emp-1", ManagerID: "mgr-1",
	})
	svc, _ := newTestGoalService(repo)
	ctx := context.Background()

	for _, actor := range []domain.Actor{employeeActor, managerActor, adminActor} {
		if _, err := svc.GetGoal(ctx, actor, "g1"); err != nil {
			t.Errorf("%s should see the goal: %v", actor.Role, err)
		}
	}

	stranger := domain.Actor{ID: "emp-2", Role: domain.RoleEmployee}
	if _, err := svc.GetGoal(ctx, stranger, "g1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("stranger: got %v, want ErrForbidden", err)
	}

	if _, err := svc.GetGoal(ctx, adminActor, "missing"); !errors.Is(err, domain.ErrGoalNotFound) {
		t.Errorf("missing goal: got %v, want ErrGoalNotFound", err)
	}
}
