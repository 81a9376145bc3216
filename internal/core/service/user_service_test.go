package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

func validUserInput() ports.CreateUserInput {
	return ports.CreateUserInput{
		Name:     "Erin",
		Email:    "Erin@Example.com",
		Password: "hunter2pass",
		Role:     domain.RoleEmployee,
	}
}

func TestUserService_AdminGate(t *testing.T) {
	svc := NewUserService(testUsers(), zerolog.Nop())
	ctx := context.Background()

	for _, actor := range []domain.Actor{employeeActor, managerActor} {
		if _, err := svc.ListUsers(ctx, actor, ports.ListUsersFilter{}); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s ListUsers: got %v", actor.Role, err)
		}
		if _, err := svc.CreateUser(ctx, actor, validUserInput()); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s CreateUser: got %v", actor.Role, err)
		}
		if err := svc.DeactivateUser(ctx, actor, "emp-1"); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s DeactivateUser: got %v", actor.Role, err)
		}
	}
}

func TestCreateUser(t *testing.T) {
	users := testUsers()
	svc := NewUserService(users, zerolog.Nop())
	ctx := context.Background()

	input := validUserInput()
	input.ManagerID = "mgr-1"
	user, err := svc.CreateUser(ctx, adminActor, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Email != "erin@example.com" {
		t.Errorf("email not lowercased: %q", user.Email)
	}
	if user.Manager == nil || user.Manager.ID != "mgr-1" {
		t.Errorf("manager snapshot: %+v", user.Manager)
	}

	bad := validUserInput()
	bad.Role = "SUPERVISOR"
	if _, err := svc.CreateUser(ctx, adminActor, bad); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad role: got %v", err)
	}

	empty := validUserInput()
	empty.Password = ""
	if _, err := svc.CreateUser(ctx, adminActor, empty); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing password: got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	users := testUsers()
	svc := NewUserService(users, zerolog.Nop())
	ctx := context.Background()

	role := domain.RoleManager
	name := "Erin the Manager"
	user, err := svc.UpdateUser(ctx, adminActor, "emp-1", ports.UpdateUserInput{Name: &name, Role: &role})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.Name != name || user.Role != domain.RoleManager {
		t.Fatalf("update result: %+v", user)
	}

	// Clearing the manager detaches the report.
	none := ""
	user, err = svc.UpdateUser(ctx, adminActor, "emp-1", ports.UpdateUserInput{ManagerID: &none})
	if err != nil {
		t.Fatalf("detach manager: %v", err)
	}
	if user.Manager != nil {
		t.Fatalf("manager not cleared: %+v", user.Manager)
	}

	badStatus := "RETIRED"
	if _, err := svc.UpdateUser(ctx, adminActor, "emp-1", ports.UpdateUserInput{Status: &badStatus}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad status: got %v", err)
	}

	if _, err := svc.UpdateUser(ctx, adminActor, "ghost", ports.UpdateUserInput{Name: &name}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("missing user: got %v", err)
	}
}

func TestDeactivateUser_SoftOnly(t *testing.T) {
	users := testUsers()
	svc := NewUserService(users, zerolog.Nop())
	ctx := context.Background()

	if err := svc.DeactivateUser(ctx, adminActor, "emp-1"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	stored, err := users.FindByID(ctx, "emp-1")
	if err != nil {
		t.Fatalf("account was hard-deleted: %v", err)
	}
	if stored.Status != domain.UserInactive {
		t.Fatalf("status: got %s", stored.Status)
	}
}

func TestListEmployees_ActiveOnly(t *testing.T) {
	users := testUsers()
	svc := NewUserService(users, zerolog.Nop())
	ctx := context.Background()

	if err := svc.DeactivateUser(ctx, adminActor, "emp-2"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	list, err := svc.ListEmployees(ctx, employeeActor)
	if err != nil {
		t.Fatalf("list employees: %v", err)
	}
	for _, u := range list {
		if u.ID == "emp-2" {
			t.Fatalf("inactive account in directory")
		}
	}
	if len(list) != 3 {
		t.Fatalf("directory size: got %d, want 3", len(list))
	}
}

func TestListAssigned(t *testing.T) {
	svc := NewUserService(testUsers(), zerolog.Nop())
	ctx := context.Background()

	reports, err := svc.ListAssigned(ctx, managerActor)
	if err != nil {
		t.Fatalf("list assigned: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("reports: got %d, want 2", len(reports))
	}

	if _, err := svc.ListAssigned(ctx, employeeActor); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("employee list assigned: got %v", err)
	}
}
