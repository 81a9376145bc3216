package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/perfhub/performance-system/internal/core/domain"
)

const testSecret = "test-secret"

func TestRegister_Success(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "mgr-1", Name: "Morgan", Email: "morgan@example.com", Role: domain.RoleManager, Status: domain.UserActive})
	svc := NewAuthService(users, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "Erin", "Erin@Example.com", "hunter2pass", domain.RoleEmployee, "mgr-1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "erin@example.com" {
		t.Errorf("email not lowercased: %q", user.Email)
	}
	if user.Status != domain.UserActive {
		t.Errorf("status: got %s", user.Status)
	}
	if user.Manager == nil || user.Manager.ID != "mgr-1" || user.Manager.Name != "Morgan" {
		t.Errorf("manager snapshot: %+v", user.Manager)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2pass")) != nil {
		t.Errorf("password hash does not verify")
	}
}

func TestRegister_UnknownRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Erin", "erin@example.com", "hunter2pass", "SUPERVISOR", "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Erin", "erin@example.com", "hunter2pass", domain.RoleEmployee, ""); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, "Erin Two", "erin@example.com", "hunter2pass", domain.RoleEmployee, ""); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate: got %v, want ErrUserExists", err)
	}
}

func TestRegister_UnknownManager(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "Erin", "erin@example.com", "hunter2pass", domain.RoleEmployee, "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Erin", "erin@example.com", "hunter2pass", domain.RoleEmployee, "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(ctx, "ERIN@example.com", "hunter2pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("wrong user returned")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["sub"] != registered.ID || claims["role"] != domain.RoleEmployee {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Erin", "erin@example.com", "hunter2pass", domain.RoleEmployee, ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := svc.Login(ctx, "erin@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_InactiveAccount(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2pass"), bcrypt.MinCost)
	users := newStubUserRepo(&domain.User{
		ID: "u1", Email: "erin@example.com", PasswordHash: string(hash),
		Role: domain.RoleEmployee, Status: domain.UserInactive,
	})
	svc := NewAuthService(users, testSecret, time.Hour)

	if _, _, err := svc.Login(context.Background(), "erin@example.com", "hunter2pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pwd"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}
