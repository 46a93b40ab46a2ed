package services

import (
	"testing"

	"github.com/shivangi00/e-business-card-generator/internal/models"
)

func TestUserServiceRegisterAndLogin(t *testing.T) {
	svc := NewUserService(t.TempDir())

	user, err := svc.Register(&models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "engine123",
		Name:     "Ada",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Error("expected generated user id")
	}
	if user.PasswordHash == "engine123" {
		t.Error("password stored in clear")
	}

	got, err := svc.Login(&models.LoginRequest{Email: "ada@example.com", Password: "engine123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("login returned wrong user: %q", got.ID)
	}

	if _, err := svc.Login(&models.LoginRequest{Email: "ada@example.com", Password: "wrong"}); err != ErrInvalidPassword {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := svc.Login(&models.LoginRequest{Email: "ghost@example.com", Password: "x"}); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserServiceRejectsDuplicateEmail(t *testing.T) {
	svc := NewUserService(t.TempDir())

	req := &models.RegisterRequest{Email: "a@example.com", Password: "secret1", Name: "A"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(req); err != ErrEmailExists {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserServicePersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	first := NewUserService(dir)
	user, err := first.Register(&models.RegisterRequest{Email: "a@example.com", Password: "secret1", Name: "A"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	second := NewUserService(dir)
	got, err := second.Login(&models.LoginRequest{Email: "a@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login after restart: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("restart lost identity: %q vs %q", got.ID, user.ID)
	}
}
