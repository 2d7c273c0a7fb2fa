package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "0123456789abcdef0123456789abcdef"
	cfg.UserJWT.ExpireHours = 1
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8}
	return NewUserAuthService(cfg, repository.NewUserRepository(db)), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, token, expiresAt, err := svc.Register(RegisterInput{
		Username: "new.user",
		Email:    " New@Example.COM ",
		Password: "long-enough-password",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "new@example.com" {
		t.Fatalf("email not normalized: %s", user.Email)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("register should issue token")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "new.user" {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	if _, _, _, err := svc.Login("new.user", "wrong-password!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("no-such-user", "whatever-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("missing user want ErrInvalidCredentials, got %v", err)
	}
	logged, _, _, err := svc.Login("new.user", "long-enough-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.LastLoginAt == nil {
		t.Fatalf("last_login_at should be set")
	}
}

func TestRegisterRejectsInvalidAndDuplicate(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Username: "包含中文", Email: "a@b.com", Password: "long-enough-pass"}); !errors.Is(err, ErrUsernameInvalid) {
		t.Fatalf("want ErrUsernameInvalid, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Username: "ok", Email: "not-an-email", Password: "long-enough-pass"}); !errors.Is(err, ErrEmailInvalid) {
		t.Fatalf("want ErrEmailInvalid, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Username: "ok", Email: "a@b.com", Password: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword, got %v", err)
	}

	if _, _, _, err := svc.Register(RegisterInput{Username: "taken", Email: "taken@b.com", Password: "long-enough-pass"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Username: "taken", Email: "other@b.com", Password: "long-enough-pass"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("want ErrUsernameExists, got %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Username: "other", Email: "Taken@B.com", Password: "long-enough-pass"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists, got %v", err)
	}
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register(RegisterInput{Username: "disabled", Email: "d@b.com", Password: "long-enough-pass"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", "disabled").Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	if _, _, _, err := svc.Login("disabled", "long-enough-pass"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("want ErrUserDisabled, got %v", err)
	}
}

func TestChangePasswordRevokesOldTokens(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register(RegisterInput{Username: "rotate", Email: "r@b.com", Password: "long-enough-pass"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong-old-pass", "next-long-enough"); !errors.Is(err, ErrPasswordIncorrect) {
		t.Fatalf("want ErrPasswordIncorrect, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "long-enough-pass", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "long-enough-pass", "next-long-enough"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	var got models.User
	if err := db.First(&got, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if got.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", user.TokenVersion+1, got.TokenVersion)
	}
	if got.TokenInvalidBefore == nil {
		t.Fatalf("token_invalid_before should be set")
	}

	if _, _, _, err := svc.Login("rotate", "long-enough-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should fail, got %v", err)
	}
	if _, _, _, err := svc.Login("rotate", "next-long-enough"); err != nil {
		t.Fatalf("new password login failed: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register(RegisterInput{Username: "profile", Email: "p@b.com", Password: "long-enough-pass"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Register(RegisterInput{Username: "occupant", Email: "used@b.com", Password: "long-enough-pass"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	first := "  张 "
	updated, err := svc.UpdateProfile(user.ID, ProfileInput{FirstName: &first})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.FirstName != "张" {
		t.Fatalf("first name not trimmed: %q", updated.FirstName)
	}
	if updated.Email != "p@b.com" {
		t.Fatalf("email should be unchanged, got %s", updated.Email)
	}

	usedEmail := "used@b.com"
	if _, err := svc.UpdateProfile(user.ID, ProfileInput{Email: &usedEmail}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists, got %v", err)
	}

	badEmail := "not-an-email"
	if _, err := svc.UpdateProfile(user.ID, ProfileInput{Email: &badEmail}); !errors.Is(err, ErrEmailInvalid) {
		t.Fatalf("want ErrEmailInvalid, got %v", err)
	}

	if _, err := svc.UpdateProfile(99999, ProfileInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
