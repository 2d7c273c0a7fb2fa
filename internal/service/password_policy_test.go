package service

import (
	"errors"
	"testing"

	"github.com/blogicum-next/internal/config"
)

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}

	cases := []struct {
		name     string
		password string
		wantKey  string
	}{
		{name: "ok", password: "Abcdef12", wantKey: ""},
		{name: "too short", password: "Ab1", wantKey: "error.password_too_short"},
		{name: "no upper", password: "abcdef12", wantKey: "error.password_need_upper"},
		{name: "no lower", password: "ABCDEF12", wantKey: "error.password_need_lower"},
		{name: "no number", password: "Abcdefgh", wantKey: "error.password_need_number"},
	}

	for _, item := range cases {
		err := validatePassword(policy, item.password)
		if item.wantKey == "" {
			if err != nil {
				t.Fatalf("%s: want nil got %v", item.name, err)
			}
			continue
		}
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("%s: want ErrWeakPassword got %v", item.name, err)
		}
		var perr passwordPolicyError
		if !errors.As(err, &perr) {
			t.Fatalf("%s: want passwordPolicyError got %T", item.name, err)
		}
		if perr.Key() != item.wantKey {
			t.Fatalf("%s: key want %s got %s", item.name, item.wantKey, perr.Key())
		}
	}
}

func TestValidatePasswordEmptyPolicy(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, "x"); err != nil {
		t.Fatalf("empty policy want nil got %v", err)
	}
}
