package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/nabinkhair42/pocket-due/internal/auth"
	"github.com/nabinkhair42/pocket-due/internal/models/dto"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	store := newTestStore(t)
	tokens := auth.NewTokenManager("test-secret", "pocketdue-test", time.Hour)
	return NewAuthService(store, tokens)
}

func register(t *testing.T, svc *AuthService, email string) *dto.AuthResponse {
	t.Helper()
	result, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: email, Password: "secret123", Name: "Nabin",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return result
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	result := register(t, svc, "nabin@example.com")
	if result.Token == "" {
		t.Error("register must issue a token")
	}
	if result.User.PasswordHash == "secret123" {
		t.Error("password must be hashed, not stored verbatim")
	}

	t.Run("login with correct password", func(t *testing.T) {
		logged, err := svc.Login(ctx, dto.LoginRequest{Email: "nabin@example.com", Password: "secret123"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if logged.User.ID != result.User.ID {
			t.Errorf("login returned wrong user: %s", logged.User.ID)
		}
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, dto.LoginRequest{Email: "nabin@example.com", Password: "wrong-pass"})
		if statusOf(t, err) != http.StatusUnauthorized {
			t.Error("wrong password must be Unauthorized")
		}
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
		if statusOf(t, err) != http.StatusUnauthorized {
			t.Error("unknown email must be Unauthorized")
		}
	})
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	register(t, svc, "nabin@example.com")

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email: "nabin@example.com", Password: "secret123", Name: "Someone Else",
	})
	if statusOf(t, err) != http.StatusBadRequest {
		t.Error("duplicate email must be rejected with 400")
	}
}

func TestEmailIsCaseInsensitive(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	register(t, svc, "Nabin@Example.COM")

	t.Run("duplicate differing only in case", func(t *testing.T) {
		_, err := svc.Register(ctx, dto.RegisterRequest{
			Email: "nabin@example.com", Password: "secret123", Name: "Nabin",
		})
		if statusOf(t, err) != http.StatusBadRequest {
			t.Error("case-variant duplicate email must conflict")
		}
	})

	t.Run("login with different casing", func(t *testing.T) {
		if _, err := svc.Login(ctx, dto.LoginRequest{Email: "NABIN@example.com", Password: "secret123"}); err != nil {
			t.Errorf("case-variant login failed: %v", err)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	result := register(t, svc, "nabin@example.com")

	name := "Nabin Khair"
	user, err := svc.UpdateProfile(ctx, result.User.ID, dto.UpdateProfileRequest{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if user.Name != "Nabin Khair" {
		t.Errorf("name = %q", user.Name)
	}
	if user.Email != "nabin@example.com" {
		t.Errorf("email changed unexpectedly: %q", user.Email)
	}

	t.Run("email collision", func(t *testing.T) {
		register(t, svc, "taken@example.com")
		email := "taken@example.com"
		_, err := svc.UpdateProfile(ctx, result.User.ID, dto.UpdateProfileRequest{Email: &email})
		if statusOf(t, err) != http.StatusBadRequest {
			t.Error("profile update to a taken email must fail with 400")
		}
	})

	t.Run("vanished user", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, "missing-id", dto.UpdateProfileRequest{Name: &name})
		if statusOf(t, err) != http.StatusNotFound {
			t.Error("missing user must be NotFound")
		}
	})
}

func TestChangePassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	result := register(t, svc, "nabin@example.com")

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, result.User.ID, "wrong-pass", "newsecret1")
		if statusOf(t, err) != http.StatusBadRequest {
			t.Error("wrong current password must be BadRequest")
		}
	})

	t.Run("successful change", func(t *testing.T) {
		if err := svc.ChangePassword(ctx, result.User.ID, "secret123", "newsecret1"); err != nil {
			t.Fatalf("ChangePassword failed: %v", err)
		}
		if _, err := svc.Login(ctx, dto.LoginRequest{Email: "nabin@example.com", Password: "newsecret1"}); err != nil {
			t.Errorf("login with new password failed: %v", err)
		}
		_, err := svc.Login(ctx, dto.LoginRequest{Email: "nabin@example.com", Password: "secret123"})
		if statusOf(t, err) != http.StatusUnauthorized {
			t.Error("old password must no longer work")
		}
	})
}

func TestDeleteAccount(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	result := register(t, svc, "nabin@example.com")

	t.Run("wrong password", func(t *testing.T) {
		err := svc.DeleteAccount(ctx, result.User.ID, "wrong-pass")
		if statusOf(t, err) != http.StatusBadRequest {
			t.Error("wrong password must be BadRequest")
		}
	})

	t.Run("successful delete", func(t *testing.T) {
		if err := svc.DeleteAccount(ctx, result.User.ID, "secret123"); err != nil {
			t.Fatalf("DeleteAccount failed: %v", err)
		}
		_, err := svc.GetCurrentUser(ctx, result.User.ID)
		if statusOf(t, err) != http.StatusNotFound {
			t.Error("deleted user must be NotFound")
		}
	})
}
