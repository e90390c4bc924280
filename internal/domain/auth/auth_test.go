package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hrpay/internal/apperr"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if !CheckPassword(hash, "super-secret") {
		t.Fatal("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected mismatch")
	}
	if !CheckPassword("plain", "plain") || CheckPassword("plain", "plain2") {
		t.Fatal("expected legacy plaintext comparison")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	id := Identity{Username: "hr1", Role: RoleHR}
	token, err := GenerateToken("test-secret", id, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	parsed, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed != id {
		t.Fatalf("identity mismatch: %+v", parsed)
	}
	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected signature mismatch")
	}
}

func TestParseRole(t *testing.T) {
	for raw, want := range map[string]Role{"A": RoleAdmin, "hr": RoleHR, "Employee": RoleEmployee} {
		got, err := ParseRole(raw)
		if err != nil || got != want {
			t.Fatalf("ParseRole(%q): expected %s, got %s (%v)", raw, want, got, err)
		}
	}
	if _, err := ParseRole("manager"); err == nil {
		t.Fatal("expected unknown role error")
	}
}

func TestPermissions(t *testing.T) {
	if err := Require(Identity{Role: RoleHR}, PermPromotionWrite); err != nil {
		t.Fatalf("expected HR to propose promotions, got %v", err)
	}
	if err := Require(Identity{Role: RoleEmployee}, PermPromotionWrite); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if !HasPermission(RoleAdmin, PermEmployeesCreate) || HasPermission(RoleHR, PermEmployeesCreate) {
		t.Fatal("only admins create employees")
	}
}

func TestServiceAuthenticate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ValidLogins.csv")
	if err := os.WriteFile(path, []byte("username,password,role\nlegacy,pw,Employee\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	svc := NewService(NewCSVStore(path))
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx, "legacy", "pw", RoleEmployee); err != nil {
		t.Fatalf("expected legacy login, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "legacy", "pw", RoleAdmin); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected role mismatch rejection, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost", "pw", RoleEmployee); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected unknown user rejection, got %v", err)
	}

	if err := svc.Register(ctx, "admin1", "s3cret", RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.Register(ctx, "admin1", "again", RoleAdmin); !apperr.IsDuplicate(err) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	id, err := svc.Authenticate(ctx, "admin1", "s3cret", RoleAdmin)
	if err != nil || id.Role != RoleAdmin {
		t.Fatalf("expected admin login, got %+v (%v)", id, err)
	}
}

func TestServiceUnregister(t *testing.T) {
	svc := NewService(NewCSVStore(filepath.Join(t.TempDir(), "ValidLogins.csv")))
	ctx := context.Background()
	for _, name := range []string{"keep", "drop"} {
		if err := svc.Register(ctx, name, "pw", RoleEmployee); err != nil {
			t.Fatalf("register %s failed: %v", name, err)
		}
	}

	if err := svc.Unregister(ctx, "drop"); err != nil {
		t.Fatalf("unregister failed: %v", err)
	}
	if ok, _ := svc.Exists(ctx, "drop"); ok {
		t.Fatal("expected drop to be gone")
	}
	if ok, _ := svc.Exists(ctx, "keep"); !ok {
		t.Fatal("expected keep to remain")
	}
	if err := svc.Unregister(ctx, "ghost"); err != nil {
		t.Fatalf("expected missing login to be a no-op, got %v", err)
	}
}
