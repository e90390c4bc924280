package db

import (
	"context"
	"path/filepath"
	"testing"

	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/employee"
	"hrpay/internal/platform/config"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := config.Config{StorageDriver: config.DriverSQLite, DataDir: t.TempDir()}
	gdb, err := Open(cfg)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer Close(gdb)
	if err := employee.Migrate(gdb); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !gdb.Migrator().HasTable("employees") {
		t.Fatal("expected employees table")
	}
}

func TestOpenRejectsCSVDriver(t *testing.T) {
	if _, err := Open(config.Config{StorageDriver: config.DriverCSV}); err == nil {
		t.Fatal("expected error for csv driver")
	}
}

func TestSeedCreatesAdminOnce(t *testing.T) {
	svc := auth.NewService(auth.NewCSVStore(filepath.Join(t.TempDir(), "ValidLogins.csv")))
	ctx := context.Background()
	if err := Seed(ctx, svc, "admin", "s3cret"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := Seed(ctx, svc, "admin", "other"); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "admin", "s3cret", auth.RoleAdmin); err != nil {
		t.Fatalf("expected seeded admin to authenticate, got %v", err)
	}
	if err := Seed(ctx, svc, "root", ""); err != nil {
		t.Fatalf("seed without password: %v", err)
	}
	if ok, _ := svc.Exists(ctx, "root"); ok {
		t.Fatal("expected no login without password")
	}
}
