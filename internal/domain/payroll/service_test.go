package payroll

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/employee"
	"hrpay/internal/domain/scale"
)

type engineFixture struct {
	svc      *Service
	claims   *ClaimStore
	payslips *PayslipStore
	statuses *employee.CSVStatusStore
}

func newEngineFixture(t *testing.T) engineFixture {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	repo := employee.NewRepository(employee.NewCSVStore(filepath.Join(dir, "EmployeeInfo.csv")))
	if err := repo.ReplaceAll(ctx, []employee.Employee{
		{ID: 10001, Username: "salaried", Name: "Sal Aried", JobTitle: "Officer", ScalePoint: 1},
		{ID: 10002, Username: "hourly", Name: "Our Ly", JobTitle: "Tutor", ScalePoint: 1},
		{ID: 10003, Username: "nostatus", Name: "No Status", JobTitle: "Officer", ScalePoint: 1},
		{ID: 10004, Username: "lost", Name: "Lost Title", JobTitle: "Astronaut", ScalePoint: 1},
	}); err != nil {
		t.Fatalf("seed employees: %v", err)
	}
	statuses := employee.NewCSVStatusStore(filepath.Join(dir, "EmployeeStatus.csv"))
	for username, kind := range map[string]employee.Kind{
		"salaried": employee.KindFullTime,
		"hourly":   employee.KindPartTime,
		"lost":     employee.KindFullTime,
	} {
		if err := statuses.Set(ctx, username, kind); err != nil {
			t.Fatalf("seed status: %v", err)
		}
	}
	table := scale.NewTable([]scale.Entry{
		{JobTitle: "Officer", ScalePoint: 1, AnnualSalary: decimal.NewFromInt(42000)},
		{JobTitle: "Tutor", ScalePoint: 1, AnnualSalary: decimal.NewFromInt(41600)},
	})
	claims := NewClaimStore(filepath.Join(dir, "PayClaims.csv"))
	payslips := NewPayslipStore(filepath.Join(dir, "PaySlips.csv"))
	return engineFixture{
		svc:      NewService(repo, statuses, table, claims, payslips),
		claims:   claims,
		payslips: payslips,
		statuses: statuses,
	}
}

func TestGenerateSalariedPayslip(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	date := time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)

	report, err := f.svc.Generate(ctx, date)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(report.Written) != 1 || report.Written[0].EmployeeID != 10001 {
		t.Fatalf("expected one salaried payslip, got %+v", report.Written)
	}
	slip := report.Written[0]
	if slip.Period != "03/2025" || slip.Net.StringFixed(2) != "2359.00" {
		t.Fatalf("unexpected payslip %+v", slip)
	}
	if len(report.NoClaim) != 1 || report.NoClaim[0] != "hourly" {
		t.Fatalf("expected hourly employee without claim, got %v", report.NoClaim)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Reason != SkipNoStatus {
		t.Fatalf("expected employee without status skipped, got %v", report.Skipped)
	}
	if len(report.Failed) != 1 || report.Failed[0].Username != "lost" {
		t.Fatalf("expected unknown title to fail, got %v", report.Failed)
	}

	stored, err := f.svc.ForEmployee(ctx, 10001, Period{Year: 2025, Month: time.March})
	if err != nil || len(stored) != 1 {
		t.Fatalf("expected stored payslip, got %v (%v)", stored, err)
	}
	if !stored[0].PRSI.Equal(decimal.RequireFromString("143.5")) {
		t.Fatalf("expected prsi 143.50, got %s", stored[0].PRSI)
	}
}

func TestGenerateIsIdempotentPerPeriod(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	date := time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)

	if _, err := f.svc.Generate(ctx, date); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	report, err := f.svc.Generate(ctx, date)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(report.Written) != 0 {
		t.Fatalf("expected nothing written twice, got %+v", report.Written)
	}
	all, _ := f.payslips.List(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 payslip row, got %d", len(all))
	}

	next, err := f.svc.Generate(ctx, date.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("next month: %v", err)
	}
	if len(next.Written) != 1 || next.Written[0].Period != "04/2025" {
		t.Fatalf("expected April payslip, got %+v", next.Written)
	}
}

func TestGenerateHourlyUsesCurrentMonthClaim(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	claim := Claim{
		Username:   "hourly",
		Date:       time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC),
		Hours:      decimal.NewFromInt(40),
		Rate:       decimal.NewFromInt(20),
		Total:      decimal.NewFromInt(800),
		ScalePoint: 1,
	}
	if err := f.claims.Add(ctx, claim); err != nil {
		t.Fatalf("add claim: %v", err)
	}

	report, err := f.svc.Generate(ctx, time.Date(2025, time.April, 25, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(report.NoClaim) != 1 {
		t.Fatalf("expected stale claim to count as missing, got %v", report.NoClaim)
	}

	report, err = f.svc.Generate(ctx, time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var hourly *Payslip
	for i := range report.Written {
		if report.Written[i].EmployeeID == 10002 {
			hourly = &report.Written[i]
		}
	}
	if hourly == nil {
		t.Fatalf("expected hourly payslip, got %+v", report.Written)
	}
	if hourly.Gross.StringFixed(2) != "800.00" || hourly.IncomeTax.StringFixed(2) != "160.00" {
		t.Fatalf("unexpected hourly payslip %+v", hourly)
	}
}

func TestFindMissingPayslip(t *testing.T) {
	f := newEngineFixture(t)
	if _, err := f.svc.Find(context.Background(), 10001, Period{Year: 2025, Month: time.May}); err == nil {
		t.Fatal("expected not found error")
	}
}
