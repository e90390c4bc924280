package progression

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"hrpay/internal/domain/employee"
	"hrpay/internal/domain/scale"
)

func clerkScale() *scale.Table {
	return scale.NewTable([]scale.Entry{
		{JobTitle: "Clerk", ScalePoint: 1, AnnualSalary: decimal.NewFromInt(30000)},
		{JobTitle: "Clerk", ScalePoint: 2, AnnualSalary: decimal.NewFromInt(32000)},
		{JobTitle: "Clerk", ScalePoint: 3, AnnualSalary: decimal.NewFromInt(34000)},
	})
}

func seed(t *testing.T, records ...employee.Employee) *employee.Repository {
	t.Helper()
	repo := employee.NewRepository(employee.NewCSVStore(filepath.Join(t.TempDir(), "EmployeeInfo.csv")))
	if err := repo.ReplaceAll(context.Background(), records); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return repo
}

func TestRunAtTopIncrementsYears(t *testing.T) {
	repo := seed(t, employee.Employee{ID: 10001, Username: "adoyle", JobTitle: "Clerk", ScalePoint: 3})
	engine := NewEngine(repo, clerkScale())

	summary, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.AtTop != 1 || summary.Advanced != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	e, _ := repo.FindByID(context.Background(), 10001)
	if e.ScalePoint != 3 || e.YearsAtTopOfScale != 1 {
		t.Fatalf("expected point 3 and 1 year at top, got %d and %d", e.ScalePoint, e.YearsAtTopOfScale)
	}

	if _, err := engine.Run(context.Background()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	e, _ = repo.FindByID(context.Background(), 10001)
	if e.ScalePoint != 3 || e.YearsAtTopOfScale != 2 {
		t.Fatalf("expected point 3 and 2 years at top, got %d and %d", e.ScalePoint, e.YearsAtTopOfScale)
	}
}

func TestRunBelowMaxAdvances(t *testing.T) {
	repo := seed(t, employee.Employee{ID: 10001, Username: "adoyle", JobTitle: "Clerk", ScalePoint: 1, YearsAtTopOfScale: 4})
	if _, err := NewEngine(repo, clerkScale()).Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	e, _ := repo.FindByID(context.Background(), 10001)
	if e.ScalePoint != 2 || e.YearsAtTopOfScale != 0 {
		t.Fatalf("expected point 2 and 0 years, got %d and %d", e.ScalePoint, e.YearsAtTopOfScale)
	}
}

func TestRunSkipsUnknownTitle(t *testing.T) {
	repo := seed(t,
		employee.Employee{ID: 10001, Username: "adoyle", JobTitle: "Clerk", ScalePoint: 2},
		employee.Employee{ID: 10002, Username: "ghost", JobTitle: "Astronaut", ScalePoint: 5},
	)
	summary, err := NewEngine(repo, clerkScale()).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Advanced != 1 || len(summary.Skipped) != 1 || summary.Skipped[0].ID != 10002 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	ghost, _ := repo.FindByID(context.Background(), 10002)
	if ghost.ScalePoint != 5 || ghost.YearsAtTopOfScale != 0 {
		t.Fatalf("expected skipped employee untouched, got %+v", ghost)
	}
}

func TestRunLeavesPendingPromotion(t *testing.T) {
	repo := seed(t, employee.Employee{
		ID: 10001, Username: "adoyle", JobTitle: "Clerk", ScalePoint: 2,
		PendingPromotion: true, PreviousJobTitle: "Clerk", PreviousScalePoint: 1,
	})
	if _, err := NewEngine(repo, clerkScale()).Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	e, _ := repo.FindByID(context.Background(), 10001)
	if !e.PendingPromotion || e.PreviousScalePoint != 1 || e.ScalePoint != 3 {
		t.Fatalf("expected pending state untouched, got %+v", e)
	}
}

func TestRunEmptyStore(t *testing.T) {
	repo := seed(t)
	summary, err := NewEngine(repo, clerkScale()).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Advanced != 0 || summary.AtTop != 0 || len(summary.Skipped) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}
