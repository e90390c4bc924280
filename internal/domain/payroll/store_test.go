package payroll

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPayslipStoreAppendWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PaySlips.csv")
	store := NewPayslipStore(path)
	ctx := context.Background()

	first := samplePayslip()
	second := samplePayslip()
	second.Period = "04/2025"
	if err := store.Append(ctx, first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, second); err != nil {
		t.Fatalf("append: %v", err)
	}

	raw, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "id,name,date") {
		t.Fatalf("unexpected file contents:\n%s", raw)
	}
	if lines[1] != "10001,Aoife Doyle,03/2025,Officer,1,3500.00,700.00,143.50,17.50,280.00,2359.00" {
		t.Fatalf("unexpected row %q", lines[1])
	}

	slips, err := store.ForEmployee(ctx, 10001, Period{Year: 2025, Month: time.April})
	if err != nil || len(slips) != 1 {
		t.Fatalf("expected one April payslip, got %v (%v)", slips, err)
	}
}

func TestPayslipStoreReadsLegacyLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PaySlips.csv")
	content := "id,name,date,jobTitle,scalePoint,grossPay,incomeTax,prsi,usc,unionFee,netPay\n" +
		"10001,Aoife Doyle,3/2025,Officer,1,3500.00,700.00,143.50,17.50,280.00,2359.00\n" +
		"broken,row\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ids, err := NewPayslipStore(path).IssuedIDs(context.Background(), Period{Year: 2025, Month: time.March})
	if err != nil {
		t.Fatalf("issued ids: %v", err)
	}
	if !ids[10001] {
		t.Fatalf("expected legacy row matched, got %v", ids)
	}
}

func TestClaimStoreLatest(t *testing.T) {
	store := NewClaimStore(filepath.Join(t.TempDir(), "PayClaims.csv"))
	ctx := context.Background()
	for _, c := range []Claim{
		{Username: "hourly", Date: time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)},
		{Username: "hourly", Date: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)},
		{Username: "other", Date: time.Date(2025, time.April, 3, 0, 0, 0, 0, time.UTC)},
	} {
		if err := store.Add(ctx, c); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	latest, err := store.Latest(ctx, "hourly")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Date.Month() != time.March {
		t.Fatalf("expected March claim, got %s", latest.Date)
	}
}
