package credit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	contractx "github.com/caio126cf/bank-agent/agent/contract"
	storex "github.com/caio126cf/bank-agent/agent/store"
)

type fixture struct {
	engine   *Engine
	accounts *storex.AccountTable
	audit    *storex.AuditLog
}

func newFixture(t *testing.T, accountsCSV, bandsCSV string) fixture {
	t.Helper()
	dir := t.TempDir()

	accountsPath := filepath.Join(dir, "accounts.csv")
	if err := os.WriteFile(accountsPath, []byte(accountsCSV), 0o644); err != nil {
		t.Fatalf("write accounts: %v", err)
	}
	bandsPath := filepath.Join(dir, "score_bands.csv")
	if err := os.WriteFile(bandsPath, []byte(bandsCSV), 0o644); err != nil {
		t.Fatalf("write bands: %v", err)
	}

	accounts, err := storex.NewAccountTable(accountsPath)
	if err != nil {
		t.Fatalf("NewAccountTable() error = %v", err)
	}
	bands, err := storex.NewBandTable(bandsPath)
	if err != nil {
		t.Fatalf("NewBandTable() error = %v", err)
	}
	audit, err := storex.NewAuditLog(filepath.Join(dir, "limit_requests.csv"))
	if err != nil {
		t.Fatalf("NewAuditLog() error = %v", err)
	}

	engine, err := New(accounts, bands, audit)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	engine.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return fixture{engine: engine, accounts: accounts, audit: audit}
}

const defaultAccounts = "customer_id,birth_date,name,current_limit,score\n" +
	"123,1990-05-14,Alice,1000.00,450\n" +
	"456,1985-11-02,Bob,3000.00,700\n"

const defaultBands = "min_score,max_score,max_allowed_limit\n" +
	"400,600,2000.00\n" +
	"601,800,5000.00\n"

func TestEvaluateLimitIncreaseRejected(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, defaultAccounts, defaultBands)
	result, err := fx.engine.EvaluateLimitIncrease(context.Background(), contractx.LimitIncreaseRequest{
		CustomerID:     "123",
		RequestedLimit: decimal.NewFromInt(2500),
	})
	if err != nil {
		t.Fatalf("EvaluateLimitIncrease() error = %v", err)
	}
	if !result.Success {
		t.Fatal("expected success flag")
	}
	if result.Status != storex.DecisionRejected {
		t.Fatalf("status = %s, want rejected", result.Status)
	}
	if !result.MaxAllowedForScore.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("ceiling = %s, want 2000", result.MaxAllowedForScore)
	}
	if result.ClosingMessage == "" {
		t.Fatal("rejected result must carry a closing message")
	}

	// Account table unchanged.
	rec, err := fx.accounts.Find("123")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if !rec.CurrentLimit.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("limit mutated on rejection: %s", rec.CurrentLimit)
	}

	entries, err := fx.audit.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Decision != storex.DecisionRejected {
		t.Fatalf("unexpected audit trail: %+v", entries)
	}
}

func TestEvaluateLimitIncreaseApproved(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, defaultAccounts, defaultBands)
	result, err := fx.engine.EvaluateLimitIncrease(context.Background(), contractx.LimitIncreaseRequest{
		CustomerID:     "123",
		RequestedLimit: decimal.NewFromInt(1500),
	})
	if err != nil {
		t.Fatalf("EvaluateLimitIncrease() error = %v", err)
	}
	if result.Status != storex.DecisionApproved {
		t.Fatalf("status = %s, want approved", result.Status)
	}
	// Result carries the pre-request limit.
	if !result.CurrentLimit.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("pre-request limit = %s, want 1000", result.CurrentLimit)
	}

	rec, err := fx.accounts.Find("123")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if !rec.CurrentLimit.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("limit = %s, want 1500", rec.CurrentLimit)
	}

	// Other rows untouched.
	other, _ := fx.accounts.Find("456")
	if !other.CurrentLimit.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("unrelated row mutated: %s", other.CurrentLimit)
	}

	entries, _ := fx.audit.Entries()
	if len(entries) != 1 || entries[0].Decision != storex.DecisionApproved {
		t.Fatalf("unexpected audit trail: %+v", entries)
	}
	if !entries[0].CurrentLimit.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("audit must record the pre-decision limit, got %s", entries[0].CurrentLimit)
	}
}

func TestEvaluateLimitIncreaseBoundaryApproves(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, defaultAccounts, defaultBands)
	result, err := fx.engine.EvaluateLimitIncrease(context.Background(), contractx.LimitIncreaseRequest{
		CustomerID:     "123",
		RequestedLimit: decimal.NewFromInt(2000),
	})
	if err != nil {
		t.Fatalf("EvaluateLimitIncrease() error = %v", err)
	}
	if result.Status != storex.DecisionApproved {
		t.Fatalf("request equal to ceiling must approve, got %s", result.Status)
	}
}

func TestEvaluateLimitIncreaseRejectedTwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, defaultAccounts, defaultBands)
	req := contractx.LimitIncreaseRequest{CustomerID: "123", RequestedLimit: decimal.NewFromInt(9999)}
	for i := 0; i < 2; i++ {
		if _, err := fx.engine.EvaluateLimitIncrease(context.Background(), req); err != nil {
			t.Fatalf("EvaluateLimitIncrease() error = %v", err)
		}
		rec, _ := fx.accounts.Find("123")
		if !rec.CurrentLimit.Equal(decimal.NewFromInt(1000)) {
			t.Fatalf("limit changed on rejection: %s", rec.CurrentLimit)
		}
	}
	entries, _ := fx.audit.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit rows, got %d", len(entries))
	}
}

func TestEvaluateLimitIncreaseUnknownCustomer(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, defaultAccounts, defaultBands)
	_, err := fx.engine.EvaluateLimitIncrease(context.Background(), contractx.LimitIncreaseRequest{
		CustomerID:     "999",
		RequestedLimit: decimal.NewFromInt(100),
	})
	if !errors.Is(err, storex.ErrAccountNotFound) {
		t.Fatalf("error = %v, want ErrAccountNotFound", err)
	}

	// No audit row is written for an unknown customer.
	if _, err := fx.audit.Entries(); !errors.Is(err, storex.ErrStoreUnavailable) {
		t.Fatalf("audit file should not exist, got %v", err)
	}
}

func TestEvaluateLimitIncreaseNoBandForScore(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, defaultAccounts, "min_score,max_score,max_allowed_limit\n800,1000,10000.00\n")
	_, err := fx.engine.EvaluateLimitIncrease(context.Background(), contractx.LimitIncreaseRequest{
		CustomerID:     "123",
		RequestedLimit: decimal.NewFromInt(100),
	})
	if !errors.Is(err, storex.ErrNoBandForScore) {
		t.Fatalf("error = %v, want ErrNoBandForScore", err)
	}
}

func TestEvaluateLimitIncreaseStoreUnavailable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	accounts, _ := storex.NewAccountTable(filepath.Join(dir, "missing.csv"))
	bands, _ := storex.NewBandTable(filepath.Join(dir, "bands.csv"))
	audit, _ := storex.NewAuditLog(filepath.Join(dir, "audit.csv"))
	engine, _ := New(accounts, bands, audit)

	_, err := engine.EvaluateLimitIncrease(context.Background(), contractx.LimitIncreaseRequest{
		CustomerID:     "123",
		RequestedLimit: decimal.NewFromInt(100),
	})
	if !errors.Is(err, storex.ErrStoreUnavailable) {
		t.Fatalf("error = %v, want ErrStoreUnavailable", err)
	}
}
