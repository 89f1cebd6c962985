package storage

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"cashflow/internal/core"
	"cashflow/internal/log"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "db", "cashflow.db"), log.New(log.Config{Output: io.Discard}))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_WriteAndRead(t *testing.T) {
	repo := newTestRepository(t)
	repo.now = func() time.Time { return time.Date(2022, 6, 1, 8, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	half, _ := core.ParseMoney("-12500.5")
	records := []core.Record{
		{ID: "b", UserID: "u", Date: core.NewDate(2022, 5, 3), Description: "Roti", Value: half, Qty: core.NewMoney(2), Category: "Makan", Type: "Pengeluaran"},
		{ID: "a", UserID: "u", Date: core.NewDate(2022, 5, 1), Description: "Kopi", Value: core.NewMoney(-20000), Qty: core.NewMoney(1), Category: "Minum", Type: "Pengeluaran"},
	}
	if err := repo.WriteRecords(ctx, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := repo.ReadRecords(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected order or size: %+v", got)
	}
	if !got[0].Value.Equal(half) || !got[0].Date.Equal(core.NewDate(2022, 5, 3).Time) {
		t.Errorf("first record = %+v", got[0])
	}

	run, ok, err := repo.LastRun(ctx)
	if err != nil || !ok {
		t.Fatalf("last run: ok=%v err=%v", ok, err)
	}
	if run.Records != 2 || run.CompletedAt != "2022-06-01T08:00:00Z" {
		t.Errorf("run = %+v", run)
	}
}

func TestSQLiteRepository_WriteReplaces(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := []core.Record{
		{ID: "a", Date: core.NewDate(2022, 5, 1), Value: core.NewMoney(1), Category: "x", Type: "y"},
		{ID: "b", Date: core.NewDate(2022, 5, 2), Value: core.NewMoney(2), Category: "x", Type: "y"},
	}
	second := []core.Record{
		{ID: "c", Date: core.NewDate(2022, 5, 3), Value: core.NewMoney(3), Category: "x", Type: "y"},
	}
	if err := repo.WriteRecords(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.WriteRecords(ctx, second); err != nil {
		t.Fatal(err)
	}
	got, err := repo.ReadRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("snapshot not replaced: %+v", got)
	}
}

func TestSQLiteRepository_LastRunEmpty(t *testing.T) {
	repo := newTestRepository(t)
	_, ok, err := repo.LastRun(context.Background())
	if err != nil || ok {
		t.Fatalf("expected no run, got ok=%v err=%v", ok, err)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cashflow.db")
	v1, err := RunMigrations(path)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	v2, err := RunMigrations(path)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if v1 != 2 || v2 != 2 {
		t.Errorf("versions = %d, %d; want 2", v1, v2)
	}
}
