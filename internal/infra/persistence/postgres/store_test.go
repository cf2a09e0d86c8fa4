package postgres

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"marketcore/pkg/domain"

	_ "modernc.org/sqlite"
)

// openStub backs the postgres store with a file-based SQLite database.
// The snapshot SQL sticks to the syntax both engines accept, so the
// full load/persist path runs against a real database/sql driver.
func openStub(t *testing.T) func() {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pg-stub.db")
	return OverrideSQLOpen(func(_, _ string) (*sql.DB, error) {
		return sql.Open("sqlite", path)
	})
}

func TestRunInTxPersistsSnapshot(t *testing.T) {
	restore := openStub(t)
	defer restore()
	ctx := context.Background()

	store, err := NewStore("ignored")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.RunInTx(ctx, func(tx domain.Tx) error {
		_, err := tx.CreateColdStorageUnit(domain.ColdStorageUnitInsert{
			UnitName: "Unit A", Temperature: "2.5", Humidity: 85, Capacity: "1000",
		})
		return err
	}); err != nil {
		t.Fatalf("RunInTx: %v", err)
	}
	if err := store.DB().Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore("ignored")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	units := reopened.ListColdStorageUnits()
	if len(units) != 1 || units[0].UnitName != "Unit A" {
		t.Fatalf("expected rehydrated unit, got %v", units)
	}
	if units[0].Status != domain.ColdStorageStatusOptimal || units[0].CurrentLoad != "0" {
		t.Fatalf("defaults lost through snapshot: %+v", units[0])
	}
}

func TestFailedTxLeavesStoredStateUntouched(t *testing.T) {
	restore := openStub(t)
	defer restore()
	ctx := context.Background()

	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	boom := errors.New("boom")
	if err := store.RunInTx(ctx, func(tx domain.Tx) error {
		if _, err := tx.CreateCrate(domain.CrateInsert{CrateNumber: "CR-001", Capacity: "50"}); err != nil {
			return err
		}
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected propagated error, got %v", err)
	}
	if got := store.ListCrates(); len(got) != 0 {
		t.Fatalf("rolled-back crate visible: %v", got)
	}
	if err := store.DB().Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore("")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.ListCrates(); len(got) != 0 {
		t.Fatalf("failed transaction persisted: %v", got)
	}
}

func TestNewStoreOpenError(t *testing.T) {
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) {
		return nil, errors.New("refused")
	})
	defer restore()

	if _, err := NewStore(""); err == nil {
		t.Fatalf("expected open error")
	}
}
