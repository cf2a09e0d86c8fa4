package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"marketcore/pkg/domain"
)

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.db")
	ctx := context.Background()

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.RunInTx(ctx, func(tx domain.Tx) error {
		_, err := tx.CreateVendor(domain.VendorInsert{
			Name: "Ramesh Kumar", ShopNumber: "A-15", ContactPerson: "Ramesh Kumar",
			Phone: "+91 9876543210", Category: domain.CategoryVegetables,
		})
		return err
	}); err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	if err := store.DB().Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	vendors := reopened.ListVendors()
	if len(vendors) != 1 || vendors[0].Name != "Ramesh Kumar" {
		t.Fatalf("expected rehydrated vendor, got %v", vendors)
	}
	if vendors[0].Status != domain.VendorStatusActive || vendors[0].DailySales != "0" {
		t.Fatalf("defaults lost through snapshot: %+v", vendors[0])
	}
	if err := reopened.RunInTx(ctx, func(tx domain.Tx) error {
		v, err := tx.CreateVendor(domain.VendorInsert{
			Name: "Suresh", ShopNumber: "B-08", ContactPerson: "Suresh",
			Phone: "111", Category: domain.CategoryFruits,
		})
		if err != nil {
			return err
		}
		if v.ID != 2 {
			t.Fatalf("sequence should continue after reopen, got %d", v.ID)
		}
		return nil
	}); err != nil {
		t.Fatalf("create after reopen: %v", err)
	}
}

func TestFailedTransactionDoesNotPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.db")
	ctx := context.Background()

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	err = store.RunInTx(ctx, func(tx domain.Tx) error {
		_, err := tx.UpdateVendor(42, domain.VendorPatch{})
		return err
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if err := store.DB().Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.ListVendors(); len(got) != 0 {
		t.Fatalf("failed transaction leaked state: %v", got)
	}
}

func TestDefaultPathFallback(t *testing.T) {
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if store.Path() != "marketcore.db" {
		t.Fatalf("unexpected default path %q", store.Path())
	}
}
