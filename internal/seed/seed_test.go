package seed

import (
	"context"
	"testing"

	"marketcore/internal/core"
	"marketcore/internal/infra/persistence/memory"
)

func TestApplyLoadsSampleDataset(t *testing.T) {
	svc := core.NewService(memory.NewStore())
	ctx := context.Background()

	if err := Apply(ctx, svc); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	vendors := svc.ListVendors(ctx)
	if len(vendors) != 3 {
		t.Fatalf("expected 3 vendors, got %d", len(vendors))
	}
	if vendors[0].Name != "Raj Singh Vegetables" || vendors[0].ID != 1 {
		t.Fatalf("unexpected first vendor: %+v", vendors[0])
	}

	if got := len(svc.ListInventoryItems(ctx, "")); got != 7 {
		t.Fatalf("expected 7 inventory items, got %d", got)
	}
	if got := len(svc.ListInventoryItems(ctx, "vegetables")); got != 3 {
		t.Fatalf("expected 3 vegetable items, got %d", got)
	}
	if got := len(svc.ListCrates(ctx, "")); got != 3 {
		t.Fatalf("expected 3 crates, got %d", got)
	}
	if got := len(svc.ListColdStorageUnits(ctx)); got != 2 {
		t.Fatalf("expected 2 cold storage units, got %d", got)
	}

	vendorID := int64(2)
	txns := svc.ListTransactions(ctx, &vendorID)
	if len(txns) != 1 || txns[0].TransactionID != "TXN001244" {
		t.Fatalf("unexpected vendor transactions: %+v", txns)
	}

	if got := len(svc.ListHousekeepingTasks(ctx, "pending")); got != 1 {
		t.Fatalf("expected 1 pending task, got %d", got)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	svc := core.NewService(memory.NewStore())
	ctx := context.Background()

	if err := Apply(ctx, svc); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if err := Apply(ctx, svc); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if got := len(svc.ListVendors(ctx)); got != 3 {
		t.Fatalf("expected seeding to be skipped, got %d vendors", got)
	}
}
