package domain

import (
	"context"
	"errors"
	"fmt"
)

// Tx exposes the mutation operations a persistence implementation must
// support within an atomic scope. Identity assignment and timestamp
// stamping happen inside the transaction; patches merge by field
// presence. Transactions have no delete operation by design.
type Tx interface {
	CreateVendor(VendorInsert) (Vendor, error)
	UpdateVendor(id int64, patch VendorPatch) (Vendor, error)
	DeleteVendor(id int64) error
	CreateCustomer(CustomerInsert) (Customer, error)
	UpdateCustomer(id int64, patch CustomerPatch) (Customer, error)
	DeleteCustomer(id int64) error
	CreateInventoryItem(InventoryItemInsert) (InventoryItem, error)
	UpdateInventoryItem(id int64, patch InventoryItemPatch) (InventoryItem, error)
	DeleteInventoryItem(id int64) error
	CreateCrate(CrateInsert) (Crate, error)
	UpdateCrate(id int64, patch CratePatch) (Crate, error)
	DeleteCrate(id int64) error
	CreateColdStorageUnit(ColdStorageUnitInsert) (ColdStorageUnit, error)
	UpdateColdStorageUnit(id int64, patch ColdStorageUnitPatch) (ColdStorageUnit, error)
	DeleteColdStorageUnit(id int64) error
	CreateTransaction(TransactionInsert) (Transaction, error)
	UpdateTransaction(id int64, patch TransactionPatch) (Transaction, error)
	CreateHousekeepingTask(HousekeepingTaskInsert) (HousekeepingTask, error)
	UpdateHousekeepingTask(id int64, patch HousekeepingTaskPatch) (HousekeepingTask, error)
	DeleteHousekeepingTask(id int64) error
}

// PersistentStore is a minimal abstraction over storage backends. Reads
// come from committed state; mutations run through RunInTx so snapshot
// backends can persist after each successful commit. Listings are in
// insertion order (ascending identity).
type PersistentStore interface {
	RunInTx(ctx context.Context, fn func(Tx) error) error

	GetVendor(id int64) (Vendor, bool)
	ListVendors() []Vendor
	GetCustomer(id int64) (Customer, bool)
	ListCustomers() []Customer
	GetInventoryItem(id int64) (InventoryItem, bool)
	ListInventoryItems() []InventoryItem
	ListInventoryItemsByCategory(category string) []InventoryItem
	GetCrate(id int64) (Crate, bool)
	ListCrates() []Crate
	ListCratesByStatus(status string) []Crate
	GetColdStorageUnit(id int64) (ColdStorageUnit, bool)
	ListColdStorageUnits() []ColdStorageUnit
	GetTransaction(id int64) (Transaction, bool)
	ListTransactions() []Transaction
	ListTransactionsByVendor(vendorID int64) []Transaction
	GetHousekeepingTask(id int64) (HousekeepingTask, bool)
	ListHousekeepingTasks() []HousekeepingTask
	ListHousekeepingTasksByStatus(status string) []HousekeepingTask
}

// NotFoundError reports an absent identity. It is an expected outcome,
// not a system fault; callers translate it at the response boundary.
type NotFoundError struct {
	Entity EntityType
	ID     int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
