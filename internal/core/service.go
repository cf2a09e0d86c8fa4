package core

import (
	"context"
	"time"

	"marketcore/pkg/domain"
)

// Service exposes transactional CRUD operations for the market schema.
// Every mutation runs through the store's transaction scope; every call
// is reported to the configured metrics recorder and tracer.
type Service struct {
	store   PersistentStore
	metrics MetricsRecorder
	tracer  Tracer
}

// ServiceOption configures optional service collaborators.
type ServiceOption func(*Service)

// WithMetrics attaches a metrics recorder to the service.
func WithMetrics(rec MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithTracer attaches a tracer to the service.
func WithTracer(tr Tracer) ServiceOption {
	return func(s *Service) {
		if tr != nil {
			s.tracer = tr
		}
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		metrics: nopMetrics{},
		tracer:  nopTracer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

func (s *Service) instrument(ctx context.Context, operation string, fn func(context.Context) error) error {
	started := time.Now()
	ctx, span := s.tracer.Start(ctx, operation)
	err := fn(ctx)
	span.End(err)
	s.metrics.Observe(ctx, operation, err == nil, time.Since(started))
	return err
}

// CreateVendor persists a new vendor.
func (s *Service) CreateVendor(ctx context.Context, ins domain.VendorInsert) (Vendor, error) {
	var created Vendor
	err := s.instrument(ctx, "create_vendor", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			created, err = tx.CreateVendor(ins)
			return err
		})
	})
	return created, err
}

// UpdateVendor applies a partial update to a vendor.
func (s *Service) UpdateVendor(ctx context.Context, id int64, patch domain.VendorPatch) (Vendor, error) {
	var updated Vendor
	err := s.instrument(ctx, "update_vendor", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			updated, err = tx.UpdateVendor(id, patch)
			return err
		})
	})
	return updated, err
}

// DeleteVendor removes a vendor record.
func (s *Service) DeleteVendor(ctx context.Context, id int64) error {
	return s.instrument(ctx, "delete_vendor", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			return tx.DeleteVendor(id)
		})
	})
}

// GetVendor retrieves a vendor by identity.
func (s *Service) GetVendor(_ context.Context, id int64) (Vendor, bool) {
	return s.store.GetVendor(id)
}

// ListVendors returns all vendors in insertion order.
func (s *Service) ListVendors(_ context.Context) []Vendor {
	return s.store.ListVendors()
}

// CreateCustomer persists a new customer.
func (s *Service) CreateCustomer(ctx context.Context, ins domain.CustomerInsert) (Customer, error) {
	var created Customer
	err := s.instrument(ctx, "create_customer", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			created, err = tx.CreateCustomer(ins)
			return err
		})
	})
	return created, err
}

// UpdateCustomer applies a partial update to a customer.
func (s *Service) UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (Customer, error) {
	var updated Customer
	err := s.instrument(ctx, "update_customer", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			updated, err = tx.UpdateCustomer(id, patch)
			return err
		})
	})
	return updated, err
}

// DeleteCustomer removes a customer record.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	return s.instrument(ctx, "delete_customer", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			return tx.DeleteCustomer(id)
		})
	})
}

// GetCustomer retrieves a customer by identity.
func (s *Service) GetCustomer(_ context.Context, id int64) (Customer, bool) {
	return s.store.GetCustomer(id)
}

// ListCustomers returns all customers in insertion order.
func (s *Service) ListCustomers(_ context.Context) []Customer {
	return s.store.ListCustomers()
}

// CreateInventoryItem persists a new inventory item.
func (s *Service) CreateInventoryItem(ctx context.Context, ins domain.InventoryItemInsert) (InventoryItem, error) {
	var created InventoryItem
	err := s.instrument(ctx, "create_inventory_item", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			created, err = tx.CreateInventoryItem(ins)
			return err
		})
	})
	return created, err
}

// UpdateInventoryItem applies a partial update to an inventory item.
func (s *Service) UpdateInventoryItem(ctx context.Context, id int64, patch domain.InventoryItemPatch) (InventoryItem, error) {
	var updated InventoryItem
	err := s.instrument(ctx, "update_inventory_item", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			updated, err = tx.UpdateInventoryItem(id, patch)
			return err
		})
	})
	return updated, err
}

// DeleteInventoryItem removes an inventory item.
func (s *Service) DeleteInventoryItem(ctx context.Context, id int64) error {
	return s.instrument(ctx, "delete_inventory_item", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			return tx.DeleteInventoryItem(id)
		})
	})
}

// GetInventoryItem retrieves an inventory item by identity.
func (s *Service) GetInventoryItem(_ context.Context, id int64) (InventoryItem, bool) {
	return s.store.GetInventoryItem(id)
}

// ListInventoryItems returns inventory items, optionally filtered by
// category when the filter is non-empty.
func (s *Service) ListInventoryItems(_ context.Context, category string) []InventoryItem {
	if category != "" {
		return s.store.ListInventoryItemsByCategory(category)
	}
	return s.store.ListInventoryItems()
}

// CreateCrate persists a new crate.
func (s *Service) CreateCrate(ctx context.Context, ins domain.CrateInsert) (Crate, error) {
	var created Crate
	err := s.instrument(ctx, "create_crate", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			created, err = tx.CreateCrate(ins)
			return err
		})
	})
	return created, err
}

// UpdateCrate applies a partial update to a crate.
func (s *Service) UpdateCrate(ctx context.Context, id int64, patch domain.CratePatch) (Crate, error) {
	var updated Crate
	err := s.instrument(ctx, "update_crate", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			updated, err = tx.UpdateCrate(id, patch)
			return err
		})
	})
	return updated, err
}

// DeleteCrate removes a crate record.
func (s *Service) DeleteCrate(ctx context.Context, id int64) error {
	return s.instrument(ctx, "delete_crate", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			return tx.DeleteCrate(id)
		})
	})
}

// GetCrate retrieves a crate by identity.
func (s *Service) GetCrate(_ context.Context, id int64) (Crate, bool) {
	return s.store.GetCrate(id)
}

// ListCrates returns crates, optionally filtered by status when the
// filter is non-empty.
func (s *Service) ListCrates(_ context.Context, status string) []Crate {
	if status != "" {
		return s.store.ListCratesByStatus(status)
	}
	return s.store.ListCrates()
}

// CreateColdStorageUnit persists a new cold storage unit.
func (s *Service) CreateColdStorageUnit(ctx context.Context, ins domain.ColdStorageUnitInsert) (ColdStorageUnit, error) {
	var created ColdStorageUnit
	err := s.instrument(ctx, "create_cold_storage_unit", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			created, err = tx.CreateColdStorageUnit(ins)
			return err
		})
	})
	return created, err
}

// UpdateColdStorageUnit applies a partial update to a cold storage unit.
func (s *Service) UpdateColdStorageUnit(ctx context.Context, id int64, patch domain.ColdStorageUnitPatch) (ColdStorageUnit, error) {
	var updated ColdStorageUnit
	err := s.instrument(ctx, "update_cold_storage_unit", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			updated, err = tx.UpdateColdStorageUnit(id, patch)
			return err
		})
	})
	return updated, err
}

// DeleteColdStorageUnit removes a cold storage unit.
func (s *Service) DeleteColdStorageUnit(ctx context.Context, id int64) error {
	return s.instrument(ctx, "delete_cold_storage_unit", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			return tx.DeleteColdStorageUnit(id)
		})
	})
}

// GetColdStorageUnit retrieves a cold storage unit by identity.
func (s *Service) GetColdStorageUnit(_ context.Context, id int64) (ColdStorageUnit, bool) {
	return s.store.GetColdStorageUnit(id)
}

// ListColdStorageUnits returns all cold storage units in insertion order.
func (s *Service) ListColdStorageUnits(_ context.Context) []ColdStorageUnit {
	return s.store.ListColdStorageUnits()
}

// CreateTransaction persists a new sale transaction.
func (s *Service) CreateTransaction(ctx context.Context, ins domain.TransactionInsert) (Transaction, error) {
	var created Transaction
	err := s.instrument(ctx, "create_transaction", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			created, err = tx.CreateTransaction(ins)
			return err
		})
	})
	return created, err
}

// UpdateTransaction applies a partial update to a transaction.
func (s *Service) UpdateTransaction(ctx context.Context, id int64, patch domain.TransactionPatch) (Transaction, error) {
	var updated Transaction
	err := s.instrument(ctx, "update_transaction", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			updated, err = tx.UpdateTransaction(id, patch)
			return err
		})
	})
	return updated, err
}

// GetTransaction retrieves a transaction by identity.
func (s *Service) GetTransaction(_ context.Context, id int64) (Transaction, bool) {
	return s.store.GetTransaction(id)
}

// ListTransactions returns transactions, optionally filtered by vendor
// when vendorID is non-nil.
func (s *Service) ListTransactions(_ context.Context, vendorID *int64) []Transaction {
	if vendorID != nil {
		return s.store.ListTransactionsByVendor(*vendorID)
	}
	return s.store.ListTransactions()
}

// CreateHousekeepingTask persists a new housekeeping task.
func (s *Service) CreateHousekeepingTask(ctx context.Context, ins domain.HousekeepingTaskInsert) (HousekeepingTask, error) {
	var created HousekeepingTask
	err := s.instrument(ctx, "create_housekeeping_task", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			created, err = tx.CreateHousekeepingTask(ins)
			return err
		})
	})
	return created, err
}

// UpdateHousekeepingTask applies a partial update to a task.
func (s *Service) UpdateHousekeepingTask(ctx context.Context, id int64, patch domain.HousekeepingTaskPatch) (HousekeepingTask, error) {
	var updated HousekeepingTask
	err := s.instrument(ctx, "update_housekeeping_task", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			var err error
			updated, err = tx.UpdateHousekeepingTask(id, patch)
			return err
		})
	})
	return updated, err
}

// DeleteHousekeepingTask removes a housekeeping task.
func (s *Service) DeleteHousekeepingTask(ctx context.Context, id int64) error {
	return s.instrument(ctx, "delete_housekeeping_task", func(ctx context.Context) error {
		return s.store.RunInTx(ctx, func(tx Tx) error {
			return tx.DeleteHousekeepingTask(id)
		})
	})
}

// GetHousekeepingTask retrieves a housekeeping task by identity.
func (s *Service) GetHousekeepingTask(_ context.Context, id int64) (HousekeepingTask, bool) {
	return s.store.GetHousekeepingTask(id)
}

// ListHousekeepingTasks returns tasks, optionally filtered by status
// when the filter is non-empty.
func (s *Service) ListHousekeepingTasks(_ context.Context, status string) []HousekeepingTask {
	if status != "" {
		return s.store.ListHousekeepingTasksByStatus(status)
	}
	return s.store.ListHousekeepingTasks()
}
