// Package memory provides the authoritative in-memory implementation of
// the core persistence store. Snapshot backends wrap it for durability.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"marketcore/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Vendor aliases domain.Vendor for in-memory persistence operations.
	Vendor = domain.Vendor
	// Customer aliases domain.Customer.
	Customer = domain.Customer
	// InventoryItem aliases domain.InventoryItem.
	InventoryItem = domain.InventoryItem
	// Crate aliases domain.Crate.
	Crate = domain.Crate
	// ColdStorageUnit aliases domain.ColdStorageUnit.
	ColdStorageUnit = domain.ColdStorageUnit
	// Transaction aliases domain.Transaction.
	Transaction = domain.Transaction
	// HousekeepingTask aliases domain.HousekeepingTask.
	HousekeepingTask = domain.HousekeepingTask
	// Tx aliases the domain mutation scope.
	Tx = domain.Tx
	// PersistentStore aliases the domain persistence abstraction.
	PersistentStore = domain.PersistentStore
)

type memoryState struct {
	vendors      map[int64]Vendor
	customers    map[int64]Customer
	inventory    map[int64]InventoryItem
	crates       map[int64]Crate
	coldStorage  map[int64]ColdStorageUnit
	transactions map[int64]Transaction
	housekeeping map[int64]HousekeepingTask
	sequences    map[domain.EntityType]int64
}

// Snapshot captures a point-in-time clone of the store state, including
// the identity sequences so restored stores never reuse identities.
type Snapshot struct {
	Vendors      map[int64]Vendor            `json:"vendors"`
	Customers    map[int64]Customer          `json:"customers"`
	Inventory    map[int64]InventoryItem     `json:"inventory"`
	Crates       map[int64]Crate             `json:"crates"`
	ColdStorage  map[int64]ColdStorageUnit   `json:"coldStorage"`
	Transactions map[int64]Transaction       `json:"transactions"`
	Housekeeping map[int64]HousekeepingTask  `json:"housekeeping"`
	Sequences    map[domain.EntityType]int64 `json:"sequences"`
}

func newMemoryState() memoryState {
	return memoryState{
		vendors:      make(map[int64]Vendor),
		customers:    make(map[int64]Customer),
		inventory:    make(map[int64]InventoryItem),
		crates:       make(map[int64]Crate),
		coldStorage:  make(map[int64]ColdStorageUnit),
		transactions: make(map[int64]Transaction),
		housekeeping: make(map[int64]HousekeepingTask),
		sequences:    make(map[domain.EntityType]int64),
	}
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	for k, v := range s.vendors {
		cloned.vendors[k] = v
	}
	for k, v := range s.customers {
		cloned.customers[k] = v
	}
	for k, v := range s.inventory {
		cloned.inventory[k] = v
	}
	for k, v := range s.crates {
		cloned.crates[k] = v
	}
	for k, v := range s.coldStorage {
		cloned.coldStorage[k] = v
	}
	for k, v := range s.transactions {
		cloned.transactions[k] = v
	}
	for k, v := range s.housekeeping {
		cloned.housekeeping[k] = v
	}
	for k, v := range s.sequences {
		cloned.sequences[k] = v
	}
	return cloned
}

// Store provides an in-memory transactional store for the market domain.
// All access is serialized through one RWMutex so the single-threaded
// consistency of the original store survives a multi-goroutine host.
type Store struct {
	mu    sync.RWMutex
	state memoryState
	nowFn func() time.Time
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		state: newMemoryState(),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

// SetNowFunc overrides the clock, for tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.nowFn = fn
	}
}

// ExportState returns a deep snapshot of the committed state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := s.state.clone()
	return Snapshot{
		Vendors:      state.vendors,
		Customers:    state.customers,
		Inventory:    state.inventory,
		Crates:       state.crates,
		ColdStorage:  state.coldStorage,
		Transactions: state.transactions,
		Housekeeping: state.housekeeping,
		Sequences:    state.sequences,
	}
}

// ImportState replaces the committed state with the snapshot contents.
// Missing sequence entries are rebuilt from the highest stored identity.
func (s *Store) ImportState(snapshot Snapshot) {
	state := newMemoryState()
	for k, v := range snapshot.Vendors {
		state.vendors[k] = v
	}
	for k, v := range snapshot.Customers {
		state.customers[k] = v
	}
	for k, v := range snapshot.Inventory {
		state.inventory[k] = v
	}
	for k, v := range snapshot.Crates {
		state.crates[k] = v
	}
	for k, v := range snapshot.ColdStorage {
		state.coldStorage[k] = v
	}
	for k, v := range snapshot.Transactions {
		state.transactions[k] = v
	}
	for k, v := range snapshot.Housekeeping {
		state.housekeeping[k] = v
	}
	for k, v := range snapshot.Sequences {
		state.sequences[k] = v
	}
	ensureSequence(state.sequences, domain.EntityVendor, maxID(state.vendors))
	ensureSequence(state.sequences, domain.EntityCustomer, maxID(state.customers))
	ensureSequence(state.sequences, domain.EntityInventoryItem, maxID(state.inventory))
	ensureSequence(state.sequences, domain.EntityCrate, maxID(state.crates))
	ensureSequence(state.sequences, domain.EntityColdStorageUnit, maxID(state.coldStorage))
	ensureSequence(state.sequences, domain.EntityTransaction, maxID(state.transactions))
	ensureSequence(state.sequences, domain.EntityHousekeepingTask, maxID(state.housekeeping))

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func ensureSequence(sequences map[domain.EntityType]int64, entity domain.EntityType, highest int64) {
	if sequences[entity] < highest {
		sequences[entity] = highest
	}
}

func maxID[E any](records map[int64]E) int64 {
	var highest int64
	for id := range records {
		if id > highest {
			highest = id
		}
	}
	return highest
}

// storeTx applies mutations to a cloned state; commit swaps the clone in.
type storeTx struct {
	state memoryState
	now   time.Time
}

var _ Tx = (*storeTx)(nil)

// RunInTx executes fn within a transactional copy of the store state.
// If fn returns an error the clone is discarded and committed state is
// untouched.
func (s *Store) RunInTx(ctx context.Context, fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &storeTx{
		state: s.state.clone(),
		now:   s.nowFn(),
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

func (tx *storeTx) nextID(entity domain.EntityType) int64 {
	tx.state.sequences[entity]++
	return tx.state.sequences[entity]
}

// CreateVendor stores a new vendor, filling schema defaults.
func (tx *storeTx) CreateVendor(ins domain.VendorInsert) (Vendor, error) {
	if ins.Status == "" {
		ins.Status = domain.VendorStatusActive
	}
	if ins.DailySales == "" {
		ins.DailySales = "0"
	}
	vendor := Vendor{
		ID:            tx.nextID(domain.EntityVendor),
		Name:          ins.Name,
		ShopNumber:    ins.ShopNumber,
		ContactPerson: ins.ContactPerson,
		Phone:         ins.Phone,
		Email:         ins.Email,
		Category:      ins.Category,
		Status:        ins.Status,
		DailySales:    ins.DailySales,
		CreatedAt:     tx.now,
	}
	tx.state.vendors[vendor.ID] = vendor
	return vendor, nil
}

// UpdateVendor merges the patch onto an existing vendor.
func (tx *storeTx) UpdateVendor(id int64, patch domain.VendorPatch) (Vendor, error) {
	current, ok := tx.state.vendors[id]
	if !ok {
		return Vendor{}, domain.NotFoundError{Entity: domain.EntityVendor, ID: id}
	}
	patch.Apply(&current)
	current.ID = id
	tx.state.vendors[id] = current
	return current, nil
}

// DeleteVendor removes a vendor. References from inventory, crates, and
// transactions are left dangling; there is no cascade.
func (tx *storeTx) DeleteVendor(id int64) error {
	if _, ok := tx.state.vendors[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityVendor, ID: id}
	}
	delete(tx.state.vendors, id)
	return nil
}

// CreateCustomer stores a new customer, filling schema defaults.
func (tx *storeTx) CreateCustomer(ins domain.CustomerInsert) (Customer, error) {
	if ins.CustomerType == "" {
		ins.CustomerType = domain.CustomerTypeRetail
	}
	if ins.TotalPurchases == "" {
		ins.TotalPurchases = "0"
	}
	customer := Customer{
		ID:             tx.nextID(domain.EntityCustomer),
		Name:           ins.Name,
		Phone:          ins.Phone,
		Email:          ins.Email,
		Address:        ins.Address,
		CustomerType:   ins.CustomerType,
		TotalPurchases: ins.TotalPurchases,
		CreatedAt:      tx.now,
	}
	tx.state.customers[customer.ID] = customer
	return customer, nil
}

// UpdateCustomer merges the patch onto an existing customer.
func (tx *storeTx) UpdateCustomer(id int64, patch domain.CustomerPatch) (Customer, error) {
	current, ok := tx.state.customers[id]
	if !ok {
		return Customer{}, domain.NotFoundError{Entity: domain.EntityCustomer, ID: id}
	}
	patch.Apply(&current)
	current.ID = id
	tx.state.customers[id] = current
	return current, nil
}

// DeleteCustomer removes a customer record.
func (tx *storeTx) DeleteCustomer(id int64) error {
	if _, ok := tx.state.customers[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityCustomer, ID: id}
	}
	delete(tx.state.customers, id)
	return nil
}

// CreateInventoryItem stores a new inventory item, filling schema
// defaults and stamping lastUpdated.
func (tx *storeTx) CreateInventoryItem(ins domain.InventoryItemInsert) (InventoryItem, error) {
	if ins.Quality == "" {
		ins.Quality = domain.QualityGood
	}
	percentage := 100
	if ins.QualityPercentage != nil {
		percentage = *ins.QualityPercentage
	}
	item := InventoryItem{
		ID:                tx.nextID(domain.EntityInventoryItem),
		ItemName:          ins.ItemName,
		Category:          ins.Category,
		CurrentStock:      ins.CurrentStock,
		UnitPrice:         ins.UnitPrice,
		Quality:           ins.Quality,
		QualityPercentage: percentage,
		VendorID:          ins.VendorID,
		LastUpdated:       tx.now,
	}
	tx.state.inventory[item.ID] = item
	return item, nil
}

// UpdateInventoryItem merges the patch and refreshes lastUpdated.
func (tx *storeTx) UpdateInventoryItem(id int64, patch domain.InventoryItemPatch) (InventoryItem, error) {
	current, ok := tx.state.inventory[id]
	if !ok {
		return InventoryItem{}, domain.NotFoundError{Entity: domain.EntityInventoryItem, ID: id}
	}
	patch.Apply(&current)
	current.ID = id
	current.LastUpdated = tx.now
	tx.state.inventory[id] = current
	return current, nil
}

// DeleteInventoryItem removes an inventory item.
func (tx *storeTx) DeleteInventoryItem(id int64) error {
	if _, ok := tx.state.inventory[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityInventoryItem, ID: id}
	}
	delete(tx.state.inventory, id)
	return nil
}

// CreateCrate stores a new crate, filling schema defaults.
func (tx *storeTx) CreateCrate(ins domain.CrateInsert) (Crate, error) {
	if ins.Status == "" {
		ins.Status = domain.CrateStatusAvailable
	}
	if ins.CurrentLoad == "" {
		ins.CurrentLoad = "0"
	}
	crate := Crate{
		ID:             tx.nextID(domain.EntityCrate),
		CrateNumber:    ins.CrateNumber,
		Status:         ins.Status,
		Capacity:       ins.Capacity,
		CurrentLoad:    ins.CurrentLoad,
		AssignedVendor: ins.AssignedVendor,
		LastLocation:   ins.LastLocation,
		CreatedAt:      tx.now,
	}
	tx.state.crates[crate.ID] = crate
	return crate, nil
}

// UpdateCrate merges the patch onto an existing crate.
func (tx *storeTx) UpdateCrate(id int64, patch domain.CratePatch) (Crate, error) {
	current, ok := tx.state.crates[id]
	if !ok {
		return Crate{}, domain.NotFoundError{Entity: domain.EntityCrate, ID: id}
	}
	patch.Apply(&current)
	current.ID = id
	tx.state.crates[id] = current
	return current, nil
}

// DeleteCrate removes a crate record.
func (tx *storeTx) DeleteCrate(id int64) error {
	if _, ok := tx.state.crates[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityCrate, ID: id}
	}
	delete(tx.state.crates, id)
	return nil
}

// CreateColdStorageUnit stores a new cold storage unit, filling schema
// defaults.
func (tx *storeTx) CreateColdStorageUnit(ins domain.ColdStorageUnitInsert) (ColdStorageUnit, error) {
	if ins.Status == "" {
		ins.Status = domain.ColdStorageStatusOptimal
	}
	if ins.CurrentLoad == "" {
		ins.CurrentLoad = "0"
	}
	unit := ColdStorageUnit{
		ID:              tx.nextID(domain.EntityColdStorageUnit),
		UnitName:        ins.UnitName,
		Temperature:     ins.Temperature,
		Humidity:        ins.Humidity,
		Capacity:        ins.Capacity,
		CurrentLoad:     ins.CurrentLoad,
		Status:          ins.Status,
		LastMaintenance: ins.LastMaintenance,
		NextMaintenance: ins.NextMaintenance,
	}
	tx.state.coldStorage[unit.ID] = unit
	return unit, nil
}

// UpdateColdStorageUnit merges the patch onto an existing unit.
func (tx *storeTx) UpdateColdStorageUnit(id int64, patch domain.ColdStorageUnitPatch) (ColdStorageUnit, error) {
	current, ok := tx.state.coldStorage[id]
	if !ok {
		return ColdStorageUnit{}, domain.NotFoundError{Entity: domain.EntityColdStorageUnit, ID: id}
	}
	patch.Apply(&current)
	current.ID = id
	tx.state.coldStorage[id] = current
	return current, nil
}

// DeleteColdStorageUnit removes a cold storage unit.
func (tx *storeTx) DeleteColdStorageUnit(id int64) error {
	if _, ok := tx.state.coldStorage[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityColdStorageUnit, ID: id}
	}
	delete(tx.state.coldStorage, id)
	return nil
}

// CreateTransaction stores a new sale transaction, filling schema
// defaults. TotalAmount is accepted as supplied without cross-checking
// the serialized items.
func (tx *storeTx) CreateTransaction(ins domain.TransactionInsert) (Transaction, error) {
	if ins.Status == "" {
		ins.Status = domain.TransactionStatusCompleted
	}
	if ins.PaymentMethod == "" {
		ins.PaymentMethod = "cash"
	}
	record := Transaction{
		ID:            tx.nextID(domain.EntityTransaction),
		TransactionID: ins.TransactionID,
		VendorID:      ins.VendorID,
		CustomerID:    ins.CustomerID,
		Items:         ins.Items,
		TotalAmount:   ins.TotalAmount,
		Status:        ins.Status,
		PaymentMethod: ins.PaymentMethod,
		CreatedAt:     tx.now,
	}
	tx.state.transactions[record.ID] = record
	return record, nil
}

// UpdateTransaction merges the patch onto an existing transaction.
func (tx *storeTx) UpdateTransaction(id int64, patch domain.TransactionPatch) (Transaction, error) {
	current, ok := tx.state.transactions[id]
	if !ok {
		return Transaction{}, domain.NotFoundError{Entity: domain.EntityTransaction, ID: id}
	}
	patch.Apply(&current)
	current.ID = id
	tx.state.transactions[id] = current
	return current, nil
}

// CreateHousekeepingTask stores a new task, filling schema defaults.
func (tx *storeTx) CreateHousekeepingTask(ins domain.HousekeepingTaskInsert) (HousekeepingTask, error) {
	if ins.Status == "" {
		ins.Status = domain.TaskStatusPending
	}
	if ins.Priority == "" {
		ins.Priority = domain.TaskPriorityMedium
	}
	task := HousekeepingTask{
		ID:            tx.nextID(domain.EntityHousekeepingTask),
		TaskName:      ins.TaskName,
		Description:   ins.Description,
		Area:          ins.Area,
		Status:        ins.Status,
		Priority:      ins.Priority,
		AssignedTo:    ins.AssignedTo,
		ScheduledTime: ins.ScheduledTime,
		CompletedAt:   ins.CompletedAt,
		CreatedAt:     tx.now,
	}
	tx.state.housekeeping[task.ID] = task
	return task, nil
}

// UpdateHousekeepingTask merges the patch onto an existing task.
func (tx *storeTx) UpdateHousekeepingTask(id int64, patch domain.HousekeepingTaskPatch) (HousekeepingTask, error) {
	current, ok := tx.state.housekeeping[id]
	if !ok {
		return HousekeepingTask{}, domain.NotFoundError{Entity: domain.EntityHousekeepingTask, ID: id}
	}
	patch.Apply(&current)
	current.ID = id
	tx.state.housekeeping[id] = current
	return current, nil
}

// DeleteHousekeepingTask removes a task record.
func (tx *storeTx) DeleteHousekeepingTask(id int64) error {
	if _, ok := tx.state.housekeeping[id]; !ok {
		return domain.NotFoundError{Entity: domain.EntityHousekeepingTask, ID: id}
	}
	delete(tx.state.housekeeping, id)
	return nil
}

// Read helpers ---------------------------------------------------------------

func sortedByID[E any](records map[int64]E, keep func(E) bool) []E {
	ids := make([]int64, 0, len(records))
	for id, record := range records {
		if keep == nil || keep(record) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]E, 0, len(ids))
	for _, id := range ids {
		out = append(out, records[id])
	}
	return out
}

// GetVendor retrieves a vendor by identity from committed state.
func (s *Store) GetVendor(id int64) (Vendor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state.vendors[id]
	return v, ok
}

// ListVendors returns all vendors in insertion order.
func (s *Store) ListVendors() []Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.state.vendors, nil)
}

// GetCustomer retrieves a customer by identity.
func (s *Store) GetCustomer(id int64) (Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.customers[id]
	return c, ok
}

// ListCustomers returns all customers in insertion order.
func (s *Store) ListCustomers() []Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.state.customers, nil)
}

// GetInventoryItem retrieves an inventory item by identity.
func (s *Store) GetInventoryItem(id int64) (InventoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.state.inventory[id]
	return item, ok
}

// ListInventoryItems returns all inventory items in insertion order.
func (s *Store) ListInventoryItems() []InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.state.inventory, nil)
}

// ListInventoryItemsByCategory returns the items whose category equals
// the filter value, preserving insertion order.
func (s *Store) ListInventoryItemsByCategory(category string) []InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.state.inventory, func(item InventoryItem) bool {
		return string(item.Category) == category
	})
}

// GetCrate retrieves a crate by identity.
func (s *Store) GetCrate(id int64) (Crate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.state.crates[id]
	return c, ok
}

// ListCrates returns all crates in insertion order.
func (s *Store) ListCrates() []Crate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.state.crates, nil)
}

// ListCratesByStatus returns the crates whose status equals the filter
// value, preserving insertion order.
func (s *Store) ListCratesByStatus(status string) []Crate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.state.crates, func(c Crate) bool {
		return string(c.Status) == status
	})
}

// GetColdStorageUnit retrieves a cold storage unit by identity.
func (s *Store) GetColdStorageUnit(id int64) (ColdStorageUnit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.state.coldStorage[id]
	return u, ok
}

// ListColdStorageUnits returns all cold storage units in insertion order.
func (s *Store) ListColdStorageUnits() []ColdStorageUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.state.coldStorage, nil)
}

// GetTransaction retrieves a transaction by identity.
func (s *Store) GetTransaction(id int64) (Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.state.transactions[id]
	return t, ok
}

// ListTransactions returns all transactions in insertion order.
func (s *Store) ListTransactions() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.state.transactions, nil)
}

// ListTransactionsByVendor returns the transactions attributed to the
// vendor, preserving insertion order.
func (s *Store) ListTransactionsByVendor(vendorID int64) []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.state.transactions, func(t Transaction) bool {
		return t.VendorID != nil && *t.VendorID == vendorID
	})
}

// GetHousekeepingTask retrieves a housekeeping task by identity.
func (s *Store) GetHousekeepingTask(id int64) (HousekeepingTask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.state.housekeeping[id]
	return t, ok
}

// ListHousekeepingTasks returns all housekeeping tasks in insertion order.
func (s *Store) ListHousekeepingTasks() []HousekeepingTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.state.housekeeping, nil)
}

// ListHousekeepingTasksByStatus returns the tasks whose status equals the
// filter value, preserving insertion order.
func (s *Store) ListHousekeepingTasksByStatus(status string) []HousekeepingTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.state.housekeeping, func(t HousekeepingTask) bool {
		return string(t.Status) == status
	})
}
