// Package domain defines the persistent entities, value types, and
// persistence contracts used by marketcore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in persistence buckets and errors.
const (
	// EntityVendor identifies a vendor record.
	EntityVendor EntityType = "vendor"
	// EntityCustomer identifies a customer record.
	EntityCustomer EntityType = "customer"
	// EntityInventoryItem identifies an inventory item record.
	EntityInventoryItem EntityType = "inventory_item"
	// EntityCrate identifies a crate record.
	EntityCrate EntityType = "crate"
	// EntityColdStorageUnit identifies a cold storage unit record.
	EntityColdStorageUnit EntityType = "cold_storage_unit"
	// EntityTransaction identifies a sale transaction record.
	EntityTransaction EntityType = "transaction"
	// EntityHousekeepingTask identifies a housekeeping task record.
	EntityHousekeepingTask EntityType = "housekeeping_task"
)

// ProduceCategory enumerates the produce categories traded in the market.
type ProduceCategory string

// Canonical produce categories shared by vendors and inventory items.
const (
	CategoryVegetables ProduceCategory = "vegetables"
	CategoryFruits     ProduceCategory = "fruits"
	CategoryGrains     ProduceCategory = "grains"
	CategorySpices     ProduceCategory = "spices"
)

// VendorStatus enumerates vendor activity states.
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
)

// CustomerType distinguishes retail from wholesale buyers.
type CustomerType string

const (
	CustomerTypeRetail    CustomerType = "retail"
	CustomerTypeWholesale CustomerType = "wholesale"
)

// QualityGrade labels the assessed quality of an inventory item.
type QualityGrade string

const (
	QualityExcellent QualityGrade = "excellent"
	QualityGood      QualityGrade = "good"
	QualityAverage   QualityGrade = "average"
	QualityPoor      QualityGrade = "poor"
)

// CrateStatus enumerates crate circulation states. Transitions are
// caller-supplied; the store accepts any member of the set.
type CrateStatus string

const (
	CrateStatusAvailable   CrateStatus = "available"
	CrateStatusInTransit   CrateStatus = "in_transit"
	CrateStatusUnderRepair CrateStatus = "under_repair"
)

// ColdStorageStatus enumerates cold storage health states. The status is
// reported by operators, not derived from temperature or load.
type ColdStorageStatus string

const (
	ColdStorageStatusOptimal  ColdStorageStatus = "optimal"
	ColdStorageStatusWarning  ColdStorageStatus = "warning"
	ColdStorageStatusCritical ColdStorageStatus = "critical"
)

// TransactionStatus enumerates sale transaction settlement states.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// TaskStatus enumerates housekeeping task workflow states.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusActive    TaskStatus = "active"
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskPriority enumerates housekeeping task priorities.
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// Vendor represents a market stall operator. Monetary fields are decimal
// strings to preserve exact textual precision through storage and
// re-serialization.
type Vendor struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	ShopNumber    string          `json:"shopNumber"`
	ContactPerson string          `json:"contactPerson"`
	Phone         string          `json:"phone"`
	Email         *string         `json:"email"`
	Category      ProduceCategory `json:"category"`
	Status        VendorStatus    `json:"status"`
	DailySales    string          `json:"dailySales"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Customer represents a registered buyer.
type Customer struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Phone          string       `json:"phone"`
	Email          *string      `json:"email"`
	Address        *string      `json:"address"`
	CustomerType   CustomerType `json:"customerType"`
	TotalPurchases string       `json:"totalPurchases"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// InventoryItem tracks stock of one produce line, optionally attributed to
// a vendor. Stock and price are decimal strings (kilograms / per-kg).
type InventoryItem struct {
	ID                int64           `json:"id"`
	ItemName          string          `json:"itemName"`
	Category          ProduceCategory `json:"category"`
	CurrentStock      string          `json:"currentStock"`
	UnitPrice         string          `json:"unitPrice"`
	Quality           QualityGrade    `json:"quality"`
	QualityPercentage int             `json:"qualityPercentage"`
	VendorID          *int64          `json:"vendorId"`
	LastUpdated       time.Time       `json:"lastUpdated"`
}

// Crate represents a reusable transport crate. CurrentLoad is not checked
// against Capacity; the store records what the caller reports.
type Crate struct {
	ID             int64       `json:"id"`
	CrateNumber    string      `json:"crateNumber"`
	Status         CrateStatus `json:"status"`
	Capacity       string      `json:"capacity"`
	CurrentLoad    string      `json:"currentLoad"`
	AssignedVendor *int64      `json:"assignedVendor"`
	LastLocation   *string     `json:"lastLocation"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// ColdStorageUnit captures one refrigerated storage unit and its
// maintenance window. It carries no creation timestamp.
type ColdStorageUnit struct {
	ID              int64             `json:"id"`
	UnitName        string            `json:"unitName"`
	Temperature     string            `json:"temperature"`
	Humidity        int               `json:"humidity"`
	Capacity        string            `json:"capacity"`
	CurrentLoad     string            `json:"currentLoad"`
	Status          ColdStorageStatus `json:"status"`
	LastMaintenance *time.Time        `json:"lastMaintenance"`
	NextMaintenance *time.Time        `json:"nextMaintenance"`
}

// Transaction records a sale. Items is the serialized line-item list as
// supplied by the client; TotalAmount is not cross-checked against it.
type Transaction struct {
	ID            int64             `json:"id"`
	TransactionID string            `json:"transactionId"`
	VendorID      *int64            `json:"vendorId"`
	CustomerID    *int64            `json:"customerId"`
	Items         string            `json:"items"`
	TotalAmount   string            `json:"totalAmount"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod string            `json:"paymentMethod"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// HousekeepingTask represents a scheduled maintenance or cleaning task.
// CompletedAt is independent of Status; neither constrains the other.
type HousekeepingTask struct {
	ID            int64        `json:"id"`
	TaskName      string       `json:"taskName"`
	Description   *string      `json:"description"`
	Area          string       `json:"area"`
	Status        TaskStatus   `json:"status"`
	Priority      TaskPriority `json:"priority"`
	AssignedTo    *string      `json:"assignedTo"`
	ScheduledTime *time.Time   `json:"scheduledTime"`
	CompletedAt   *time.Time   `json:"completedAt"`
	CreatedAt     time.Time    `json:"createdAt"`
}
