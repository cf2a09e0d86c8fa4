package domain

import "time"

// Insertable shapes: the subset of each entity a client may supply on
// creation. Server-assigned fields (id, createdAt, lastUpdated) are
// excluded; defaulted fields may be left zero and are filled by the store.

// VendorInsert is the insertable shape of Vendor.
type VendorInsert struct {
	Name          string          `json:"name"`
	ShopNumber    string          `json:"shopNumber"`
	ContactPerson string          `json:"contactPerson"`
	Phone         string          `json:"phone"`
	Email         *string         `json:"email"`
	Category      ProduceCategory `json:"category"`
	Status        VendorStatus    `json:"status"`
	DailySales    string          `json:"dailySales"`
}

// CustomerInsert is the insertable shape of Customer.
type CustomerInsert struct {
	Name           string       `json:"name"`
	Phone          string       `json:"phone"`
	Email          *string      `json:"email"`
	Address        *string      `json:"address"`
	CustomerType   CustomerType `json:"customerType"`
	TotalPurchases string       `json:"totalPurchases"`
}

// InventoryItemInsert is the insertable shape of InventoryItem.
type InventoryItemInsert struct {
	ItemName          string          `json:"itemName"`
	Category          ProduceCategory `json:"category"`
	CurrentStock      string          `json:"currentStock"`
	UnitPrice         string          `json:"unitPrice"`
	Quality           QualityGrade    `json:"quality"`
	QualityPercentage *int            `json:"qualityPercentage"`
	VendorID          *int64          `json:"vendorId"`
}

// CrateInsert is the insertable shape of Crate.
type CrateInsert struct {
	CrateNumber    string      `json:"crateNumber"`
	Status         CrateStatus `json:"status"`
	Capacity       string      `json:"capacity"`
	CurrentLoad    string      `json:"currentLoad"`
	AssignedVendor *int64      `json:"assignedVendor"`
	LastLocation   *string     `json:"lastLocation"`
}

// ColdStorageUnitInsert is the insertable shape of ColdStorageUnit.
type ColdStorageUnitInsert struct {
	UnitName        string            `json:"unitName"`
	Temperature     string            `json:"temperature"`
	Humidity        int               `json:"humidity"`
	Capacity        string            `json:"capacity"`
	CurrentLoad     string            `json:"currentLoad"`
	Status          ColdStorageStatus `json:"status"`
	LastMaintenance *time.Time        `json:"lastMaintenance"`
	NextMaintenance *time.Time        `json:"nextMaintenance"`
}

// TransactionInsert is the insertable shape of Transaction.
type TransactionInsert struct {
	TransactionID string            `json:"transactionId"`
	VendorID      *int64            `json:"vendorId"`
	CustomerID    *int64            `json:"customerId"`
	Items         string            `json:"items"`
	TotalAmount   string            `json:"totalAmount"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod string            `json:"paymentMethod"`
}

// HousekeepingTaskInsert is the insertable shape of HousekeepingTask.
type HousekeepingTaskInsert struct {
	TaskName      string       `json:"taskName"`
	Description   *string      `json:"description"`
	Area          string       `json:"area"`
	Status        TaskStatus   `json:"status"`
	Priority      TaskPriority `json:"priority"`
	AssignedTo    *string      `json:"assignedTo"`
	ScheduledTime *time.Time   `json:"scheduledTime"`
	CompletedAt   *time.Time   `json:"completedAt"`
}

// Patch shapes: every insertable field as an optional value. An unset
// field means "leave unchanged"; Apply performs the shallow
// field-presence merge. Nullable columns use Optional so an explicit
// null (clear the field) survives decoding.

// VendorPatch is the partial-update shape of Vendor.
type VendorPatch struct {
	Name          *string          `json:"name"`
	ShopNumber    *string          `json:"shopNumber"`
	ContactPerson *string          `json:"contactPerson"`
	Phone         *string          `json:"phone"`
	Email         Optional[string] `json:"email"`
	Category      *ProduceCategory `json:"category"`
	Status        *VendorStatus    `json:"status"`
	DailySales    *string          `json:"dailySales"`
}

// Apply merges the provided fields onto v.
func (p VendorPatch) Apply(v *Vendor) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.ShopNumber != nil {
		v.ShopNumber = *p.ShopNumber
	}
	if p.ContactPerson != nil {
		v.ContactPerson = *p.ContactPerson
	}
	if p.Phone != nil {
		v.Phone = *p.Phone
	}
	if p.Email.Set {
		v.Email = p.Email.Value
	}
	if p.Category != nil {
		v.Category = *p.Category
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.DailySales != nil {
		v.DailySales = *p.DailySales
	}
}

// CustomerPatch is the partial-update shape of Customer.
type CustomerPatch struct {
	Name           *string          `json:"name"`
	Phone          *string          `json:"phone"`
	Email          Optional[string] `json:"email"`
	Address        Optional[string] `json:"address"`
	CustomerType   *CustomerType    `json:"customerType"`
	TotalPurchases *string          `json:"totalPurchases"`
}

// Apply merges the provided fields onto c.
func (p CustomerPatch) Apply(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email.Set {
		c.Email = p.Email.Value
	}
	if p.Address.Set {
		c.Address = p.Address.Value
	}
	if p.CustomerType != nil {
		c.CustomerType = *p.CustomerType
	}
	if p.TotalPurchases != nil {
		c.TotalPurchases = *p.TotalPurchases
	}
}

// InventoryItemPatch is the partial-update shape of InventoryItem.
type InventoryItemPatch struct {
	ItemName          *string          `json:"itemName"`
	Category          *ProduceCategory `json:"category"`
	CurrentStock      *string          `json:"currentStock"`
	UnitPrice         *string          `json:"unitPrice"`
	Quality           *QualityGrade    `json:"quality"`
	QualityPercentage *int             `json:"qualityPercentage"`
	VendorID          Optional[int64]  `json:"vendorId"`
}

// Apply merges the provided fields onto item.
func (p InventoryItemPatch) Apply(item *InventoryItem) {
	if p.ItemName != nil {
		item.ItemName = *p.ItemName
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.CurrentStock != nil {
		item.CurrentStock = *p.CurrentStock
	}
	if p.UnitPrice != nil {
		item.UnitPrice = *p.UnitPrice
	}
	if p.Quality != nil {
		item.Quality = *p.Quality
	}
	if p.QualityPercentage != nil {
		item.QualityPercentage = *p.QualityPercentage
	}
	if p.VendorID.Set {
		item.VendorID = p.VendorID.Value
	}
}

// CratePatch is the partial-update shape of Crate.
type CratePatch struct {
	CrateNumber    *string          `json:"crateNumber"`
	Status         *CrateStatus     `json:"status"`
	Capacity       *string          `json:"capacity"`
	CurrentLoad    *string          `json:"currentLoad"`
	AssignedVendor Optional[int64]  `json:"assignedVendor"`
	LastLocation   Optional[string] `json:"lastLocation"`
}

// Apply merges the provided fields onto c.
func (p CratePatch) Apply(c *Crate) {
	if p.CrateNumber != nil {
		c.CrateNumber = *p.CrateNumber
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Capacity != nil {
		c.Capacity = *p.Capacity
	}
	if p.CurrentLoad != nil {
		c.CurrentLoad = *p.CurrentLoad
	}
	if p.AssignedVendor.Set {
		c.AssignedVendor = p.AssignedVendor.Value
	}
	if p.LastLocation.Set {
		c.LastLocation = p.LastLocation.Value
	}
}

// ColdStorageUnitPatch is the partial-update shape of ColdStorageUnit.
type ColdStorageUnitPatch struct {
	UnitName        *string             `json:"unitName"`
	Temperature     *string             `json:"temperature"`
	Humidity        *int                `json:"humidity"`
	Capacity        *string             `json:"capacity"`
	CurrentLoad     *string             `json:"currentLoad"`
	Status          *ColdStorageStatus  `json:"status"`
	LastMaintenance Optional[time.Time] `json:"lastMaintenance"`
	NextMaintenance Optional[time.Time] `json:"nextMaintenance"`
}

// Apply merges the provided fields onto u.
func (p ColdStorageUnitPatch) Apply(u *ColdStorageUnit) {
	if p.UnitName != nil {
		u.UnitName = *p.UnitName
	}
	if p.Temperature != nil {
		u.Temperature = *p.Temperature
	}
	if p.Humidity != nil {
		u.Humidity = *p.Humidity
	}
	if p.Capacity != nil {
		u.Capacity = *p.Capacity
	}
	if p.CurrentLoad != nil {
		u.CurrentLoad = *p.CurrentLoad
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.LastMaintenance.Set {
		u.LastMaintenance = p.LastMaintenance.Value
	}
	if p.NextMaintenance.Set {
		u.NextMaintenance = p.NextMaintenance.Value
	}
}

// TransactionPatch is the partial-update shape of Transaction.
type TransactionPatch struct {
	TransactionID *string            `json:"transactionId"`
	VendorID      Optional[int64]    `json:"vendorId"`
	CustomerID    Optional[int64]    `json:"customerId"`
	Items         *string            `json:"items"`
	TotalAmount   *string            `json:"totalAmount"`
	Status        *TransactionStatus `json:"status"`
	PaymentMethod *string            `json:"paymentMethod"`
}

// Apply merges the provided fields onto t.
func (p TransactionPatch) Apply(t *Transaction) {
	if p.TransactionID != nil {
		t.TransactionID = *p.TransactionID
	}
	if p.VendorID.Set {
		t.VendorID = p.VendorID.Value
	}
	if p.CustomerID.Set {
		t.CustomerID = p.CustomerID.Value
	}
	if p.Items != nil {
		t.Items = *p.Items
	}
	if p.TotalAmount != nil {
		t.TotalAmount = *p.TotalAmount
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.PaymentMethod != nil {
		t.PaymentMethod = *p.PaymentMethod
	}
}

// HousekeepingTaskPatch is the partial-update shape of HousekeepingTask.
type HousekeepingTaskPatch struct {
	TaskName      *string             `json:"taskName"`
	Description   Optional[string]    `json:"description"`
	Area          *string             `json:"area"`
	Status        *TaskStatus         `json:"status"`
	Priority      *TaskPriority       `json:"priority"`
	AssignedTo    Optional[string]    `json:"assignedTo"`
	ScheduledTime Optional[time.Time] `json:"scheduledTime"`
	CompletedAt   Optional[time.Time] `json:"completedAt"`
}

// Apply merges the provided fields onto t.
func (p HousekeepingTaskPatch) Apply(t *HousekeepingTask) {
	if p.TaskName != nil {
		t.TaskName = *p.TaskName
	}
	if p.Description.Set {
		t.Description = p.Description.Value
	}
	if p.Area != nil {
		t.Area = *p.Area
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.AssignedTo.Set {
		t.AssignedTo = p.AssignedTo.Value
	}
	if p.ScheduledTime.Set {
		t.ScheduledTime = p.ScheduledTime.Value
	}
	if p.CompletedAt.Set {
		t.CompletedAt = p.CompletedAt.Value
	}
}
