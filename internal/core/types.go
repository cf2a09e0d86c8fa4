// Package core wires the market domain to its storage backends and
// exposes the instrumented service facade the adapters consume.
package core

import "marketcore/pkg/domain"

type (
	Vendor           = domain.Vendor
	Customer         = domain.Customer
	InventoryItem    = domain.InventoryItem
	Crate            = domain.Crate
	ColdStorageUnit  = domain.ColdStorageUnit
	Transaction      = domain.Transaction
	HousekeepingTask = domain.HousekeepingTask
	Tx               = domain.Tx
	PersistentStore  = domain.PersistentStore
)
