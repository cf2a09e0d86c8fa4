// Package seed loads a sample market dataset for demos and local
// development. Seeding is skipped when the store already holds vendors.
package seed

import (
	"context"
	"fmt"

	"marketcore/internal/core"
	"marketcore/pkg/domain"
)

func ptr[T any](v T) *T { return &v }

// Apply inserts the sample dataset through the service. It is a no-op
// when any vendors already exist, so restarts against a persistent
// store do not duplicate records.
func Apply(ctx context.Context, svc *core.Service) error {
	if len(svc.ListVendors(ctx)) > 0 {
		return nil
	}

	vendors := []domain.VendorInsert{
		{
			Name:          "Raj Singh Vegetables",
			ShopNumber:    "A-15",
			ContactPerson: "Raj Singh",
			Phone:         "+91-9876543210",
			Email:         ptr("raj.vegetables@gmail.com"),
			Category:      domain.CategoryVegetables,
			Status:        domain.VendorStatusActive,
			DailySales:    "45680",
		},
		{
			Name:          "Mohan Kumar Fruits",
			ShopNumber:    "B-22",
			ContactPerson: "Mohan Kumar",
			Phone:         "+91-9876543211",
			Email:         ptr("mohan.fruits@gmail.com"),
			Category:      domain.CategoryFruits,
			Status:        domain.VendorStatusActive,
			DailySales:    "38420",
		},
		{
			Name:          "Arun Spices & Grains",
			ShopNumber:    "C-08",
			ContactPerson: "Arun Sharma",
			Phone:         "+91-9876543212",
			Email:         ptr("arun.spices@gmail.com"),
			Category:      domain.CategoryGrains,
			Status:        domain.VendorStatusActive,
			DailySales:    "32150",
		},
	}
	for _, ins := range vendors {
		if _, err := svc.CreateVendor(ctx, ins); err != nil {
			return fmt.Errorf("seed vendor %s: %w", ins.Name, err)
		}
	}

	inventory := []domain.InventoryItemInsert{
		{ItemName: "Tomatoes", Category: domain.CategoryVegetables, CurrentStock: "1200.5", UnitPrice: "45.00", Quality: domain.QualityExcellent, QualityPercentage: ptr(98), VendorID: ptr(int64(1))},
		{ItemName: "Onions", Category: domain.CategoryVegetables, CurrentStock: "890.2", UnitPrice: "32.00", Quality: domain.QualityGood, QualityPercentage: ptr(95), VendorID: ptr(int64(1))},
		{ItemName: "Potatoes", Category: domain.CategoryVegetables, CurrentStock: "1580.7", UnitPrice: "28.00", Quality: domain.QualityGood, QualityPercentage: ptr(100), VendorID: ptr(int64(1))},
		{ItemName: "Apples", Category: domain.CategoryFruits, CurrentStock: "650.3", UnitPrice: "120.00", Quality: domain.QualityExcellent, QualityPercentage: ptr(95), VendorID: ptr(int64(2))},
		{ItemName: "Bananas", Category: domain.CategoryFruits, CurrentStock: "420.8", UnitPrice: "60.00", Quality: domain.QualityGood, QualityPercentage: ptr(92), VendorID: ptr(int64(2))},
		{ItemName: "Rice", Category: domain.CategoryGrains, CurrentStock: "2500.0", UnitPrice: "55.00", Quality: domain.QualityExcellent, QualityPercentage: ptr(100), VendorID: ptr(int64(3))},
		{ItemName: "Wheat", Category: domain.CategoryGrains, CurrentStock: "1800.0", UnitPrice: "48.00", Quality: domain.QualityExcellent, QualityPercentage: ptr(100), VendorID: ptr(int64(3))},
	}
	for _, ins := range inventory {
		if _, err := svc.CreateInventoryItem(ctx, ins); err != nil {
			return fmt.Errorf("seed inventory %s: %w", ins.ItemName, err)
		}
	}

	crates := []domain.CrateInsert{
		{CrateNumber: "CRT-001", Status: domain.CrateStatusAvailable, Capacity: "50.0", CurrentLoad: "0.0"},
		{CrateNumber: "CRT-002", Status: domain.CrateStatusInTransit, Capacity: "50.0", CurrentLoad: "45.5", AssignedVendor: ptr(int64(1)), LastLocation: ptr("Loading Bay A")},
		{CrateNumber: "CRT-003", Status: domain.CrateStatusUnderRepair, Capacity: "50.0", CurrentLoad: "0.0", LastLocation: ptr("Maintenance Area")},
	}
	for _, ins := range crates {
		if _, err := svc.CreateCrate(ctx, ins); err != nil {
			return fmt.Errorf("seed crate %s: %w", ins.CrateNumber, err)
		}
	}

	coldStorage := []domain.ColdStorageUnitInsert{
		{UnitName: "Storage Unit A", Temperature: "4.0", Humidity: 85, Capacity: "3000.0", CurrentLoad: "2450.0", Status: domain.ColdStorageStatusOptimal},
		{UnitName: "Storage Unit B", Temperature: "7.0", Humidity: 92, Capacity: "3500.0", CurrentLoad: "3200.0", Status: domain.ColdStorageStatusWarning},
	}
	for _, ins := range coldStorage {
		if _, err := svc.CreateColdStorageUnit(ctx, ins); err != nil {
			return fmt.Errorf("seed cold storage %s: %w", ins.UnitName, err)
		}
	}

	transactions := []domain.TransactionInsert{
		{
			TransactionID: "TXN001245",
			VendorID:      ptr(int64(1)),
			Items:         `[{"name":"Tomatoes","quantity":50,"price":45},{"name":"Onions","quantity":30,"price":32}]`,
			TotalAmount:   "2450.00",
			Status:        domain.TransactionStatusCompleted,
			PaymentMethod: "cash",
		},
		{
			TransactionID: "TXN001244",
			VendorID:      ptr(int64(2)),
			Items:         `[{"name":"Apples","quantity":15,"price":120},{"name":"Bananas","quantity":5,"price":60}]`,
			TotalAmount:   "1850.00",
			Status:        domain.TransactionStatusPending,
			PaymentMethod: "digital",
		},
		{
			TransactionID: "TXN001243",
			VendorID:      ptr(int64(3)),
			Items:         `[{"name":"Rice","quantity":50,"price":55},{"name":"Wheat","quantity":10,"price":48}]`,
			TotalAmount:   "3200.00",
			Status:        domain.TransactionStatusCompleted,
			PaymentMethod: "cash",
		},
	}
	for _, ins := range transactions {
		if _, err := svc.CreateTransaction(ctx, ins); err != nil {
			return fmt.Errorf("seed transaction %s: %w", ins.TransactionID, err)
		}
	}

	housekeeping := []domain.HousekeepingTaskInsert{
		{TaskName: "Market Floor Cleaning", Description: ptr("Clean sections A, B, C"), Area: "Market Floor", Status: domain.TaskStatusCompleted, Priority: domain.TaskPriorityHigh, AssignedTo: ptr("Cleaning Team A")},
		{TaskName: "Waste Collection", Description: ptr("Collect waste from all vendor stalls"), Area: "All Vendor Stalls", Status: domain.TaskStatusActive, Priority: domain.TaskPriorityMedium, AssignedTo: ptr("Waste Management Team")},
		{TaskName: "Storage Area Maintenance", Description: ptr("Maintenance of cold storage units"), Area: "Cold Storage", Status: domain.TaskStatusPending, Priority: domain.TaskPriorityHigh, AssignedTo: ptr("Maintenance Team")},
	}
	for _, ins := range housekeeping {
		if _, err := svc.CreateHousekeepingTask(ctx, ins); err != nil {
			return fmt.Errorf("seed housekeeping %s: %w", ins.TaskName, err)
		}
	}

	return nil
}
