// Package rest provides the JSON HTTP surface for the market resources.
package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"marketcore/internal/core"
	"marketcore/internal/schema"
	"marketcore/pkg/domain"
)

// Handler serves the /api resource routes.
type Handler struct {
	Service *core.Service
}

// NewHandler constructs a resource HTTP handler.
func NewHandler(svc *core.Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		writeError(w, http.StatusInternalServerError, "service not configured")
		return
	}
	path := strings.TrimSuffix(r.URL.Path, "/")
	if !strings.HasPrefix(path, "/api/") {
		http.NotFound(w, r)
		return
	}
	resource := strings.TrimPrefix(path, "/api/")
	var rest string
	if idx := strings.IndexByte(resource, '/'); idx >= 0 {
		resource, rest = resource[:idx], resource[idx+1:]
	}
	switch resource {
	case "vendors":
		h.handleVendors(w, r, rest)
	case "customers":
		h.handleCustomers(w, r, rest)
	case "inventory":
		h.handleInventory(w, r, rest)
	case "crates":
		h.handleCrates(w, r, rest)
	case "cold-storage":
		h.handleColdStorage(w, r, rest)
	case "transactions":
		h.handleTransactions(w, r, rest)
	case "housekeeping":
		h.handleHousekeeping(w, r, rest)
	default:
		http.NotFound(w, r)
	}
}

// parseID extracts a numeric identity from the path remainder. A
// malformed remainder is treated as an unknown resource path.
func parseID(rest string) (int64, bool) {
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func decodeBody(r *http.Request) (map[string]any, bool) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, false
	}
	return payload, true
}

func (h *Handler) handleVendors(w http.ResponseWriter, r *http.Request, rest string) {
	ctx := r.Context()
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, h.Service.ListVendors(ctx))
		case http.MethodPost:
			payload, ok := decodeBody(r)
			if !ok {
				writeError(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			cleaned, errs := schema.Vendors.Validate(payload)
			if len(errs) > 0 {
				writeValidationError(w, errs)
				return
			}
			ins, err := schema.Decode[domain.VendorInsert](cleaned)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create vendor")
				return
			}
			created, err := h.Service.CreateVendor(ctx, ins)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create vendor")
				return
			}
			writeJSON(w, http.StatusCreated, created)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}
	id, ok := parseID(rest)
	if !ok {
		writeError(w, http.StatusNotFound, "Vendor not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		vendor, ok := h.Service.GetVendor(ctx, id)
		if !ok {
			writeError(w, http.StatusNotFound, "Vendor not found")
			return
		}
		writeJSON(w, http.StatusOK, vendor)
	case http.MethodPut:
		payload, ok := decodeBody(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		cleaned, errs := schema.Vendors.ValidatePartial(payload)
		if len(errs) > 0 {
			writeValidationError(w, errs)
			return
		}
		patch, err := schema.Decode[domain.VendorPatch](cleaned)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update vendor")
			return
		}
		updated, err := h.Service.UpdateVendor(ctx, id, patch)
		if domain.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Vendor not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update vendor")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleCustomers(w http.ResponseWriter, r *http.Request, rest string) {
	ctx := r.Context()
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, h.Service.ListCustomers(ctx))
		case http.MethodPost:
			payload, ok := decodeBody(r)
			if !ok {
				writeError(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			cleaned, errs := schema.Customers.Validate(payload)
			if len(errs) > 0 {
				writeValidationError(w, errs)
				return
			}
			ins, err := schema.Decode[domain.CustomerInsert](cleaned)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create customer")
				return
			}
			created, err := h.Service.CreateCustomer(ctx, ins)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create customer")
				return
			}
			writeJSON(w, http.StatusCreated, created)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}
	id, ok := parseID(rest)
	if !ok {
		writeError(w, http.StatusNotFound, "Customer not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		customer, ok := h.Service.GetCustomer(ctx, id)
		if !ok {
			writeError(w, http.StatusNotFound, "Customer not found")
			return
		}
		writeJSON(w, http.StatusOK, customer)
	case http.MethodPut:
		payload, ok := decodeBody(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		cleaned, errs := schema.Customers.ValidatePartial(payload)
		if len(errs) > 0 {
			writeValidationError(w, errs)
			return
		}
		patch, err := schema.Decode[domain.CustomerPatch](cleaned)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update customer")
			return
		}
		updated, err := h.Service.UpdateCustomer(ctx, id, patch)
		if domain.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Customer not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update customer")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleInventory(w http.ResponseWriter, r *http.Request, rest string) {
	ctx := r.Context()
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			category := r.URL.Query().Get("category")
			writeJSON(w, http.StatusOK, h.Service.ListInventoryItems(ctx, category))
		case http.MethodPost:
			payload, ok := decodeBody(r)
			if !ok {
				writeError(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			cleaned, errs := schema.Inventory.Validate(payload)
			if len(errs) > 0 {
				writeValidationError(w, errs)
				return
			}
			ins, err := schema.Decode[domain.InventoryItemInsert](cleaned)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create inventory item")
				return
			}
			created, err := h.Service.CreateInventoryItem(ctx, ins)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create inventory item")
				return
			}
			writeJSON(w, http.StatusCreated, created)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}
	id, ok := parseID(rest)
	if !ok {
		writeError(w, http.StatusNotFound, "Inventory item not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		item, ok := h.Service.GetInventoryItem(ctx, id)
		if !ok {
			writeError(w, http.StatusNotFound, "Inventory item not found")
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPut:
		payload, ok := decodeBody(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		cleaned, errs := schema.Inventory.ValidatePartial(payload)
		if len(errs) > 0 {
			writeValidationError(w, errs)
			return
		}
		patch, err := schema.Decode[domain.InventoryItemPatch](cleaned)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update inventory item")
			return
		}
		updated, err := h.Service.UpdateInventoryItem(ctx, id, patch)
		if domain.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Inventory item not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update inventory item")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleCrates(w http.ResponseWriter, r *http.Request, rest string) {
	ctx := r.Context()
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			status := r.URL.Query().Get("status")
			writeJSON(w, http.StatusOK, h.Service.ListCrates(ctx, status))
		case http.MethodPost:
			payload, ok := decodeBody(r)
			if !ok {
				writeError(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			cleaned, errs := schema.Crates.Validate(payload)
			if len(errs) > 0 {
				writeValidationError(w, errs)
				return
			}
			ins, err := schema.Decode[domain.CrateInsert](cleaned)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create crate")
				return
			}
			created, err := h.Service.CreateCrate(ctx, ins)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create crate")
				return
			}
			writeJSON(w, http.StatusCreated, created)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}
	id, ok := parseID(rest)
	if !ok {
		writeError(w, http.StatusNotFound, "Crate not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		crate, ok := h.Service.GetCrate(ctx, id)
		if !ok {
			writeError(w, http.StatusNotFound, "Crate not found")
			return
		}
		writeJSON(w, http.StatusOK, crate)
	case http.MethodPut:
		payload, ok := decodeBody(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		cleaned, errs := schema.Crates.ValidatePartial(payload)
		if len(errs) > 0 {
			writeValidationError(w, errs)
			return
		}
		patch, err := schema.Decode[domain.CratePatch](cleaned)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update crate")
			return
		}
		updated, err := h.Service.UpdateCrate(ctx, id, patch)
		if domain.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Crate not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update crate")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleColdStorage(w http.ResponseWriter, r *http.Request, rest string) {
	ctx := r.Context()
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, h.Service.ListColdStorageUnits(ctx))
		case http.MethodPost:
			payload, ok := decodeBody(r)
			if !ok {
				writeError(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			cleaned, errs := schema.ColdStorage.Validate(payload)
			if len(errs) > 0 {
				writeValidationError(w, errs)
				return
			}
			ins, err := schema.Decode[domain.ColdStorageUnitInsert](cleaned)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create cold storage unit")
				return
			}
			created, err := h.Service.CreateColdStorageUnit(ctx, ins)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create cold storage unit")
				return
			}
			writeJSON(w, http.StatusCreated, created)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}
	id, ok := parseID(rest)
	if !ok {
		writeError(w, http.StatusNotFound, "Cold storage unit not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		unit, ok := h.Service.GetColdStorageUnit(ctx, id)
		if !ok {
			writeError(w, http.StatusNotFound, "Cold storage unit not found")
			return
		}
		writeJSON(w, http.StatusOK, unit)
	case http.MethodPut:
		payload, ok := decodeBody(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		cleaned, errs := schema.ColdStorage.ValidatePartial(payload)
		if len(errs) > 0 {
			writeValidationError(w, errs)
			return
		}
		patch, err := schema.Decode[domain.ColdStorageUnitPatch](cleaned)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update cold storage unit")
			return
		}
		updated, err := h.Service.UpdateColdStorageUnit(ctx, id, patch)
		if domain.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Cold storage unit not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update cold storage unit")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleTransactions(w http.ResponseWriter, r *http.Request, rest string) {
	ctx := r.Context()
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			var vendorID *int64
			if raw := r.URL.Query().Get("vendorId"); raw != "" {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					writeJSON(w, http.StatusOK, []domain.Transaction{})
					return
				}
				vendorID = &id
			}
			writeJSON(w, http.StatusOK, h.Service.ListTransactions(ctx, vendorID))
		case http.MethodPost:
			payload, ok := decodeBody(r)
			if !ok {
				writeError(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			cleaned, errs := schema.Transactions.Validate(payload)
			if len(errs) > 0 {
				writeValidationError(w, errs)
				return
			}
			ins, err := schema.Decode[domain.TransactionInsert](cleaned)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create transaction")
				return
			}
			created, err := h.Service.CreateTransaction(ctx, ins)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create transaction")
				return
			}
			writeJSON(w, http.StatusCreated, created)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}
	id, ok := parseID(rest)
	if !ok {
		writeError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		record, ok := h.Service.GetTransaction(ctx, id)
		if !ok {
			writeError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		writeJSON(w, http.StatusOK, record)
	case http.MethodPut:
		payload, ok := decodeBody(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		cleaned, errs := schema.Transactions.ValidatePartial(payload)
		if len(errs) > 0 {
			writeValidationError(w, errs)
			return
		}
		patch, err := schema.Decode[domain.TransactionPatch](cleaned)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update transaction")
			return
		}
		updated, err := h.Service.UpdateTransaction(ctx, id, patch)
		if domain.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update transaction")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleHousekeeping(w http.ResponseWriter, r *http.Request, rest string) {
	ctx := r.Context()
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			status := r.URL.Query().Get("status")
			writeJSON(w, http.StatusOK, h.Service.ListHousekeepingTasks(ctx, status))
		case http.MethodPost:
			payload, ok := decodeBody(r)
			if !ok {
				writeError(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			cleaned, errs := schema.Housekeeping.Validate(payload)
			if len(errs) > 0 {
				writeValidationError(w, errs)
				return
			}
			ins, err := schema.Decode[domain.HousekeepingTaskInsert](cleaned)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create housekeeping task")
				return
			}
			created, err := h.Service.CreateHousekeepingTask(ctx, ins)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to create housekeeping task")
				return
			}
			writeJSON(w, http.StatusCreated, created)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}
	id, ok := parseID(rest)
	if !ok {
		writeError(w, http.StatusNotFound, "Housekeeping task not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		task, ok := h.Service.GetHousekeepingTask(ctx, id)
		if !ok {
			writeError(w, http.StatusNotFound, "Housekeeping task not found")
			return
		}
		writeJSON(w, http.StatusOK, task)
	case http.MethodPut:
		payload, ok := decodeBody(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		cleaned, errs := schema.Housekeeping.ValidatePartial(payload)
		if len(errs) > 0 {
			writeValidationError(w, errs)
			return
		}
		patch, err := schema.Decode[domain.HousekeepingTaskPatch](cleaned)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update housekeeping task")
			return
		}
		updated, err := h.Service.UpdateHousekeepingTask(ctx, id, patch)
		if domain.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Housekeeping task not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to update housekeeping task")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message})
}

func writeValidationError(w http.ResponseWriter, errs []schema.FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"message": "Invalid data",
		"errors":  errs,
	})
}
