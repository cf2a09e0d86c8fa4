package schema

import (
	"testing"

	"marketcore/pkg/domain"
)

func TestValidateVendorCleansPayload(t *testing.T) {
	cleaned, errs := Vendors.Validate(map[string]any{
		"name":          "Ramesh Kumar",
		"shopNumber":    "A-15",
		"contactPerson": "Ramesh Kumar",
		"phone":         "+91 9876543210",
		"category":      "vegetables",
		"unknownField":  "dropped",
	})
	if len(errs) != 0 {
		t.Fatalf("expected clean payload, got errors: %v", errs)
	}
	if _, ok := cleaned["unknownField"]; ok {
		t.Fatalf("undeclared field should be dropped")
	}
	if cleaned["category"] != "vegetables" {
		t.Fatalf("expected category preserved, got %v", cleaned["category"])
	}
	if _, ok := cleaned["status"]; ok {
		t.Fatalf("absent optional field should stay absent for store defaulting")
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	_, errs := Vendors.Validate(map[string]any{
		"name":     "Ramesh",
		"category": "seafood",
		"status":   "paused",
	})
	if len(errs) != 5 {
		t.Fatalf("expected 5 errors (3 missing, 2 invalid), got %d: %v", len(errs), errs)
	}
	byField := map[string]string{}
	for _, fe := range errs {
		byField[fe.Field] = fe.Message
	}
	if byField["shopNumber"] != "required field missing" {
		t.Fatalf("unexpected shopNumber error: %q", byField["shopNumber"])
	}
	if byField["category"] == "" || byField["status"] == "" {
		t.Fatalf("expected enum errors for category and status: %v", byField)
	}
}

func TestValidatePartialAllowsEmptyPatch(t *testing.T) {
	cleaned, errs := Vendors.ValidatePartial(map[string]any{})
	if len(errs) != 0 {
		t.Fatalf("empty patch should be valid, got %v", errs)
	}
	if len(cleaned) != 0 {
		t.Fatalf("expected empty cleaned payload, got %v", cleaned)
	}
}

func TestValidatePartialStillChecksTypes(t *testing.T) {
	_, errs := Inventory.ValidatePartial(map[string]any{
		"currentStock":      "not-a-number",
		"qualityPercentage": float64(150),
	})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	byField := map[string]string{}
	for _, fe := range errs {
		byField[fe.Field] = fe.Message
	}
	if byField["currentStock"] != "expects decimal string" {
		t.Fatalf("unexpected currentStock error: %q", byField["currentStock"])
	}
	if byField["qualityPercentage"] != "must be between 0 and 100" {
		t.Fatalf("unexpected qualityPercentage error: %q", byField["qualityPercentage"])
	}
}

func TestValidateNullability(t *testing.T) {
	_, errs := Vendors.ValidatePartial(map[string]any{"name": nil})
	if len(errs) != 1 || errs[0].Message != "must not be null" {
		t.Fatalf("null on non-nullable field should fail, got %v", errs)
	}

	cleaned, errs := Vendors.ValidatePartial(map[string]any{"email": nil})
	if len(errs) != 0 {
		t.Fatalf("null on nullable field should pass, got %v", errs)
	}
	if v, ok := cleaned["email"]; !ok || v != nil {
		t.Fatalf("expected explicit null retained, got %v present=%v", v, ok)
	}
}

func TestValidateTimestamp(t *testing.T) {
	cleaned, errs := Housekeeping.ValidatePartial(map[string]any{
		"scheduledTime": "2025-01-15T06:00:00Z",
	})
	if len(errs) != 0 {
		t.Fatalf("valid timestamp rejected: %v", errs)
	}
	if cleaned["scheduledTime"] != "2025-01-15T06:00:00Z" {
		t.Fatalf("unexpected normalized timestamp: %v", cleaned["scheduledTime"])
	}

	_, errs = Housekeeping.ValidatePartial(map[string]any{"scheduledTime": "yesterday"})
	if len(errs) != 1 || errs[0].Message != "expects RFC3339 timestamp" {
		t.Fatalf("invalid timestamp should fail, got %v", errs)
	}
}

func TestDecimalForms(t *testing.T) {
	valid := []string{"0", "1250.50", "-3.25", "+7", "42"}
	for _, s := range valid {
		if !isDecimal(s) {
			t.Fatalf("expected %q to be a valid decimal", s)
		}
	}
	invalid := []string{"", ".", "1.", ".5", "1e5", "12a", "--1"}
	for _, s := range invalid {
		if isDecimal(s) {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestDecodeInsert(t *testing.T) {
	cleaned, errs := Inventory.Validate(map[string]any{
		"itemName":     "Tomatoes",
		"category":     "vegetables",
		"currentStock": "500",
		"unitPrice":    "40",
		"vendorId":     float64(3),
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	ins, err := Decode[domain.InventoryItemInsert](cleaned)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if ins.ItemName != "Tomatoes" || ins.Category != domain.CategoryVegetables {
		t.Fatalf("unexpected decoded insert: %+v", ins)
	}
	if ins.VendorID == nil || *ins.VendorID != 3 {
		t.Fatalf("expected vendorId 3, got %v", ins.VendorID)
	}
	if ins.QualityPercentage != nil {
		t.Fatalf("absent qualityPercentage should decode nil")
	}
}

func TestDecodePatchPresence(t *testing.T) {
	cleaned, errs := Vendors.ValidatePartial(map[string]any{"status": "inactive"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	patch, err := Decode[domain.VendorPatch](cleaned)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if patch.Status == nil || *patch.Status != domain.VendorStatusInactive {
		t.Fatalf("expected status patch present, got %+v", patch)
	}
	if patch.Name != nil {
		t.Fatalf("untouched field should stay nil")
	}
}

func TestDecodePatchExplicitNull(t *testing.T) {
	cleaned, errs := Vendors.ValidatePartial(map[string]any{"email": nil})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	patch, err := Decode[domain.VendorPatch](cleaned)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !patch.Email.Set || patch.Email.Value != nil {
		t.Fatalf("explicit null should decode as a set clear, got %+v", patch.Email)
	}

	cleaned, errs = Vendors.ValidatePartial(map[string]any{"name": "Raj"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	patch, err = Decode[domain.VendorPatch](cleaned)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if patch.Email.Set {
		t.Fatalf("absent nullable field must stay unset, got %+v", patch.Email)
	}
}
