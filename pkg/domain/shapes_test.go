package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestOptionalUnmarshalStates(t *testing.T) {
	var patch VendorPatch
	if err := json.Unmarshal([]byte(`{"email":null}`), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !patch.Email.Set || patch.Email.Value != nil {
		t.Fatalf("explicit null should be set with nil value: %+v", patch.Email)
	}
	if patch.Name != nil {
		t.Fatalf("absent field should stay nil")
	}

	patch = VendorPatch{}
	if err := json.Unmarshal([]byte(`{"email":"a@b.com"}`), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !patch.Email.Set || patch.Email.Value == nil || *patch.Email.Value != "a@b.com" {
		t.Fatalf("value should be set: %+v", patch.Email)
	}

	patch = VendorPatch{}
	if err := json.Unmarshal([]byte(`{}`), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if patch.Email.Set {
		t.Fatalf("omitted field should stay unset")
	}
}

func TestPatchApplyClearsNullableFields(t *testing.T) {
	email := "raj@market.in"
	vendor := Vendor{Name: "Raj Singh Vegetables", Email: &email}

	VendorPatch{Email: OptionalNull[string]()}.Apply(&vendor)
	if vendor.Email != nil {
		t.Fatalf("explicit null should clear email, got %v", *vendor.Email)
	}
	if vendor.Name != "Raj Singh Vegetables" {
		t.Fatalf("untouched field changed: %q", vendor.Name)
	}

	VendorPatch{Email: OptionalOf("new@market.in")}.Apply(&vendor)
	if vendor.Email == nil || *vendor.Email != "new@market.in" {
		t.Fatalf("set value not applied: %v", vendor.Email)
	}

	VendorPatch{}.Apply(&vendor)
	if vendor.Email == nil || *vendor.Email != "new@market.in" {
		t.Fatalf("unset patch field must leave email alone: %v", vendor.Email)
	}
}

func TestPatchApplyClearsTimestampFields(t *testing.T) {
	scheduled := time.Date(2025, 1, 15, 6, 0, 0, 0, time.UTC)
	task := HousekeepingTask{TaskName: "Waste Collection", ScheduledTime: &scheduled}

	HousekeepingTaskPatch{ScheduledTime: OptionalNull[time.Time]()}.Apply(&task)
	if task.ScheduledTime != nil {
		t.Fatalf("explicit null should clear scheduledTime, got %v", task.ScheduledTime)
	}
}
