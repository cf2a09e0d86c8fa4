// Package schema declares the field schemas for every market entity and
// validates inbound JSON payloads against them. Validation returns the
// cleaned payload together with the complete list of field errors, so a
// client sees every violation at once rather than the first.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"marketcore/pkg/domain"
)

// Kind identifies the wire type a field accepts.
type Kind string

const (
	// KindString accepts any JSON string.
	KindString Kind = "string"
	// KindDecimal accepts a decimal numeric string such as "1250.50".
	KindDecimal Kind = "decimal"
	// KindInt accepts a JSON integer.
	KindInt Kind = "integer"
	// KindEnum accepts a string drawn from a closed set.
	KindEnum Kind = "enum"
	// KindTimestamp accepts an RFC3339 string.
	KindTimestamp Kind = "timestamp"
	// KindID accepts an integer entity identity.
	KindID Kind = "id"
)

// Field describes one validated payload field.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Nullable bool
	Enum     []string
	Min      *int
	Max      *int
}

// Schema is the validated field set of one entity type.
type Schema struct {
	Entity domain.EntityType
	Fields []Field
}

// FieldError reports one validation violation on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field error found in a payload. The
// response boundary renders it as a 400 with the full error list.
type ValidationError struct {
	Entity domain.EntityType
	Errors []FieldError
}

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("invalid %s payload: %s", e.Entity, strings.Join(parts, "; "))
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func intPtr(v int) *int { return &v }

func enumValues[E ~string](values ...E) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

// Vendors is the vendor payload schema.
var Vendors = Schema{
	Entity: domain.EntityVendor,
	Fields: []Field{
		{Name: "name", Kind: KindString, Required: true},
		{Name: "shopNumber", Kind: KindString, Required: true},
		{Name: "contactPerson", Kind: KindString, Required: true},
		{Name: "phone", Kind: KindString, Required: true},
		{Name: "email", Kind: KindString, Nullable: true},
		{Name: "category", Kind: KindEnum, Required: true, Enum: enumValues(domain.CategoryVegetables, domain.CategoryFruits, domain.CategoryGrains, domain.CategorySpices)},
		{Name: "status", Kind: KindEnum, Enum: enumValues(domain.VendorStatusActive, domain.VendorStatusInactive)},
		{Name: "dailySales", Kind: KindDecimal},
	},
}

// Customers is the customer payload schema.
var Customers = Schema{
	Entity: domain.EntityCustomer,
	Fields: []Field{
		{Name: "name", Kind: KindString, Required: true},
		{Name: "phone", Kind: KindString, Required: true},
		{Name: "email", Kind: KindString, Nullable: true},
		{Name: "address", Kind: KindString, Nullable: true},
		{Name: "customerType", Kind: KindEnum, Enum: enumValues(domain.CustomerTypeRetail, domain.CustomerTypeWholesale)},
		{Name: "totalPurchases", Kind: KindDecimal},
	},
}

// Inventory is the inventory item payload schema.
var Inventory = Schema{
	Entity: domain.EntityInventoryItem,
	Fields: []Field{
		{Name: "itemName", Kind: KindString, Required: true},
		{Name: "category", Kind: KindEnum, Required: true, Enum: enumValues(domain.CategoryVegetables, domain.CategoryFruits, domain.CategoryGrains, domain.CategorySpices)},
		{Name: "currentStock", Kind: KindDecimal, Required: true},
		{Name: "unitPrice", Kind: KindDecimal, Required: true},
		{Name: "quality", Kind: KindEnum, Enum: enumValues(domain.QualityExcellent, domain.QualityGood, domain.QualityAverage, domain.QualityPoor)},
		{Name: "qualityPercentage", Kind: KindInt, Min: intPtr(0), Max: intPtr(100)},
		{Name: "vendorId", Kind: KindID, Nullable: true},
	},
}

// Crates is the crate payload schema.
var Crates = Schema{
	Entity: domain.EntityCrate,
	Fields: []Field{
		{Name: "crateNumber", Kind: KindString, Required: true},
		{Name: "status", Kind: KindEnum, Enum: enumValues(domain.CrateStatusAvailable, domain.CrateStatusInTransit, domain.CrateStatusUnderRepair)},
		{Name: "capacity", Kind: KindDecimal, Required: true},
		{Name: "currentLoad", Kind: KindDecimal},
		{Name: "assignedVendor", Kind: KindID, Nullable: true},
		{Name: "lastLocation", Kind: KindString, Nullable: true},
	},
}

// ColdStorage is the cold storage unit payload schema.
var ColdStorage = Schema{
	Entity: domain.EntityColdStorageUnit,
	Fields: []Field{
		{Name: "unitName", Kind: KindString, Required: true},
		{Name: "temperature", Kind: KindDecimal, Required: true},
		{Name: "humidity", Kind: KindInt, Required: true},
		{Name: "capacity", Kind: KindDecimal, Required: true},
		{Name: "currentLoad", Kind: KindDecimal},
		{Name: "status", Kind: KindEnum, Enum: enumValues(domain.ColdStorageStatusOptimal, domain.ColdStorageStatusWarning, domain.ColdStorageStatusCritical)},
		{Name: "lastMaintenance", Kind: KindTimestamp, Nullable: true},
		{Name: "nextMaintenance", Kind: KindTimestamp, Nullable: true},
	},
}

// Transactions is the sale transaction payload schema.
var Transactions = Schema{
	Entity: domain.EntityTransaction,
	Fields: []Field{
		{Name: "transactionId", Kind: KindString, Required: true},
		{Name: "vendorId", Kind: KindID, Nullable: true},
		{Name: "customerId", Kind: KindID, Nullable: true},
		{Name: "items", Kind: KindString, Required: true},
		{Name: "totalAmount", Kind: KindDecimal, Required: true},
		{Name: "status", Kind: KindEnum, Enum: enumValues(domain.TransactionStatusCompleted, domain.TransactionStatusPending, domain.TransactionStatusCancelled)},
		{Name: "paymentMethod", Kind: KindString},
	},
}

// Housekeeping is the housekeeping task payload schema.
var Housekeeping = Schema{
	Entity: domain.EntityHousekeepingTask,
	Fields: []Field{
		{Name: "taskName", Kind: KindString, Required: true},
		{Name: "description", Kind: KindString, Nullable: true},
		{Name: "area", Kind: KindString, Required: true},
		{Name: "status", Kind: KindEnum, Enum: enumValues(domain.TaskStatusPending, domain.TaskStatusActive, domain.TaskStatusCompleted)},
		{Name: "priority", Kind: KindEnum, Enum: enumValues(domain.TaskPriorityHigh, domain.TaskPriorityMedium, domain.TaskPriorityLow)},
		{Name: "assignedTo", Kind: KindString, Nullable: true},
		{Name: "scheduledTime", Kind: KindTimestamp, Nullable: true},
		{Name: "completedAt", Kind: KindTimestamp, Nullable: true},
	},
}

// Validate checks a full payload: required fields must be present, every
// supplied field must coerce, and undeclared fields are dropped. The
// cleaned payload contains only declared fields.
func (s Schema) Validate(payload map[string]any) (map[string]any, []FieldError) {
	return s.validate(payload, true)
}

// ValidatePartial checks a patch payload: absent fields are fine, every
// supplied field must still coerce. An empty payload is a valid patch.
func (s Schema) ValidatePartial(payload map[string]any) (map[string]any, []FieldError) {
	return s.validate(payload, false)
}

func (s Schema) validate(payload map[string]any, requireAll bool) (map[string]any, []FieldError) {
	cleaned := make(map[string]any)
	var errs []FieldError
	for _, field := range s.Fields {
		raw, ok := payload[field.Name]
		if !ok {
			if requireAll && field.Required {
				errs = append(errs, FieldError{Field: field.Name, Message: "required field missing"})
			}
			continue
		}
		value, err := coerceField(field, raw)
		if err != nil {
			errs = append(errs, FieldError{Field: field.Name, Message: err.Error()})
			continue
		}
		cleaned[field.Name] = value
	}
	if len(errs) > 0 {
		sort.Slice(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
		return nil, errs
	}
	return cleaned, nil
}

func coerceField(field Field, raw any) (any, error) {
	if raw == nil {
		if field.Nullable {
			return nil, nil
		}
		return nil, fmt.Errorf("must not be null")
	}
	switch field.Kind {
	case KindString:
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expects string")
		}
		return v, nil
	case KindDecimal:
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expects decimal string")
		}
		if !isDecimal(v) {
			return nil, fmt.Errorf("expects decimal string")
		}
		return v, nil
	case KindInt, KindID:
		n, err := coerceInteger(raw)
		if err != nil {
			return nil, err
		}
		if field.Min != nil && n < int64(*field.Min) {
			return nil, rangeError(field)
		}
		if field.Max != nil && n > int64(*field.Max) {
			return nil, rangeError(field)
		}
		return n, nil
	case KindEnum:
		v, ok := raw.(string)
		if !ok {
			return nil, enumError(field.Enum)
		}
		for _, candidate := range field.Enum {
			if candidate == v {
				return v, nil
			}
		}
		return nil, enumError(field.Enum)
	case KindTimestamp:
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expects RFC3339 timestamp")
		}
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("expects RFC3339 timestamp")
		}
		return parsed.UTC().Format(time.RFC3339Nano), nil
	default:
		return nil, fmt.Errorf("unsupported field kind %q", field.Kind)
	}
}

func coerceInteger(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("expects integer")
		}
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("expects integer")
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expects integer")
	}
}

func rangeError(field Field) error {
	switch {
	case field.Min != nil && field.Max != nil:
		return fmt.Errorf("must be between %d and %d", *field.Min, *field.Max)
	case field.Min != nil:
		return fmt.Errorf("must be at least %d", *field.Min)
	default:
		return fmt.Errorf("must be at most %d", *field.Max)
	}
}

func enumError(options []string) error {
	return fmt.Errorf("value must be one of: %s", strings.Join(options, ", "))
}

// isDecimal accepts an optionally signed digit run with an optional
// fractional part, the textual form the upstream numeric columns store.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i++
	}
	digits := 0
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			break
		}
		digits++
	}
	if digits == 0 {
		return false
	}
	if i == len(s) {
		return true
	}
	if s[i] != '.' {
		return false
	}
	i++
	frac := 0
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
		frac++
	}
	return frac > 0
}

// Decode round-trips a cleaned payload into the typed shape. The cleaned
// map only holds values the schema already coerced, so failures indicate
// a programming error rather than bad input.
func Decode[T any](cleaned map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return out, fmt.Errorf("encode cleaned payload: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode cleaned payload: %w", err)
	}
	return out, nil
}
