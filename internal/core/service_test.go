package core

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"marketcore/internal/infra/persistence/memory"
	"marketcore/pkg/domain"
)

func newTestService(opts ...ServiceOption) *Service {
	return NewService(memory.NewStore(), opts...)
}

func TestServiceCreateAndGet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateVendor(ctx, domain.VendorInsert{
		Name: "Ramesh Kumar", ShopNumber: "A-15", ContactPerson: "Ramesh Kumar",
		Phone: "+91 9876543210", Category: domain.CategoryVegetables,
	})
	if err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}
	got, ok := svc.GetVendor(ctx, created.ID)
	if !ok || got.Name != "Ramesh Kumar" {
		t.Fatalf("GetVendor: ok=%v got=%+v", ok, got)
	}
	if _, ok := svc.GetVendor(ctx, 999); ok {
		t.Fatalf("expected missing vendor")
	}
}

func TestServiceListFilters(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateCrate(ctx, domain.CrateInsert{CrateNumber: "CR-001", Capacity: "50"}); err != nil {
		t.Fatalf("CreateCrate: %v", err)
	}
	inTransit := domain.CrateStatusInTransit
	if _, err := svc.CreateCrate(ctx, domain.CrateInsert{CrateNumber: "CR-002", Capacity: "50", Status: inTransit}); err != nil {
		t.Fatalf("CreateCrate: %v", err)
	}

	if got := svc.ListCrates(ctx, ""); len(got) != 2 {
		t.Fatalf("unfiltered listing: %v", got)
	}
	got := svc.ListCrates(ctx, "in_transit")
	if len(got) != 1 || got[0].CrateNumber != "CR-002" {
		t.Fatalf("filtered listing: %v", got)
	}
}

func TestServiceInstrumentsOperations(t *testing.T) {
	metrics := NewExpvarMetricsRecorder("")
	var buf bytes.Buffer
	tracer := NewJSONTracer(&buf)
	svc := newTestService(WithMetrics(metrics), WithTracer(tracer))
	ctx := context.Background()

	if _, err := svc.CreateCustomer(ctx, domain.CustomerInsert{Name: "Anjali", Phone: "123"}); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if _, err := svc.UpdateCustomer(ctx, 42, domain.CustomerPatch{}); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}

	snap := metrics.Snapshot()
	if snap.Operations["create_customer"].Success != 1 {
		t.Fatalf("missing success observation: %+v", snap.Operations)
	}
	if snap.Operations["update_customer"].Errors != 1 {
		t.Fatalf("missing error observation: %+v", snap.Operations)
	}

	entries := tracer.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(entries))
	}
	if entries[1].Status != "error" || entries[1].Error == "" {
		t.Fatalf("error span not recorded: %+v", entries[1])
	}

	var decoded JSONTraceEntry
	dec := json.NewDecoder(&buf)
	if err := dec.Decode(&decoded); err != nil {
		t.Fatalf("decode trace line: %v", err)
	}
	if decoded.Operation != "create_customer" {
		t.Fatalf("unexpected first span: %+v", decoded)
	}
}

func TestPrometheusRecorderObserve(t *testing.T) {
	rec := NewPrometheusMetricsRecorder(nil)
	rec.Observe(context.Background(), "create_vendor", true, 0)
	rec.Observe(context.Background(), "", true, 0)
}

func TestOpenPersistentStoreDefaultsToMemory(t *testing.T) {
	t.Setenv("MARKETCORE_STORAGE_DRIVER", "")
	store, err := OpenPersistentStore()
	if err != nil {
		t.Fatalf("OpenPersistentStore: %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}
}

func TestOpenPersistentStoreSQLite(t *testing.T) {
	t.Setenv("MARKETCORE_STORAGE_DRIVER", "sqlite")
	t.Setenv("MARKETCORE_SQLITE_PATH", filepath.Join(t.TempDir(), "market.db"))
	store, err := OpenPersistentStore()
	if err != nil {
		t.Fatalf("OpenPersistentStore: %v", err)
	}
	if store == nil {
		t.Fatalf("expected store")
	}
}

func TestOpenPersistentStoreUnknownDriver(t *testing.T) {
	t.Setenv("MARKETCORE_STORAGE_DRIVER", "etcd")
	if _, err := OpenPersistentStore(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestOpenMetricsRecorderDrivers(t *testing.T) {
	t.Setenv("MARKETCORE_METRICS_DRIVER", "")
	rec, err := OpenMetricsRecorder(nil)
	if err != nil {
		t.Fatalf("OpenMetricsRecorder: %v", err)
	}
	if _, ok := rec.(*PrometheusMetricsRecorder); !ok {
		t.Fatalf("expected prometheus recorder, got %T", rec)
	}

	t.Setenv("MARKETCORE_METRICS_DRIVER", "expvar")
	rec, err = OpenMetricsRecorder(nil)
	if err != nil {
		t.Fatalf("OpenMetricsRecorder: %v", err)
	}
	if _, ok := rec.(*ExpvarMetricsRecorder); !ok {
		t.Fatalf("expected expvar recorder, got %T", rec)
	}

	t.Setenv("MARKETCORE_METRICS_DRIVER", "statsd")
	if _, err := OpenMetricsRecorder(nil); err == nil {
		t.Fatalf("expected error for unknown metrics driver")
	}
}

func TestOpenTracerWritesSpanLog(t *testing.T) {
	t.Setenv("MARKETCORE_TRACE_PATH", "")
	tracer, closer, err := OpenTracer()
	if err != nil || closer != nil {
		t.Fatalf("disabled tracer: closer=%v err=%v", closer, err)
	}
	if _, ok := tracer.(nopTracer); !ok {
		t.Fatalf("expected nop tracer, got %T", tracer)
	}

	path := filepath.Join(t.TempDir(), "trace.log")
	t.Setenv("MARKETCORE_TRACE_PATH", path)
	tracer, closer, err = OpenTracer()
	if err != nil {
		t.Fatalf("OpenTracer: %v", err)
	}
	_, span := tracer.Start(context.Background(), "create_vendor")
	span.End(nil)
	if err := closer.Close(); err != nil {
		t.Fatalf("close trace log: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace log: %v", err)
	}
	var entry JSONTraceEntry
	if err := json.Unmarshal(data[:len(data)-1], &entry); err != nil {
		t.Fatalf("decode span line: %v (%s)", err, data)
	}
	if entry.Operation != "create_vendor" || entry.Status != "success" {
		t.Fatalf("unexpected span: %+v", entry)
	}
}
