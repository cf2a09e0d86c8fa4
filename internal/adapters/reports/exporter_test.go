package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marketcore/internal/blob"
	"marketcore/internal/core"
	"marketcore/internal/infra/persistence/memory"
	"marketcore/pkg/domain"
)

func newTestWorker(t *testing.T) (*Worker, *core.Service, blob.Store, *MemoryAuditLog) {
	t.Helper()
	store := memory.NewStore()
	svc := core.NewService(store)
	blobs := blob.NewMemory()
	audit := &MemoryAuditLog{}
	worker := NewWorker(svc, blobs, audit)
	worker.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := worker.Stop(ctx); err != nil {
			t.Fatalf("Stop: %v", err)
		}
	})
	return worker, svc, blobs, audit
}

func waitForExport(t *testing.T, worker *Worker, id string) ExportRecord {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		record, ok := worker.GetExport(id)
		if ok && (record.Status == ExportStatusSucceeded || record.Status == ExportStatusFailed) {
			return record
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("export %s did not complete", id)
	return ExportRecord{}
}

func TestExportLifecycle(t *testing.T) {
	worker, svc, blobs, audit := newTestWorker(t)
	ctx := context.Background()

	if _, err := svc.CreateVendor(ctx, domain.VendorInsert{
		Name:          "Ramesh Kumar",
		ShopNumber:    "A-15",
		ContactPerson: "Ramesh Kumar",
		Phone:         "+91-9876543210",
		Category:      "vegetables",
	}); err != nil {
		t.Fatalf("CreateVendor: %v", err)
	}

	record, err := worker.EnqueueExport(ctx, ExportInput{
		Resource:    "vendors",
		Formats:     []Format{FormatCSV, FormatJSON},
		RequestedBy: "ops",
	})
	if err != nil {
		t.Fatalf("EnqueueExport: %v", err)
	}
	if record.Status != ExportStatusQueued {
		t.Fatalf("expected queued status, got %s", record.Status)
	}

	done := waitForExport(t, worker, record.ID)
	if done.Status != ExportStatusSucceeded {
		t.Fatalf("expected success, got %s (%s)", done.Status, done.Error)
	}
	if len(done.Artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(done.Artifacts))
	}
	if done.CompletedAt == nil {
		t.Fatalf("expected completion timestamp")
	}

	var csvArtifact *ExportArtifact
	for i := range done.Artifacts {
		if done.Artifacts[i].Format == FormatCSV {
			csvArtifact = &done.Artifacts[i]
		}
	}
	if csvArtifact == nil {
		t.Fatalf("missing csv artifact: %+v", done.Artifacts)
	}
	if csvArtifact.Rows != 1 {
		t.Fatalf("expected 1 row, got %d", csvArtifact.Rows)
	}

	_, rc, err := blobs.Get(ctx, csvArtifact.Key)
	if err != nil {
		t.Fatalf("Get artifact: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", data)
	}
	if !strings.HasPrefix(lines[0], "id,name,shopNumber") {
		t.Fatalf("unexpected csv header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Ramesh Kumar") {
		t.Fatalf("row missing vendor: %q", lines[1])
	}

	entries := audit.Entries()
	if len(entries) == 0 {
		t.Fatalf("expected audit entries")
	}
	last := entries[len(entries)-1]
	if last.Status != ExportStatusSucceeded || last.Actor != "ops" || last.Resource != "vendors" {
		t.Fatalf("unexpected audit entry: %+v", last)
	}
}

func TestEnqueueRejectsUnknownResource(t *testing.T) {
	worker, _, _, _ := newTestWorker(t)
	if _, err := worker.EnqueueExport(context.Background(), ExportInput{Resource: "ledgers"}); err == nil {
		t.Fatalf("expected unknown resource error")
	}
	if _, err := worker.EnqueueExport(context.Background(), ExportInput{
		Resource: "vendors",
		Formats:  []Format{"xml"},
	}); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestExportEmptyListing(t *testing.T) {
	worker, _, _, _ := newTestWorker(t)
	record, err := worker.EnqueueExport(context.Background(), ExportInput{Resource: "housekeeping"})
	if err != nil {
		t.Fatalf("EnqueueExport: %v", err)
	}
	done := waitForExport(t, worker, record.ID)
	if done.Status != ExportStatusSucceeded {
		t.Fatalf("expected success, got %s (%s)", done.Status, done.Error)
	}
	for _, artifact := range done.Artifacts {
		if artifact.Rows != 0 {
			t.Fatalf("expected zero rows, got %+v", artifact)
		}
	}
}

func TestHandlerExportFlow(t *testing.T) {
	worker, _, blobs, _ := newTestWorker(t)
	handler := NewHandler(worker, blobs)

	body := bytes.NewBufferString(`{"resource":"vendors","formats":["json"],"requestedBy":"ops"}`)
	req := httptest.NewRequest("POST", "/api/reports/exports", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != 202 {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var created ExportRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" || created.Resource != "vendors" {
		t.Fatalf("unexpected record: %+v", created)
	}

	waitForExport(t, worker, created.ID)

	req = httptest.NewRequest("GET", "/api/reports/exports/"+created.ID, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var fetched ExportRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if fetched.Status != ExportStatusSucceeded {
		t.Fatalf("expected succeeded, got %s", fetched.Status)
	}

	req = httptest.NewRequest("GET", "/api/reports/exports/"+created.ID+"/download?format=json", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("download: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected artifact content type: %q", ct)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("unexpected artifact body: %q", rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/reports/exports/"+created.ID+"/download?format=csv", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != 404 {
		t.Fatalf("unrequested format: expected 404, got %d", rec.Code)
	}
}

func TestHandlerErrors(t *testing.T) {
	worker, _, blobs, _ := newTestWorker(t)
	handler := NewHandler(worker, blobs)

	req := httptest.NewRequest("GET", "/api/reports/exports/does-not-exist", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != 404 {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	req = httptest.NewRequest("POST", "/api/reports/exports", strings.NewReader(`{"resource":"ledgers"}`))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	req = httptest.NewRequest("DELETE", "/api/reports/exports", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != 405 {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestSlogAuditLogRecords(t *testing.T) {
	var buf bytes.Buffer
	audit := NewSlogAuditLog(slog.New(slog.NewJSONHandler(&buf, nil)))

	audit.Record(context.Background(), AuditEntry{
		ID:         "abc123",
		Action:     "report_export",
		Actor:      "ops",
		Resource:   "vendors",
		Status:     ExportStatusSucceeded,
		OccurredAt: time.Now().UTC(),
	})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode audit line: %v (%s)", err, buf.String())
	}
	if line["msg"] != "export audit" || line["resource"] != "vendors" || line["status"] != "succeeded" {
		t.Fatalf("unexpected audit line: %v", line)
	}
	if line["actor"] != "ops" {
		t.Fatalf("actor missing: %v", line)
	}
}
