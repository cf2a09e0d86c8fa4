// Package reports renders resource listings into downloadable report
// artifacts. Export requests run on a background worker and artifacts
// land in the configured blob store.
package reports

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"marketcore/internal/blob"
	"marketcore/internal/core"
)

// Format identifies a report rendering.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ExportStatus describes the lifecycle stage of an export request.
type ExportStatus string

const (
	ExportStatusQueued    ExportStatus = "queued"
	ExportStatusRunning   ExportStatus = "running"
	ExportStatusSucceeded ExportStatus = "succeeded"
	ExportStatusFailed    ExportStatus = "failed"
)

// ExportArtifact captures a stored report artifact.
type ExportArtifact struct {
	Key         string    `json:"key"`
	Format      Format    `json:"format"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	URL         string    `json:"url,omitempty"`
	Rows        int       `json:"rows"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ExportRecord tracks an export request and resulting artifacts.
type ExportRecord struct {
	ID          string           `json:"id"`
	Resource    string           `json:"resource"`
	Formats     []Format         `json:"formats"`
	Status      ExportStatus     `json:"status"`
	Error       string           `json:"error,omitempty"`
	Artifacts   []ExportArtifact `json:"artifacts,omitempty"`
	RequestedBy string           `json:"requestedBy,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
}

// ExportInput represents an enqueue request for the worker.
type ExportInput struct {
	Resource    string
	Formats     []Format
	RequestedBy string
}

// ExportScheduler queues report export requests and exposes status.
type ExportScheduler interface {
	EnqueueExport(ctx context.Context, input ExportInput) (ExportRecord, error)
	GetExport(id string) (ExportRecord, bool)
}

// AuditLogger records export audit entries.
type AuditLogger interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditEntry captures audit trail metadata for exports.
type AuditEntry struct {
	ID         string       `json:"id"`
	Action     string       `json:"action"`
	Actor      string       `json:"actor,omitempty"`
	Resource   string       `json:"resource"`
	Status     ExportStatus `json:"status"`
	Note       string       `json:"note,omitempty"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// exportColumns fixes the CSV column order per resource, matching the
// wire field order of the listings.
var exportColumns = map[string][]string{
	"vendors":      {"id", "name", "shopNumber", "contactPerson", "phone", "email", "category", "status", "dailySales", "createdAt"},
	"customers":    {"id", "name", "phone", "email", "address", "customerType", "totalPurchases", "createdAt"},
	"inventory":    {"id", "itemName", "category", "currentStock", "unitPrice", "quality", "qualityPercentage", "vendorId", "lastUpdated"},
	"crates":       {"id", "crateNumber", "status", "capacity", "currentLoad", "assignedVendor", "lastLocation", "createdAt"},
	"cold-storage": {"id", "unitName", "temperature", "humidity", "capacity", "currentLoad", "status", "lastMaintenance", "nextMaintenance"},
	"transactions": {"id", "transactionId", "vendorId", "customerId", "items", "totalAmount", "status", "paymentMethod", "createdAt"},
	"housekeeping": {"id", "taskName", "description", "area", "status", "priority", "assignedTo", "scheduledTime", "completedAt", "createdAt"},
}

// Worker executes report exports asynchronously.
type Worker struct {
	service *core.Service
	store   blob.Store
	audit   AuditLogger

	queue chan exportTask
	mu    sync.RWMutex
	jobs  map[string]*ExportRecord

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type exportTask struct {
	id    string
	input ExportInput
}

// NewWorker constructs an export worker.
func NewWorker(svc *core.Service, store blob.Store, audit AuditLogger) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		service: svc,
		store:   store,
		audit:   audit,
		queue:   make(chan exportTask, 32),
		jobs:    make(map[string]*ExportRecord),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins processing export requests.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop signals the worker to halt and waits for completion.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case task := <-w.queue:
			w.process(task)
		}
	}
}

// EnqueueExport schedules an export job and returns the queued record.
func (w *Worker) EnqueueExport(ctx context.Context, input ExportInput) (ExportRecord, error) {
	if w.service == nil {
		return ExportRecord{}, fmt.Errorf("export service not configured")
	}
	resource := strings.TrimSpace(input.Resource)
	if _, ok := exportColumns[resource]; !ok {
		return ExportRecord{}, fmt.Errorf("unknown export resource %q", resource)
	}

	formats := input.Formats
	if len(formats) == 0 {
		formats = []Format{FormatJSON, FormatCSV}
	}
	uniq := make([]Format, 0, len(formats))
	seen := make(map[Format]struct{})
	for _, format := range formats {
		if _, dup := seen[format]; dup {
			continue
		}
		if format != FormatCSV && format != FormatJSON {
			return ExportRecord{}, fmt.Errorf("unsupported export format %q", format)
		}
		uniq = append(uniq, format)
		seen[format] = struct{}{}
	}

	id := newID()
	now := time.Now().UTC()
	record := ExportRecord{
		ID:          id,
		Resource:    resource,
		Formats:     uniq,
		Status:      ExportStatusQueued,
		RequestedBy: input.RequestedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	w.mu.Lock()
	w.jobs[id] = &record
	queued := record.copy()
	w.mu.Unlock()

	w.recordAudit(ctx, id, ExportStatusQueued, "")

	select {
	case w.queue <- exportTask{id: id, input: input}:
	default:
		w.mu.Lock()
		delete(w.jobs, id)
		w.mu.Unlock()
		return ExportRecord{}, fmt.Errorf("export queue full")
	}
	return queued, nil
}

// GetExport returns a snapshot of the export record.
func (w *Worker) GetExport(id string) (ExportRecord, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	record, ok := w.jobs[id]
	if !ok {
		return ExportRecord{}, false
	}
	return record.copy(), true
}

func (w *Worker) process(task exportTask) {
	w.mu.RLock()
	record, ok := w.jobs[task.id]
	var formats []Format
	var resource string
	if ok {
		formats = append([]Format(nil), record.Formats...)
		resource = record.Resource
	}
	w.mu.RUnlock()
	if !ok {
		return
	}

	w.updateStatus(task.id, ExportStatusRunning, "")

	rows, err := w.fetchRows(resource)
	if err != nil {
		w.fail(task.id, err.Error())
		return
	}

	artifacts := make([]ExportArtifact, 0, len(formats))
	for _, format := range formats {
		artifact, payload, err := render(resource, format, rows)
		if err != nil {
			w.fail(task.id, err.Error())
			return
		}
		artifact.Key = fmt.Sprintf("exports/%s/%s.%s", task.id, resource, format)
		if w.store != nil {
			info, err := w.store.Put(w.ctx, artifact.Key, bytes.NewReader(payload), blob.PutOptions{
				ContentType: artifact.ContentType,
				Metadata:    map[string]string{"resource": resource, "export": task.id},
			})
			if err != nil {
				w.fail(task.id, fmt.Sprintf("store artifact failed: %v", err))
				return
			}
			artifact.URL = info.URL
			artifact.SizeBytes = info.Size
		}
		artifacts = append(artifacts, artifact)
	}
	w.complete(task.id, artifacts)
}

// fetchRows materializes the current listing for a resource as ordered
// JSON objects.
func (w *Worker) fetchRows(resource string) ([]map[string]any, error) {
	ctx := w.ctx
	var listing any
	switch resource {
	case "vendors":
		listing = w.service.ListVendors(ctx)
	case "customers":
		listing = w.service.ListCustomers(ctx)
	case "inventory":
		listing = w.service.ListInventoryItems(ctx, "")
	case "crates":
		listing = w.service.ListCrates(ctx, "")
	case "cold-storage":
		listing = w.service.ListColdStorageUnits(ctx)
	case "transactions":
		listing = w.service.ListTransactions(ctx, nil)
	case "housekeeping":
		listing = w.service.ListHousekeepingTasks(ctx, "")
	default:
		return nil, fmt.Errorf("unknown export resource %q", resource)
	}
	raw, err := json.Marshal(listing)
	if err != nil {
		return nil, fmt.Errorf("encode listing: %w", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return rows, nil
}

func render(resource string, format Format, rows []map[string]any) (ExportArtifact, []byte, error) {
	now := time.Now().UTC()
	switch format {
	case FormatJSON:
		payload, err := json.Marshal(rows)
		if err != nil {
			return ExportArtifact{}, nil, fmt.Errorf("marshal json: %w", err)
		}
		return ExportArtifact{
			Format:      FormatJSON,
			ContentType: "application/json",
			SizeBytes:   int64(len(payload)),
			Rows:        len(rows),
			CreatedAt:   now,
		}, payload, nil
	case FormatCSV:
		columns := exportColumns[resource]
		buf := &bytes.Buffer{}
		writer := csv.NewWriter(buf)
		if err := writer.Write(columns); err != nil {
			return ExportArtifact{}, nil, err
		}
		for _, row := range rows {
			out := make([]string, len(columns))
			for i, column := range columns {
				out[i] = formatValue(row[column])
			}
			if err := writer.Write(out); err != nil {
				return ExportArtifact{}, nil, err
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return ExportArtifact{}, nil, err
		}
		payload := buf.Bytes()
		return ExportArtifact{
			Format:      FormatCSV,
			ContentType: "text/csv",
			SizeBytes:   int64(len(payload)),
			Rows:        len(rows),
			CreatedAt:   now,
		}, payload, nil
	default:
		return ExportArtifact{}, nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(raw)
	}
}

func (w *Worker) updateStatus(id string, status ExportStatus, message string) {
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = status
		record.Error = message
		record.UpdatedAt = now
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, id, status, message)
}

func (w *Worker) complete(id string, artifacts []ExportArtifact) {
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = ExportStatusSucceeded
		record.Error = ""
		record.Artifacts = artifacts
		record.UpdatedAt = now
		record.CompletedAt = &now
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, id, ExportStatusSucceeded, "")
}

func (w *Worker) fail(id, reason string) {
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = ExportStatusFailed
		record.Error = reason
		record.UpdatedAt = now
		record.CompletedAt = &now
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, id, ExportStatusFailed, reason)
}

func (w *Worker) recordAudit(ctx context.Context, id string, status ExportStatus, note string) {
	if w.audit == nil {
		return
	}
	w.mu.RLock()
	var actor, resource string
	if record, ok := w.jobs[id]; ok {
		actor = record.RequestedBy
		resource = record.Resource
	}
	w.mu.RUnlock()
	w.audit.Record(ctx, AuditEntry{
		ID:         newID(),
		Action:     "report_export",
		Actor:      actor,
		Resource:   resource,
		Status:     status,
		Note:       note,
		OccurredAt: time.Now().UTC(),
	})
}

func (r ExportRecord) copy() ExportRecord {
	dup := r
	dup.Formats = append([]Format(nil), r.Formats...)
	if len(r.Artifacts) > 0 {
		dup.Artifacts = append([]ExportArtifact(nil), r.Artifacts...)
	}
	return dup
}

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%x", b[:])
}

// MemoryAuditLog captures audit entries in-memory for assertions.
type MemoryAuditLog struct {
	mu      sync.Mutex
	entries []AuditEntry
}

// Record stores an audit entry.
func (l *MemoryAuditLog) Record(_ context.Context, entry AuditEntry) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Entries returns a defensive copy of recorded audit entries.
func (l *MemoryAuditLog) Entries() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AuditEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
