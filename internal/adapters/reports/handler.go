package reports

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"marketcore/internal/blob"
)

// Handler exposes export scheduling and artifact download over HTTP.
type Handler struct {
	Scheduler ExportScheduler
	Blobs     blob.Store
}

// NewHandler constructs a reports handler.
func NewHandler(scheduler ExportScheduler, blobs blob.Store) *Handler {
	return &Handler{Scheduler: scheduler, Blobs: blobs}
}

type exportRequest struct {
	Resource    string   `json:"resource"`
	Formats     []Format `json:"formats"`
	RequestedBy string   `json:"requestedBy"`
}

// ServeHTTP routes /api/reports/exports requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	const prefix = "/api/reports/exports"
	if !strings.HasPrefix(path, prefix) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.TrimPrefix(rest, "/")

	id, sub := rest, ""
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		id, sub = rest[:idx], rest[idx+1:]
	}

	switch {
	case rest == "" && r.Method == http.MethodPost:
		h.createExport(w, r)
	case id != "" && sub == "" && r.Method == http.MethodGet:
		h.getExport(w, id)
	case id != "" && sub == "download" && r.Method == http.MethodGet:
		h.downloadArtifact(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) createExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}
	record, err := h.Scheduler.EnqueueExport(r.Context(), ExportInput{
		Resource:    req.Resource,
		Formats:     req.Formats,
		RequestedBy: req.RequestedBy,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, record)
}

func (h *Handler) getExport(w http.ResponseWriter, id string) {
	record, ok := h.Scheduler.GetExport(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Export not found")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// downloadArtifact serves a finished artifact. S3-backed stores get a
// redirect to a presigned URL; other drivers stream the payload.
func (h *Handler) downloadArtifact(w http.ResponseWriter, r *http.Request, id string) {
	record, ok := h.Scheduler.GetExport(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Export not found")
		return
	}
	if record.Status != ExportStatusSucceeded {
		writeError(w, http.StatusConflict, "Export not ready")
		return
	}

	format := Format(r.URL.Query().Get("format"))
	var artifact *ExportArtifact
	for i := range record.Artifacts {
		if format == "" || record.Artifacts[i].Format == format {
			artifact = &record.Artifacts[i]
			break
		}
	}
	if artifact == nil || h.Blobs == nil {
		writeError(w, http.StatusNotFound, "Artifact not found")
		return
	}

	if h.Blobs.Driver() == blob.DriverS3 {
		url, err := h.Blobs.PresignURL(r.Context(), artifact.Key, blob.SignedURLOptions{Method: http.MethodGet})
		if err == nil {
			http.Redirect(w, r, url, http.StatusTemporaryRedirect)
			return
		}
	}

	info, rc, err := h.Blobs.Get(r.Context(), artifact.Key)
	if err != nil {
		writeError(w, http.StatusNotFound, "Artifact not found")
		return
	}
	defer func() { _ = rc.Close() }()
	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
