package reports

import (
	"context"
	"log/slog"
)

// SlogAuditLog writes export audit entries through a structured logger,
// giving deployments an audit trail without extra storage.
type SlogAuditLog struct {
	logger *slog.Logger
}

// NewSlogAuditLog wraps logger as an AuditLogger.
func NewSlogAuditLog(logger *slog.Logger) *SlogAuditLog {
	return &SlogAuditLog{logger: logger}
}

// Record implements AuditLogger.
func (l *SlogAuditLog) Record(ctx context.Context, entry AuditEntry) {
	if l.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("audit_id", entry.ID),
		slog.String("action", entry.Action),
		slog.String("resource", entry.Resource),
		slog.String("status", string(entry.Status)),
		slog.Time("occurred_at", entry.OccurredAt),
	}
	if entry.Actor != "" {
		attrs = append(attrs, slog.String("actor", entry.Actor))
	}
	if entry.Note != "" {
		attrs = append(attrs, slog.String("note", entry.Note))
	}
	l.logger.LogAttrs(ctx, slog.LevelInfo, "export audit", attrs...)
}
