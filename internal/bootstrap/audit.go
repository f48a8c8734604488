package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger receives operational audit events (startup, shutdown).
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
