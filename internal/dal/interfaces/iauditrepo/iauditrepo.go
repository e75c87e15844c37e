package iauditrepo

import (
	"context"

	"github.com/corray333/backoffice/internal/service/models/auditlog"
	"github.com/google/uuid"
)

// Repository is the Postgres repository for audit log entries. Entries are
// append-only; there is no update or delete path.
type Repository interface {
	BulkInsert(ctx context.Context, logs []auditlog.AuditLog) error
	ListByRecord(ctx context.Context, module string, recordID uuid.UUID, limit, offset int) ([]auditlog.AuditLog, error)
}
