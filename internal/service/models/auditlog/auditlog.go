package auditlog

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is an immutable record of one audited field changing value.
// Entries are created by the audit recorder inside the mutating transaction
// and are never updated or deleted by application code.
type AuditLog struct {
	ID            uuid.UUID  `json:"id"`
	Module        string     `json:"module"`
	RecordID      uuid.UUID  `json:"recordId"`
	FieldName     string     `json:"fieldName"`
	OldValue      *string    `json:"oldValue"`
	NewValue      *string    `json:"newValue"`
	ChangedBy     *uuid.UUID `json:"changedBy,omitempty"`
	ChangedByName string     `json:"changedByName,omitempty"`
	ChangedAt     time.Time  `json:"changedAt"`
}
