package auditsvc

import (
	"time"

	"github.com/corray333/backoffice/internal/service/models/auditlog"
	"github.com/google/uuid"
)

// BuildUpdateEntries diffs two audited-field snapshots of one record and
// returns an entry per changed field. A nil value and an empty string are
// different values. Without an actor there is nobody to attribute the
// change to, so nothing is recorded.
func BuildUpdateEntries(
	module string,
	recordID uuid.UUID,
	actorID *uuid.UUID,
	before, after map[string]*string,
	now time.Time,
) []auditlog.AuditLog {
	if actorID == nil {
		return nil
	}

	var entries []auditlog.AuditLog
	for _, field := range auditlog.AuditedFields(module) {
		oldValue, newValue := before[field], after[field]
		if equalValue(oldValue, newValue) {
			continue
		}
		entries = append(entries, auditlog.AuditLog{
			Module:    module,
			RecordID:  recordID,
			FieldName: field,
			OldValue:  oldValue,
			NewValue:  newValue,
			ChangedBy: actorID,
			ChangedAt: now,
		})
	}

	return entries
}

// BuildDeleteEntries records a deletion: one entry per audited field with
// the value at deletion time as oldValue and no newValue.
func BuildDeleteEntries(
	module string,
	recordID uuid.UUID,
	actorID *uuid.UUID,
	values map[string]*string,
	now time.Time,
) []auditlog.AuditLog {
	if actorID == nil {
		return nil
	}

	fields := auditlog.AuditedFields(module)
	entries := make([]auditlog.AuditLog, 0, len(fields))
	for _, field := range fields {
		entries = append(entries, auditlog.AuditLog{
			Module:    module,
			RecordID:  recordID,
			FieldName: field,
			OldValue:  values[field],
			NewValue:  nil,
			ChangedBy: actorID,
			ChangedAt: now,
		})
	}

	return entries
}

func equalValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
