package auditsvc

import (
	"testing"
	"time"

	"github.com/corray333/backoffice/internal/service/models/auditlog"
	"github.com/corray333/backoffice/internal/service/models/order"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestBuildUpdateEntries_OnlyChangedFields(t *testing.T) {
	recordID := uuid.New()
	actorID := uuid.New()
	now := time.Now()

	before := map[string]*string{
		"status":       ptr("PENDING"),
		"address":      ptr("12 Main St"),
		"phone":        ptr("555-0100"),
		"email":        nil,
		"customerName": ptr("Ann"),
	}
	after := map[string]*string{
		"status":       ptr("DONE"),
		"address":      ptr("12 Main St"),
		"phone":        ptr("555-0100"),
		"email":        nil,
		"customerName": ptr("Ann"),
	}

	entries := BuildUpdateEntries(order.AuditModule, recordID, &actorID, before, after, now)
	require.Len(t, entries, 1)
	require.Equal(t, "status", entries[0].FieldName)
	require.Equal(t, "PENDING", *entries[0].OldValue)
	require.Equal(t, "DONE", *entries[0].NewValue)
	require.Equal(t, actorID, *entries[0].ChangedBy)
	require.Equal(t, now, entries[0].ChangedAt)
}

func TestBuildUpdateEntries_NilAndEmptyDiffer(t *testing.T) {
	recordID := uuid.New()
	actorID := uuid.New()

	before := map[string]*string{"address": nil}
	after := map[string]*string{"address": ptr("")}

	entries := BuildUpdateEntries(order.AuditModule, recordID, &actorID, before, after, time.Now())
	require.Len(t, entries, 1)
	require.Nil(t, entries[0].OldValue)
	require.Equal(t, "", *entries[0].NewValue)
}

func TestBuildUpdateEntries_NoActorRecordsNothing(t *testing.T) {
	before := map[string]*string{"status": ptr("PENDING")}
	after := map[string]*string{"status": ptr("DONE")}

	entries := BuildUpdateEntries(order.AuditModule, uuid.New(), nil, before, after, time.Now())
	require.Empty(t, entries)
}

func TestBuildUpdateEntries_UnknownModule(t *testing.T) {
	actorID := uuid.New()
	entries := BuildUpdateEntries("Invoice", uuid.New(), &actorID,
		map[string]*string{"x": ptr("1")}, map[string]*string{"x": ptr("2")}, time.Now())
	require.Empty(t, entries)
}

func TestBuildDeleteEntries_OnePerAuditedField(t *testing.T) {
	recordID := uuid.New()
	actorID := uuid.New()

	values := map[string]*string{
		"status":  ptr("DONE"),
		"address": ptr("12 Main St"),
	}

	entries := BuildDeleteEntries(order.AuditModule, recordID, &actorID, values, time.Now())
	require.Len(t, entries, len(auditlog.AuditedFields(order.AuditModule)))
	for _, entry := range entries {
		require.Nil(t, entry.NewValue)
		require.Equal(t, recordID, entry.RecordID)
	}
}
