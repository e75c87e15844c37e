package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backoffice/internal/dal/postgres"
	"github.com/corray333/backoffice/internal/service/models/auditlog"
	"github.com/google/uuid"
)

// Repository is the Postgres audit log repository. The table is append-only.
type Repository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewRepository creates a new Postgres audit log repository.
func NewRepository(conn postgres.Conn) *Repository {
	return &Repository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert saves audit log entries.
func (r *Repository) BulkInsert(ctx context.Context, logs []auditlog.AuditLog) error {
	if len(logs) == 0 {
		return nil
	}

	builder := r.sb.Insert("audit_logs").
		Columns("module", "record_id", "field_name", "old_value", "new_value", "changed_by", "changed_at")

	for _, log := range logs {
		builder = builder.Values(
			log.Module,
			log.RecordID,
			log.FieldName,
			log.OldValue,
			log.NewValue,
			log.ChangedBy,
			log.ChangedAt,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build audit logs insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to bulk insert audit logs: %w", err)
	}

	return nil
}

// ListByRecord retrieves a record's audit entries, newest first, with the
// changing user's name joined in.
func (r *Repository) ListByRecord(ctx context.Context, module string, recordID uuid.UUID, limit, offset int) ([]auditlog.AuditLog, error) {
	builder := r.sb.
		Select("a.id", "a.module", "a.record_id", "a.field_name", "a.old_value", "a.new_value", "a.changed_by", "COALESCE(u.name, '')", "a.changed_at").
		From("audit_logs a").
		LeftJoin("users u ON u.id = a.changed_by").
		Where(sq.Eq{"a.module": module, "a.record_id": recordID}).
		OrderBy("a.changed_at DESC")

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	var result []auditlog.AuditLog
	for rows.Next() {
		var log auditlog.AuditLog
		err := rows.Scan(
			&log.ID,
			&log.Module,
			&log.RecordID,
			&log.FieldName,
			&log.OldValue,
			&log.NewValue,
			&log.ChangedBy,
			&log.ChangedByName,
			&log.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		result = append(result, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
