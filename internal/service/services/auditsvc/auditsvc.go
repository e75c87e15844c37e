package auditsvc

import (
	"context"

	"github.com/corray333/backoffice/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/backoffice/internal/dal/postgres"
	"github.com/corray333/backoffice/internal/dal/uow"
	"github.com/corray333/backoffice/internal/service/models/apperrors"
	"github.com/corray333/backoffice/internal/service/models/auditlog"
	"github.com/google/uuid"
)

// AuditService answers audit trail queries. Writing entries is done by the
// mutating services inside their own transactions with the builders in
// this package.
type AuditService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	AuditLogs() iauditrepo.Repository
}

// option is a function that configures the AuditService.
type option func(*AuditService)

// MustNewAuditService creates a new AuditService.
func MustNewAuditService(opts ...option) *AuditService {
	s := &AuditService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		if s.pgClient == nil {
			panic("auditsvc: no postgres client configured")
		}
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the AuditService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *AuditService) {
		s.pgClient = pgClient
	}
}

// WithUnitOfWorkFactory overrides the unit-of-work constructor.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *AuditService) {
		s.newUOW = factory
	}
}

// GetLogs returns the audit trail of one record, newest first, with the
// changing user's name resolved.
func (s *AuditService) GetLogs(
	ctx context.Context,
	module string,
	recordID uuid.UUID,
	limit, offset int,
) ([]auditlog.AuditLog, error) {
	if len(auditlog.AuditedFields(module)) == 0 {
		return nil, apperrors.BadRequest("unknown audit module %q", module)
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	return s.newUOW().AuditLogs().ListByRecord(ctx, module, recordID, limit, offset)
}
