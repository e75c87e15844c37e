package uow

import (
	"context"

	"github.com/corray333/backoffice/internal/dal/interfaces/iauditrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iordernumrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/ireportrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iunitrepo"
	"github.com/corray333/backoffice/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/backoffice/internal/dal/postgres"
	auditrepo "github.com/corray333/backoffice/internal/dal/repositories/auditlog/postgres"
	ordernumrepo "github.com/corray333/backoffice/internal/dal/repositories/ordernumber/postgres"
	orderitemrepo "github.com/corray333/backoffice/internal/dal/repositories/orderitem/postgres"
	orderrepo "github.com/corray333/backoffice/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/corray333/backoffice/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/corray333/backoffice/internal/dal/repositories/product/postgres"
	reportrepo "github.com/corray333/backoffice/internal/dal/repositories/report/postgres"
	unitrepo "github.com/corray333/backoffice/internal/dal/repositories/unit/postgres"
	userrepo "github.com/corray333/backoffice/internal/dal/repositories/user/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitOfWork is the atomicity boundary for order and catalog mutations.
// Begin opens a transaction and rebinds every repository to it, so all
// reads and writes until Commit share one consistent scope.
type UnitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx

	orderRepo     iorderrepo.Repository
	orderItemRepo iorderitemrepo.Repository
	productRepo   iproductrepo.Repository
	unitRepo      iunitrepo.Repository
	userRepo      iuserrepo.Repository
	auditRepo     iauditrepo.Repository
	orderNumRepo  iordernumrepo.Repository
	outboxRepo    ioutboxrepo.Repository
	reportRepo    ireportrepo.Repository
}

// NewUnitOfWork creates a unit of work with repositories bound to the pool.
func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	u := &UnitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *UnitOfWork) bind(conn postgres.Conn) {
	u.orderRepo = orderrepo.NewRepository(conn)
	u.orderItemRepo = orderitemrepo.NewRepository(conn)
	u.productRepo = productrepo.NewRepository(conn)
	u.unitRepo = unitrepo.NewRepository(conn)
	u.userRepo = userrepo.NewRepository(conn)
	u.auditRepo = auditrepo.NewRepository(conn)
	u.orderNumRepo = ordernumrepo.NewRepository(conn)
	u.outboxRepo = outboxrepo.NewRepository(conn)
	u.reportRepo = reportrepo.NewRepository(conn)
}

// Begin opens a transaction and rebinds the repositories to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

// Commit commits the transaction, if one was begun.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback rolls the transaction back. Safe to defer after Begin: rolling
// back an already committed transaction is a no-op error that is discarded.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Rollback(ctx)
}

func (u *UnitOfWork) Orders() iorderrepo.Repository             { return u.orderRepo }
func (u *UnitOfWork) OrderItems() iorderitemrepo.Repository     { return u.orderItemRepo }
func (u *UnitOfWork) Products() iproductrepo.Repository         { return u.productRepo }
func (u *UnitOfWork) Units() iunitrepo.Repository               { return u.unitRepo }
func (u *UnitOfWork) Users() iuserrepo.Repository               { return u.userRepo }
func (u *UnitOfWork) AuditLogs() iauditrepo.Repository          { return u.auditRepo }
func (u *UnitOfWork) OrderNumbers() iordernumrepo.Repository    { return u.orderNumRepo }
func (u *UnitOfWork) Outbox() ioutboxrepo.Repository            { return u.outboxRepo }
func (u *UnitOfWork) Reports() ireportrepo.Repository           { return u.reportRepo }
