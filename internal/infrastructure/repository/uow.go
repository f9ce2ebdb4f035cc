package repository

import (
	"context"
	"errors"

	"github.com/ipede/app-admin-service/internal/domain"
	"github.com/ipede/app-admin-service/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// UnitOfWork scopes every aggregate repository to one pgx transaction. All
// repositories are built eagerly when the unit of work begins, so there is
// no lazy-init state to guard; the struct is request-scoped and must not be
// shared between goroutines.
type UnitOfWork struct {
	tx     pgx.Tx
	logger *zap.Logger

	apps            *AppRepository
	clients         *ClientRepository
	grants          *GrantRepository
	resourceServers *ResourceServerRepository
	products        *ProductRepository
	productClients  *ProductClientRepository
}

// UnitOfWorkFactory begins request-scoped units of work against the pool
type UnitOfWorkFactory struct {
	db     *database.Postgres
	logger *zap.Logger
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory
func NewUnitOfWorkFactory(db *database.Postgres, logger *zap.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db, logger: logger}
}

// Begin opens a transaction and builds one repository per aggregate on it
func (f *UnitOfWorkFactory) Begin(ctx context.Context) (domain.UnitOfWork, error) {
	tx, err := f.db.BeginTx(ctx)
	if err != nil {
		f.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	q := database.NewTxQuerier(tx, f.logger)
	return &UnitOfWork{
		tx:              tx,
		logger:          f.logger,
		apps:            NewAppRepository(q, f.logger),
		clients:         NewClientRepository(q, f.logger),
		grants:          NewGrantRepository(q, f.logger),
		resourceServers: NewResourceServerRepository(q, f.logger),
		products:        NewProductRepository(q, f.logger),
		productClients:  NewProductClientRepository(q, f.logger),
	}, nil
}

func (u *UnitOfWork) Apps() domain.AppRepository                       { return u.apps }
func (u *UnitOfWork) Clients() domain.ClientRepository                 { return u.clients }
func (u *UnitOfWork) Grants() domain.GrantRepository                   { return u.grants }
func (u *UnitOfWork) ResourceServers() domain.ResourceServerRepository { return u.resourceServers }
func (u *UnitOfWork) Products() domain.ProductRepository               { return u.products }
func (u *UnitOfWork) ProductClients() domain.ProductClientRepository   { return u.productClients }

// SaveChanges commits the transaction. All mutations staged through any
// repository become visible together; on error none of them do.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	if err := u.tx.Commit(ctx); err != nil {
		u.logger.Error("failed to commit unit of work", zap.Error(err))
		return err
	}
	return nil
}

// Rollback discards staged mutations. Safe to defer: after a commit the
// underlying transaction is already closed and the rollback is a no-op.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	err := u.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		u.logger.Error("failed to roll back unit of work", zap.Error(err))
		return err
	}
	return nil
}
