package domain

import "context"

// UnitOfWork scopes one transaction over all aggregate repositories. Every
// repository is constructed when the unit of work begins and shares the same
// transaction; mutations staged through any of them become visible only
// after SaveChanges, which commits all of them atomically. A unit of work
// lives for one request and is never shared between goroutines.
type UnitOfWork interface {
	Apps() AppRepository
	Clients() ClientRepository
	Grants() GrantRepository
	ResourceServers() ResourceServerRepository
	Products() ProductRepository
	ProductClients() ProductClientRepository

	// SaveChanges commits every staged mutation as a single atomic
	// operation. On failure no partial mutation is visible.
	SaveChanges(ctx context.Context) error

	// Rollback discards staged mutations. Calling it after a successful
	// SaveChanges is a no-op, so it is safe to defer.
	Rollback(ctx context.Context) error
}

// UnitOfWorkFactory begins a new request-scoped unit of work
type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
