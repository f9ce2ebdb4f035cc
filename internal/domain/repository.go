package domain

import (
	"context"
	"time"
)

// PageRequest carries the cursor continuation token and the bounded page
// size shared by every filtered query. Cursor is an inclusive lower bound.
type PageRequest struct {
	Cursor   int64
	PageSize int
}

// AppFilter narrows application queries. Filters are conjunctive.
type AppFilter struct {
	Name        string
	Active      *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        PageRequest
}

// ClientFilter narrows client queries
type ClientFilter struct {
	AppID string
	Name  string
	Page  PageRequest
}

// GrantFilter narrows grant queries
type GrantFilter struct {
	ClientID         string
	ResourceServerID string
	Page             PageRequest
}

// ResourceServerFilter narrows resource server queries
type ResourceServerFilter struct {
	Name     string
	Audience string
	Page     PageRequest
}

// ProductFilter narrows product queries
type ProductFilter struct {
	Name        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        PageRequest
}

// ProductClientFilter narrows product client queries
type ProductClientFilter struct {
	ProductID string
	Name      string
	Page      PageRequest
}

// AppRepository persists App aggregates. GetByID returns (nil, nil) when no
// non-deleted row matches; absence-to-error translation belongs to the
// application services, never to the repository.
type AppRepository interface {
	GetByID(ctx context.Context, id string) (*App, error)
	Get(ctx context.Context, filter AppFilter) ([]*App, error)
	Create(ctx context.Context, app *App) error
	Update(ctx context.Context, app *App) (*App, error)
}

// ClientRepository persists Client aggregates
type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*Client, error)
	Get(ctx context.Context, filter ClientFilter) ([]*Client, error)
	Create(ctx context.Context, client *Client) error
	Update(ctx context.Context, client *Client) (*Client, error)
	CountActiveByAppID(ctx context.Context, appID string) (int, error)
}

// GrantRepository persists Grant aggregates
type GrantRepository interface {
	GetByID(ctx context.Context, id string) (*Grant, error)
	Get(ctx context.Context, filter GrantFilter) ([]*Grant, error)
	GetByClientID(ctx context.Context, clientID string) ([]*Grant, error)
	Create(ctx context.Context, grant *Grant) error
	Update(ctx context.Context, grant *Grant) (*Grant, error)
}

// ResourceServerRepository persists ResourceServer aggregates
type ResourceServerRepository interface {
	GetByID(ctx context.Context, id string) (*ResourceServer, error)
	Get(ctx context.Context, filter ResourceServerFilter) ([]*ResourceServer, error)
	Create(ctx context.Context, server *ResourceServer) error
	Update(ctx context.Context, server *ResourceServer) (*ResourceServer, error)
}

// ProductRepository persists Product aggregates
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	Get(ctx context.Context, filter ProductFilter) ([]*Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) (*Product, error)
}

// ProductClientRepository persists ProductClient aggregates
type ProductClientRepository interface {
	GetByID(ctx context.Context, id string) (*ProductClient, error)
	Get(ctx context.Context, filter ProductClientFilter) ([]*ProductClient, error)
	Create(ctx context.Context, productClient *ProductClient) error
	Update(ctx context.Context, productClient *ProductClient) (*ProductClient, error)
}
