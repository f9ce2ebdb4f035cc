package application

import (
	"context"

	"github.com/ipede/app-admin-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockAppRepository struct {
	mock.Mock
}

func (m *MockAppRepository) GetByID(ctx context.Context, id string) (*domain.App, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.App), args.Error(1)
}

func (m *MockAppRepository) Get(ctx context.Context, filter domain.AppFilter) ([]*domain.App, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.App), args.Error(1)
}

func (m *MockAppRepository) Create(ctx context.Context, app *domain.App) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockAppRepository) Update(ctx context.Context, app *domain.App) (*domain.App, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.App), args.Error(1)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) Get(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Client), args.Error(1)
}

func (m *MockClientRepository) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) CountActiveByAppID(ctx context.Context, appID string) (int, error) {
	args := m.Called(ctx, appID)
	return args.Int(0), args.Error(1)
}

type MockGrantRepository struct {
	mock.Mock
}

func (m *MockGrantRepository) GetByID(ctx context.Context, id string) (*domain.Grant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Grant), args.Error(1)
}

func (m *MockGrantRepository) Get(ctx context.Context, filter domain.GrantFilter) ([]*domain.Grant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Grant), args.Error(1)
}

func (m *MockGrantRepository) GetByClientID(ctx context.Context, clientID string) ([]*domain.Grant, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Grant), args.Error(1)
}

func (m *MockGrantRepository) Create(ctx context.Context, grant *domain.Grant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockGrantRepository) Update(ctx context.Context, grant *domain.Grant) (*domain.Grant, error) {
	args := m.Called(ctx, grant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Grant), args.Error(1)
}

type MockResourceServerRepository struct {
	mock.Mock
}

func (m *MockResourceServerRepository) GetByID(ctx context.Context, id string) (*domain.ResourceServer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceServer), args.Error(1)
}

func (m *MockResourceServerRepository) Get(ctx context.Context, filter domain.ResourceServerFilter) ([]*domain.ResourceServer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ResourceServer), args.Error(1)
}

func (m *MockResourceServerRepository) Create(ctx context.Context, server *domain.ResourceServer) error {
	args := m.Called(ctx, server)
	return args.Error(0)
}

func (m *MockResourceServerRepository) Update(ctx context.Context, server *domain.ResourceServer) (*domain.ResourceServer, error) {
	args := m.Called(ctx, server)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceServer), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Get(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type MockProductClientRepository struct {
	mock.Mock
}

func (m *MockProductClientRepository) GetByID(ctx context.Context, id string) (*domain.ProductClient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductClient), args.Error(1)
}

func (m *MockProductClientRepository) Get(ctx context.Context, filter domain.ProductClientFilter) ([]*domain.ProductClient, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProductClient), args.Error(1)
}

func (m *MockProductClientRepository) Create(ctx context.Context, productClient *domain.ProductClient) error {
	args := m.Called(ctx, productClient)
	return args.Error(0)
}

func (m *MockProductClientRepository) Update(ctx context.Context, productClient *domain.ProductClient) (*domain.ProductClient, error) {
	args := m.Called(ctx, productClient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductClient), args.Error(1)
}

// MockUnitOfWork holds one mock repository per aggregate and records
// SaveChanges and Rollback calls.
type MockUnitOfWork struct {
	mock.Mock
	apps            *MockAppRepository
	clients         *MockClientRepository
	grants          *MockGrantRepository
	resourceServers *MockResourceServerRepository
	products        *MockProductRepository
	productClients  *MockProductClientRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		apps:            new(MockAppRepository),
		clients:         new(MockClientRepository),
		grants:          new(MockGrantRepository),
		resourceServers: new(MockResourceServerRepository),
		products:        new(MockProductRepository),
		productClients:  new(MockProductClientRepository),
	}
}

func (m *MockUnitOfWork) Apps() domain.AppRepository             { return m.apps }
func (m *MockUnitOfWork) Clients() domain.ClientRepository       { return m.clients }
func (m *MockUnitOfWork) Grants() domain.GrantRepository         { return m.grants }
func (m *MockUnitOfWork) ResourceServers() domain.ResourceServerRepository {
	return m.resourceServers
}
func (m *MockUnitOfWork) Products() domain.ProductRepository { return m.products }
func (m *MockUnitOfWork) ProductClients() domain.ProductClientRepository {
	return m.productClients
}

func (m *MockUnitOfWork) SaveChanges(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Begin(ctx context.Context) (domain.UnitOfWork, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.UnitOfWork), args.Error(1)
}

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) AddClient(ctx context.Context, spec *domain.ClientSpec) (*domain.ClientCredentials, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientCredentials), args.Error(1)
}

func (m *MockIdentityProvider) UpdateResourceServer(ctx context.Context, server *domain.ResourceServer) (bool, error) {
	args := m.Called(ctx, server)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentityProvider) DeleteResourceServer(ctx context.Context, externalID string) (bool, error) {
	args := m.Called(ctx, externalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentityProvider) DeleteClient(ctx context.Context, externalID string) (bool, error) {
	args := m.Called(ctx, externalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentityProvider) DeleteGrant(ctx context.Context, externalID string) (bool, error) {
	args := m.Called(ctx, externalID)
	return args.Bool(0), args.Error(1)
}

type MockNotificationPublisher struct {
	mock.Mock
}

func (m *MockNotificationPublisher) Publish(ctx context.Context, notification *domain.Notification) (string, error) {
	args := m.Called(ctx, notification)
	return args.String(0), args.Error(1)
}
