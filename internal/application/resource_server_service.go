package application

import (
	"context"

	"github.com/ipede/app-admin-service/internal/domain"
	apperrors "github.com/ipede/app-admin-service/internal/domain/errors"
	"go.uber.org/zap"
)

// ResourceServerService orchestrates resource server use cases
type ResourceServerService struct {
	uowFactory domain.UnitOfWorkFactory
	idp        domain.IdentityProvider
	logger     *zap.Logger
}

// NewResourceServerService creates a new ResourceServerService
func NewResourceServerService(uowFactory domain.UnitOfWorkFactory, idp domain.IdentityProvider, logger *zap.Logger) *ResourceServerService {
	return &ResourceServerService{
		uowFactory: uowFactory,
		idp:        idp,
		logger:     logger,
	}
}

// CreateResourceServerInput carries the fields for creating a resource
// server. ExternalID is the identity provider's identifier, stored opaquely.
type CreateResourceServerInput struct {
	Name          string
	Audience      string
	TokenLifetime int
	Scopes        []domain.Scope
	ExternalID    string
}

// UpdateResourceServerInput carries the fields for updating a resource server
type UpdateResourceServerInput struct {
	Name          string
	TokenLifetime int
	Scopes        []domain.Scope
}

// ListResourceServersInput carries the filters for listing resource servers
type ListResourceServersInput struct {
	Name     string
	Audience string
	Cursor   int64
	PageSize int
}

// CreateResourceServer validates and persists a new resource server
func (s *ResourceServerService) CreateResourceServer(ctx context.Context, input CreateResourceServerInput) (*domain.ResourceServer, error) {
	fields := domain.ValidateResourceServer(input.Name, input.Audience, input.TokenLifetime, input.Scopes)
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields...)
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	server := domain.NewResourceServer(input.Name, input.Audience, input.TokenLifetime)
	server.ExternalID = input.ExternalID
	domain.AssignScopes(server, input.Scopes)

	if err := uow.ResourceServers().Create(ctx, server); err != nil {
		return nil, apperrors.NewInternalError("failed to create resource server", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save resource server", err)
	}
	return server, nil
}

// GetResourceServer returns a resource server by id
func (s *ResourceServerService) GetResourceServer(ctx context.Context, id string) (*domain.ResourceServer, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	server, err := uow.ResourceServers().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load resource server", err)
	}
	if server == nil {
		return nil, apperrors.NewNotFoundError("ResourceServer", id)
	}
	return server, nil
}

// ListResourceServers returns one page of resource servers matching the filters
func (s *ResourceServerService) ListResourceServers(ctx context.Context, input ListResourceServersInput) (domain.Page[*domain.ResourceServer], error) {
	var empty domain.Page[*domain.ResourceServer]
	if fields := domain.ValidatePageRequest(input.Cursor, input.PageSize); len(fields) > 0 {
		return empty, apperrors.NewValidationError(fields...)
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return empty, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	servers, err := uow.ResourceServers().Get(ctx, domain.ResourceServerFilter{
		Name:     input.Name,
		Audience: input.Audience,
		Page:     domain.PageRequest{Cursor: input.Cursor, PageSize: input.PageSize},
	})
	if err != nil {
		return empty, apperrors.NewInternalError("failed to list resource servers", err)
	}
	return domain.NewPage(servers), nil
}

// UpdateResourceServer applies field and scope changes locally, then pushes
// them to the identity provider. The remote call runs after the local commit
// and is awaited; its boolean result is discarded but its error surfaces so
// local and remote state never diverge silently.
func (s *ResourceServerService) UpdateResourceServer(ctx context.Context, id string, input UpdateResourceServerInput) (*domain.ResourceServer, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	server, err := uow.ResourceServers().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load resource server", err)
	}
	if server == nil {
		return nil, apperrors.NewNotFoundError("ResourceServer", id)
	}

	fields := domain.ValidateResourceServer(input.Name, server.Audience, input.TokenLifetime, input.Scopes)
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields...)
	}

	server.Name = input.Name
	server.TokenLifetime = input.TokenLifetime
	domain.AssignScopes(server, input.Scopes)
	server.Touch()

	if _, err := uow.ResourceServers().Update(ctx, server); err != nil {
		return nil, apperrors.NewInternalError("failed to update resource server", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save resource server", err)
	}

	if _, err := s.idp.UpdateResourceServer(ctx, server); err != nil {
		s.logger.Error("failed to update resource server at identity provider",
			zap.String("id", server.ID),
			zap.String("external_id", server.ExternalID),
			zap.Error(err))
		return nil, apperrors.NewExternalError("failed to update resource server at identity provider", err)
	}
	return server, nil
}

// DeleteResourceServer soft-deletes a resource server, then deletes it at
// the identity provider. The remote call is awaited and its failure surfaces
// to the caller, even though local state is already committed.
func (s *ResourceServerService) DeleteResourceServer(ctx context.Context, id string) (*domain.ResourceServer, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	server, err := uow.ResourceServers().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load resource server", err)
	}
	if server == nil {
		return nil, apperrors.NewNotFoundError("ResourceServer", id)
	}

	server.SoftDelete()
	if _, err := uow.ResourceServers().Update(ctx, server); err != nil {
		return nil, apperrors.NewInternalError("failed to delete resource server", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save resource server", err)
	}

	if _, err := s.idp.DeleteResourceServer(ctx, server.ExternalID); err != nil {
		s.logger.Error("failed to delete resource server at identity provider",
			zap.String("id", server.ID),
			zap.String("external_id", server.ExternalID),
			zap.Error(err))
		return nil, apperrors.NewExternalError("failed to delete resource server at identity provider", err)
	}
	return server, nil
}
