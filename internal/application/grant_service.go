package application

import (
	"context"

	"github.com/ipede/app-admin-service/internal/domain"
	apperrors "github.com/ipede/app-admin-service/internal/domain/errors"
	"go.uber.org/zap"
)

// GrantService orchestrates grant use cases
type GrantService struct {
	uowFactory domain.UnitOfWorkFactory
	idp        domain.IdentityProvider
	logger     *zap.Logger
}

// NewGrantService creates a new GrantService
func NewGrantService(uowFactory domain.UnitOfWorkFactory, idp domain.IdentityProvider, logger *zap.Logger) *GrantService {
	return &GrantService{
		uowFactory: uowFactory,
		idp:        idp,
		logger:     logger,
	}
}

// CreateGrantInput carries the fields for creating a grant. ExternalID is
// the identity provider's grant identifier, owned by the external system and
// stored opaquely; its format is never validated here.
type CreateGrantInput struct {
	ClientID         string
	ResourceServerID string
	ExternalID       string
}

// ListGrantsInput carries the filters for listing grants
type ListGrantsInput struct {
	ClientID         string
	ResourceServerID string
	Cursor           int64
	PageSize         int
}

// CreateGrant records a grant between a client and a resource server. Both
// referenced aggregates must exist and be non-deleted.
func (s *GrantService) CreateGrant(ctx context.Context, input CreateGrantInput) (*domain.Grant, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	client, err := uow.Clients().GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load client", err)
	}
	if client == nil {
		return nil, apperrors.NewNotFoundError("Client", input.ClientID)
	}

	server, err := uow.ResourceServers().GetByID(ctx, input.ResourceServerID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load resource server", err)
	}
	if server == nil {
		return nil, apperrors.NewNotFoundError("ResourceServer", input.ResourceServerID)
	}

	grant := domain.NewGrant(input.ClientID, input.ResourceServerID, input.ExternalID)
	if err := uow.Grants().Create(ctx, grant); err != nil {
		return nil, apperrors.NewInternalError("failed to create grant", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save grant", err)
	}
	return grant, nil
}

// GetGrant returns a grant by id
func (s *GrantService) GetGrant(ctx context.Context, id string) (*domain.Grant, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	grant, err := uow.Grants().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load grant", err)
	}
	if grant == nil {
		return nil, apperrors.NewNotFoundError("Grant", id)
	}
	return grant, nil
}

// ListGrants returns one page of grants matching the filters
func (s *GrantService) ListGrants(ctx context.Context, input ListGrantsInput) (domain.Page[*domain.Grant], error) {
	var empty domain.Page[*domain.Grant]
	if fields := domain.ValidatePageRequest(input.Cursor, input.PageSize); len(fields) > 0 {
		return empty, apperrors.NewValidationError(fields...)
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return empty, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	grants, err := uow.Grants().Get(ctx, domain.GrantFilter{
		ClientID:         input.ClientID,
		ResourceServerID: input.ResourceServerID,
		Page:             domain.PageRequest{Cursor: input.Cursor, PageSize: input.PageSize},
	})
	if err != nil {
		return empty, apperrors.NewInternalError("failed to list grants", err)
	}
	return domain.NewPage(grants), nil
}

// DeleteGrant soft-deletes a grant, then deletes it at the identity
// provider. The remote call runs after the local commit and is awaited:
// a failure surfaces even though local state is already committed.
func (s *GrantService) DeleteGrant(ctx context.Context, id string) (*domain.Grant, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	grant, err := uow.Grants().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load grant", err)
	}
	if grant == nil {
		return nil, apperrors.NewNotFoundError("Grant", id)
	}

	grant.SoftDelete()
	if _, err := uow.Grants().Update(ctx, grant); err != nil {
		return nil, apperrors.NewInternalError("failed to delete grant", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save grant", err)
	}

	if _, err := s.idp.DeleteGrant(ctx, grant.ExternalID); err != nil {
		s.logger.Error("failed to delete grant at identity provider",
			zap.String("id", grant.ID),
			zap.String("external_id", grant.ExternalID),
			zap.Error(err))
		return nil, apperrors.NewExternalError("failed to delete grant at identity provider", err)
	}
	return grant, nil
}
