package application

import (
	"context"

	"github.com/ipede/app-admin-service/internal/domain"
	apperrors "github.com/ipede/app-admin-service/internal/domain/errors"
	"go.uber.org/zap"
)

// ClientService orchestrates client use cases. Client creation is
// remote-first: the identity provider client is created before the local
// commit so its foreign identifiers land in the same atomic save; a local
// commit failure at worst leaves an orphaned remote client, never a local
// record pointing at nothing.
type ClientService struct {
	uowFactory domain.UnitOfWorkFactory
	idp        domain.IdentityProvider
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(uowFactory domain.UnitOfWorkFactory, idp domain.IdentityProvider, logger *zap.Logger) *ClientService {
	return &ClientService{
		uowFactory: uowFactory,
		idp:        idp,
		logger:     logger,
	}
}

// CreateClientInput carries the fields for creating a client
type CreateClientInput struct {
	AppID        string
	Name         string
	Description  string
	TypeName     string
	LoginURL     string
	CallbackURLs []string
	SignoutURLs  []string
	Audience     string
}

// UpdateClientInput carries the fields for updating a client
type UpdateClientInput struct {
	Name         string
	Description  string
	LoginURL     string
	CallbackURLs []string
	SignoutURLs  []string
}

// ListClientsInput carries the filters for listing clients
type ListClientsInput struct {
	AppID    string
	Name     string
	Cursor   int64
	PageSize int
}

// CreateClient creates a client locally and at the identity provider. For
// machine clients the returned entity always carries a non-empty external
// grant id; auth-code clients never get one.
func (s *ClientService) CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	app, err := uow.Apps().GetByID(ctx, input.AppID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load app", err)
	}
	if app == nil {
		return nil, apperrors.NewNotFoundError("App", input.AppID)
	}

	clientType, _ := domain.ClientTypeFromName(input.TypeName)
	fields := domain.ValidateClientFields(input.Name, input.Description, clientType,
		input.LoginURL, input.CallbackURLs, input.SignoutURLs)
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields...)
	}

	credentials, err := s.idp.AddClient(ctx, &domain.ClientSpec{
		Name:         input.Name,
		Description:  input.Description,
		Type:         clientType,
		LoginURL:     input.LoginURL,
		CallbackURLs: input.CallbackURLs,
		SignoutURLs:  input.SignoutURLs,
		Audience:     input.Audience,
	})
	if err != nil {
		return nil, apperrors.NewExternalError("failed to create client at identity provider", err)
	}

	client := domain.NewClient(input.AppID, input.Name, input.Description, clientType)
	client.ExternalID = credentials.ClientID
	client.ExternalGrantID = credentials.GrantID
	client.LoginURL = input.LoginURL
	client.CallbackURLs = input.CallbackURLs
	client.SignoutURLs = input.SignoutURLs

	if err := uow.Clients().Create(ctx, client); err != nil {
		return nil, apperrors.NewInternalError("failed to create client", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save client", err)
	}
	return client, nil
}

// GetClient returns a client by id
func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	client, err := uow.Clients().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load client", err)
	}
	if client == nil {
		return nil, apperrors.NewNotFoundError("Client", id)
	}
	return client, nil
}

// ListClients returns one page of clients matching the filters
func (s *ClientService) ListClients(ctx context.Context, input ListClientsInput) (domain.Page[*domain.Client], error) {
	var empty domain.Page[*domain.Client]
	if fields := domain.ValidatePageRequest(input.Cursor, input.PageSize); len(fields) > 0 {
		return empty, apperrors.NewValidationError(fields...)
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return empty, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	clients, err := uow.Clients().Get(ctx, domain.ClientFilter{
		AppID: input.AppID,
		Name:  input.Name,
		Page:  domain.PageRequest{Cursor: input.Cursor, PageSize: input.PageSize},
	})
	if err != nil {
		return empty, apperrors.NewInternalError("failed to list clients", err)
	}
	return domain.NewPage(clients), nil
}

// UpdateClient applies field changes to a client. The client type is fixed
// at creation; the type-dependent URL rules are re-checked on every update.
func (s *ClientService) UpdateClient(ctx context.Context, id string, input UpdateClientInput) (*domain.Client, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	client, err := uow.Clients().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load client", err)
	}
	if client == nil {
		return nil, apperrors.NewNotFoundError("Client", id)
	}

	fields := domain.ValidateClientFields(input.Name, input.Description, client.Type,
		input.LoginURL, input.CallbackURLs, input.SignoutURLs)
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields...)
	}

	client.Name = input.Name
	client.Description = input.Description
	client.LoginURL = input.LoginURL
	client.CallbackURLs = input.CallbackURLs
	client.SignoutURLs = input.SignoutURLs
	client.Touch()

	if _, err := uow.Clients().Update(ctx, client); err != nil {
		return nil, apperrors.NewInternalError("failed to update client", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save client", err)
	}
	return client, nil
}

// DeleteClient soft-deletes a client and its grants, then deletes the remote
// client, its client-credentials grant (machine clients) and each grant's own
// remote record. The remote calls run after the local commit and are awaited:
// a failure surfaces to the caller even though local state is already
// committed.
func (s *ClientService) DeleteClient(ctx context.Context, id string) (*domain.Client, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	client, err := uow.Clients().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load client", err)
	}
	if client == nil {
		return nil, apperrors.NewNotFoundError("Client", id)
	}

	grants, err := uow.Grants().GetByClientID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load grants", err)
	}

	client.SoftDelete()
	if _, err := uow.Clients().Update(ctx, client); err != nil {
		return nil, apperrors.NewInternalError("failed to delete client", err)
	}
	for _, grant := range grants {
		grant.SoftDelete()
		if _, err := uow.Grants().Update(ctx, grant); err != nil {
			return nil, apperrors.NewInternalError("failed to delete grant", err)
		}
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save client", err)
	}

	// Local state is committed; remote failures from here on surface to the
	// caller but no longer roll anything back.
	if _, err := s.idp.DeleteClient(ctx, client.ExternalID); err != nil {
		s.logger.Error("failed to delete client at identity provider",
			zap.String("id", client.ID),
			zap.String("external_id", client.ExternalID),
			zap.Error(err))
		return nil, apperrors.NewExternalError("failed to delete client at identity provider", err)
	}
	if client.ExternalGrantID != "" {
		if _, err := s.idp.DeleteGrant(ctx, client.ExternalGrantID); err != nil {
			s.logger.Error("failed to delete client grant at identity provider",
				zap.String("id", client.ID),
				zap.String("external_grant_id", client.ExternalGrantID),
				zap.Error(err))
			return nil, apperrors.NewExternalError("failed to delete client grant at identity provider", err)
		}
	}
	for _, grant := range grants {
		if grant.ExternalID == "" {
			continue
		}
		if _, err := s.idp.DeleteGrant(ctx, grant.ExternalID); err != nil {
			s.logger.Error("failed to delete grant at identity provider",
				zap.String("id", grant.ID),
				zap.String("external_id", grant.ExternalID),
				zap.Error(err))
			return nil, apperrors.NewExternalError("failed to delete grant at identity provider", err)
		}
	}
	return client, nil
}
