package application

import (
	"context"
	"unicode/utf8"

	"github.com/ipede/app-admin-service/internal/domain"
	apperrors "github.com/ipede/app-admin-service/internal/domain/errors"
	"go.uber.org/zap"
)

// ProductClientService orchestrates product client use cases. Like client
// creation, provisioning is remote-first so the identity provider's
// identifiers are part of the same atomic local commit.
type ProductClientService struct {
	uowFactory domain.UnitOfWorkFactory
	idp        domain.IdentityProvider
	logger     *zap.Logger
}

// NewProductClientService creates a new ProductClientService
func NewProductClientService(uowFactory domain.UnitOfWorkFactory, idp domain.IdentityProvider, logger *zap.Logger) *ProductClientService {
	return &ProductClientService{
		uowFactory: uowFactory,
		idp:        idp,
		logger:     logger,
	}
}

// CreateProductClientInput carries the fields for provisioning a product client
type CreateProductClientInput struct {
	ProductID    string
	Name         string
	Description  string
	TypeName     string
	Audience     string
	CallbackURLs []string
	SignoutURLs  []string
}

// UpdateProductClientInput carries the fields for updating a product client
type UpdateProductClientInput struct {
	Name         string
	Description  string
	CallbackURLs []string
	SignoutURLs  []string
}

// ListProductClientsInput carries the filters for listing product clients
type ListProductClientsInput struct {
	ProductID string
	Name      string
	Cursor    int64
	PageSize  int
}

// CreateProductClient provisions a client for a product at the identity
// provider and records it locally. Machine clients carry the grant id of the
// client-credentials grant created against the product's audience.
func (s *ProductClientService) CreateProductClient(ctx context.Context, input CreateProductClientInput) (*domain.ProductClient, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	product, err := uow.Products().GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load product", err)
	}
	if product == nil {
		return nil, apperrors.NewNotFoundError("Product", input.ProductID)
	}

	clientType, _ := domain.ClientTypeFromName(input.TypeName)
	fields := domain.ValidateClientFields(input.Name, input.Description, clientType,
		"", input.CallbackURLs, input.SignoutURLs)
	if utf8.RuneCountInString(input.Audience) > domain.AudienceMaxLength {
		fields = append(fields, apperrors.FieldError{Field: "audience", Message: domain.MsgMaxLength(domain.AudienceMaxLength)})
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields...)
	}

	credentials, err := s.idp.AddClient(ctx, &domain.ClientSpec{
		Name:         input.Name,
		Description:  input.Description,
		Type:         clientType,
		CallbackURLs: input.CallbackURLs,
		SignoutURLs:  input.SignoutURLs,
		Audience:     input.Audience,
	})
	if err != nil {
		return nil, apperrors.NewExternalError("failed to create client at identity provider", err)
	}

	pc := domain.NewProductClient(input.ProductID, input.Name, input.Description, clientType)
	pc.ClientID = credentials.ClientID
	pc.GrantID = credentials.GrantID
	pc.Audience = input.Audience
	pc.CallbackURLs = input.CallbackURLs
	pc.SignoutURLs = input.SignoutURLs

	if err := uow.ProductClients().Create(ctx, pc); err != nil {
		return nil, apperrors.NewInternalError("failed to create product client", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save product client", err)
	}
	return pc, nil
}

// GetProductClient returns a product client by id
func (s *ProductClientService) GetProductClient(ctx context.Context, id string) (*domain.ProductClient, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	pc, err := uow.ProductClients().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load product client", err)
	}
	if pc == nil {
		return nil, apperrors.NewNotFoundError("ProductClient", id)
	}
	return pc, nil
}

// ListProductClients returns one page of product clients matching the filters
func (s *ProductClientService) ListProductClients(ctx context.Context, input ListProductClientsInput) (domain.Page[*domain.ProductClient], error) {
	var empty domain.Page[*domain.ProductClient]
	if fields := domain.ValidatePageRequest(input.Cursor, input.PageSize); len(fields) > 0 {
		return empty, apperrors.NewValidationError(fields...)
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return empty, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	productClients, err := uow.ProductClients().Get(ctx, domain.ProductClientFilter{
		ProductID: input.ProductID,
		Name:      input.Name,
		Page:      domain.PageRequest{Cursor: input.Cursor, PageSize: input.PageSize},
	})
	if err != nil {
		return empty, apperrors.NewInternalError("failed to list product clients", err)
	}
	return domain.NewPage(productClients), nil
}

// UpdateProductClient applies field changes; the type stays fixed and its
// URL rules are re-checked against the new values.
func (s *ProductClientService) UpdateProductClient(ctx context.Context, id string, input UpdateProductClientInput) (*domain.ProductClient, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	pc, err := uow.ProductClients().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load product client", err)
	}
	if pc == nil {
		return nil, apperrors.NewNotFoundError("ProductClient", id)
	}

	fields := domain.ValidateClientFields(input.Name, input.Description, pc.Type,
		"", input.CallbackURLs, input.SignoutURLs)
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields...)
	}

	pc.Name = input.Name
	pc.Description = input.Description
	pc.CallbackURLs = input.CallbackURLs
	pc.SignoutURLs = input.SignoutURLs
	pc.Touch()

	if _, err := uow.ProductClients().Update(ctx, pc); err != nil {
		return nil, apperrors.NewInternalError("failed to update product client", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save product client", err)
	}
	return pc, nil
}

// DeleteProductClient soft-deletes a product client, then deletes the remote
// client and, for machine clients, its grant. Remote calls run after the
// local commit and are awaited; failures surface to the caller.
func (s *ProductClientService) DeleteProductClient(ctx context.Context, id string) (*domain.ProductClient, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	pc, err := uow.ProductClients().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load product client", err)
	}
	if pc == nil {
		return nil, apperrors.NewNotFoundError("ProductClient", id)
	}

	pc.SoftDelete()
	if _, err := uow.ProductClients().Update(ctx, pc); err != nil {
		return nil, apperrors.NewInternalError("failed to delete product client", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save product client", err)
	}

	if _, err := s.idp.DeleteClient(ctx, pc.ClientID); err != nil {
		s.logger.Error("failed to delete client at identity provider",
			zap.String("id", pc.ID),
			zap.String("client_id", pc.ClientID),
			zap.Error(err))
		return nil, apperrors.NewExternalError("failed to delete client at identity provider", err)
	}
	if pc.GrantID != "" {
		if _, err := s.idp.DeleteGrant(ctx, pc.GrantID); err != nil {
			s.logger.Error("failed to delete client grant at identity provider",
				zap.String("id", pc.ID),
				zap.String("grant_id", pc.GrantID),
				zap.Error(err))
			return nil, apperrors.NewExternalError("failed to delete client grant at identity provider", err)
		}
	}
	return pc, nil
}
