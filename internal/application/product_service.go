package application

import (
	"context"
	"time"

	"github.com/ipede/app-admin-service/internal/domain"
	apperrors "github.com/ipede/app-admin-service/internal/domain/errors"
	"go.uber.org/zap"
)

// ProductService orchestrates product use cases
type ProductService struct {
	uowFactory domain.UnitOfWorkFactory
	publisher  domain.NotificationPublisher
	logger     *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(uowFactory domain.UnitOfWorkFactory, publisher domain.NotificationPublisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// CreateProductInput carries the fields for creating a product
type CreateProductInput struct {
	Name        string
	Description string
}

// UpdateProductInput carries the fields for updating a product
type UpdateProductInput struct {
	Name        string
	Description string
}

// ListProductsInput carries the filters for listing products
type ListProductsInput struct {
	Name        string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Cursor      int64
	PageSize    int
}

// CreateProduct validates and persists a new product
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if fields := domain.ValidateProduct(input.Name, input.Description); len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields...)
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	product := domain.NewProduct(input.Name, input.Description)
	if err := uow.Products().Create(ctx, product); err != nil {
		return nil, apperrors.NewInternalError("failed to create product", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save product", err)
	}
	return product, nil
}

// GetProduct returns a product by id
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load product", err)
	}
	if product == nil {
		return nil, apperrors.NewNotFoundError("Product", id)
	}
	return product, nil
}

// ListProducts returns one page of products. Filters are handed to the
// repository verbatim and the repository's result is returned unmodified.
func (s *ProductService) ListProducts(ctx context.Context, input ListProductsInput) (domain.Page[*domain.Product], error) {
	var empty domain.Page[*domain.Product]
	if fields := domain.ValidatePageRequest(input.Cursor, input.PageSize); len(fields) > 0 {
		return empty, apperrors.NewValidationError(fields...)
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return empty, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	products, err := uow.Products().Get(ctx, domain.ProductFilter{
		Name:        input.Name,
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
		Page:        domain.PageRequest{Cursor: input.Cursor, PageSize: input.PageSize},
	})
	if err != nil {
		return empty, apperrors.NewInternalError("failed to list products", err)
	}
	return domain.NewPage(products), nil
}

// UpdateProduct applies field changes to a product
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load product", err)
	}
	if product == nil {
		return nil, apperrors.NewNotFoundError("Product", id)
	}

	if fields := domain.ValidateProduct(input.Name, input.Description); len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields...)
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Touch()

	if _, err := uow.Products().Update(ctx, product); err != nil {
		return nil, apperrors.NewInternalError("failed to update product", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save product", err)
	}
	return product, nil
}

// DeleteProduct soft-deletes a product and publishes a "product deleted"
// notification built from the entity at the moment of deletion. A missed
// notification is not fatal to the admin operation: publish failures are
// logged and never surface to the caller.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load product", err)
	}
	if product == nil {
		return nil, apperrors.NewNotFoundError("Product", id)
	}

	product.SoftDelete()
	if _, err := uow.Products().Update(ctx, product); err != nil {
		return nil, apperrors.NewInternalError("failed to delete product", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save product", err)
	}

	notification := domain.NewProductDeletedNotification(product)
	if _, err := s.publisher.Publish(ctx, notification); err != nil {
		s.logger.Error("failed to publish product deleted notification",
			zap.String("product_id", product.ID),
			zap.String("message_id", notification.ID),
			zap.Error(err))
	}
	return product, nil
}
