package application

import (
	"context"
	"strings"
	"testing"

	"github.com/ipede/app-admin-service/internal/domain"
	apperrors "github.com/ipede/app-admin-service/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProductClientService_CreateProductClient(t *testing.T) {
	logger, _ := zap.NewProduction()
	ctx := context.Background()

	t.Run("machine client provisioned against product audience", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("SaveChanges", ctx).Return(nil)

		product := domain.NewProduct("observability", "")
		uow.products.On("GetByID", ctx, product.ID).Return(product, nil)
		uow.productClients.On("Create", ctx, mock.AnythingOfType("*domain.ProductClient")).Return(nil)

		var spec *domain.ClientSpec
		idp.On("AddClient", ctx, mock.AnythingOfType("*domain.ClientSpec")).
			Run(func(args mock.Arguments) {
				spec = args.Get(1).(*domain.ClientSpec)
			}).
			Return(&domain.ClientCredentials{ClientID: "cli-1", GrantID: "grant-1"}, nil)

		service := NewProductClientService(factory, idp, logger)
		pc, err := service.CreateProductClient(ctx, CreateProductClientInput{
			ProductID: product.ID,
			Name:      "ingest",
			TypeName:  "machine",
			Audience:  "https://ingest.example.com",
		})

		assert.NoError(t, err)
		assert.Equal(t, "cli-1", pc.ClientID)
		assert.Equal(t, "grant-1", pc.GrantID)
		assert.Equal(t, "https://ingest.example.com", pc.Audience)
		assert.Equal(t, "https://ingest.example.com", spec.Audience)
	})

	t.Run("missing product", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.products.On("GetByID", ctx, "missing").Return(nil, nil)

		service := NewProductClientService(factory, idp, logger)
		pc, err := service.CreateProductClient(ctx, CreateProductClientInput{
			ProductID: "missing",
			Name:      "ingest",
			TypeName:  "machine",
		})

		assert.Nil(t, pc)
		assert.True(t, apperrors.IsNotFoundError(err))
		idp.AssertNotCalled(t, "AddClient", ctx, mock.Anything)
	})

	t.Run("validation aborts before identity provider call", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)

		product := domain.NewProduct("observability", "")
		uow.products.On("GetByID", ctx, product.ID).Return(product, nil)

		service := NewProductClientService(factory, idp, logger)
		pc, err := service.CreateProductClient(ctx, CreateProductClientInput{
			ProductID: product.ID,
			Name:      "",
			TypeName:  "machine",
		})

		assert.Nil(t, pc)
		assert.True(t, apperrors.IsValidationError(err))
		idp.AssertNotCalled(t, "AddClient", ctx, mock.Anything)
	})

	t.Run("audience over limit rejected", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)

		product := domain.NewProduct("observability", "")
		uow.products.On("GetByID", ctx, product.ID).Return(product, nil)

		service := NewProductClientService(factory, idp, logger)
		pc, err := service.CreateProductClient(ctx, CreateProductClientInput{
			ProductID: product.ID,
			Name:      "ingest",
			TypeName:  "machine",
			Audience:  strings.Repeat("a", 281),
		})

		assert.Nil(t, pc)
		assert.True(t, apperrors.IsValidationError(err))
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		require.Len(t, appErr.Fields, 1)
		assert.Equal(t, "audience", appErr.Fields[0].Field)
		assert.Equal(t, domain.MsgMaxLength(domain.AudienceMaxLength), appErr.Fields[0].Message)
		idp.AssertNotCalled(t, "AddClient", ctx, mock.Anything)
	})
}

func TestProductClientService_DeleteProductClient(t *testing.T) {
	logger, _ := zap.NewProduction()
	ctx := context.Background()

	t.Run("machine client deletes remote grant too", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("SaveChanges", ctx).Return(nil)

		existing := domain.NewProductClient("p-1", "ingest", "", domain.ClientTypeMachine)
		existing.ClientID = "cli-1"
		existing.GrantID = "grant-1"
		uow.productClients.On("GetByID", ctx, existing.ID).Return(existing, nil)
		uow.productClients.On("Update", ctx, existing).Return(existing, nil)
		idp.On("DeleteClient", ctx, "cli-1").Return(true, nil)
		idp.On("DeleteGrant", ctx, "grant-1").Return(true, nil)

		service := NewProductClientService(factory, idp, logger)
		pc, err := service.DeleteProductClient(ctx, existing.ID)

		assert.NoError(t, err)
		assert.True(t, pc.IsDeleted())
		idp.AssertCalled(t, "DeleteGrant", ctx, "grant-1")
	})

	t.Run("auth code client skips grant delete", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("SaveChanges", ctx).Return(nil)

		existing := domain.NewProductClient("p-1", "console", "", domain.ClientTypeAuthCode)
		existing.ClientID = "cli-2"
		uow.productClients.On("GetByID", ctx, existing.ID).Return(existing, nil)
		uow.productClients.On("Update", ctx, existing).Return(existing, nil)
		idp.On("DeleteClient", ctx, "cli-2").Return(true, nil)

		service := NewProductClientService(factory, idp, logger)
		_, err := service.DeleteProductClient(ctx, existing.ID)

		assert.NoError(t, err)
		idp.AssertNotCalled(t, "DeleteGrant", ctx, mock.Anything)
	})

	t.Run("remote client delete failure surfaces", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("SaveChanges", ctx).Return(nil)

		existing := domain.NewProductClient("p-1", "ingest", "", domain.ClientTypeMachine)
		existing.ClientID = "cli-3"
		uow.productClients.On("GetByID", ctx, existing.ID).Return(existing, nil)
		uow.productClients.On("Update", ctx, existing).Return(existing, nil)
		idp.On("DeleteClient", ctx, "cli-3").Return(false, assert.AnError)

		service := NewProductClientService(factory, idp, logger)
		pc, err := service.DeleteProductClient(ctx, existing.ID)

		assert.Nil(t, pc)
		assert.True(t, apperrors.IsExternalError(err))
	})
}
