package application

import (
	"context"
	"testing"

	"github.com/ipede/app-admin-service/internal/domain"
	apperrors "github.com/ipede/app-admin-service/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestClientService_CreateClient(t *testing.T) {
	logger, _ := zap.NewProduction()
	ctx := context.Background()

	t.Run("machine client gets external grant id", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("SaveChanges", ctx).Return(nil)

		app := domain.NewApp("billing", "")
		uow.apps.On("GetByID", ctx, app.ID).Return(app, nil)
		uow.clients.On("Create", ctx, mock.AnythingOfType("*domain.Client")).Return(nil)
		idp.On("AddClient", ctx, mock.AnythingOfType("*domain.ClientSpec")).
			Return(&domain.ClientCredentials{ClientID: "ext-1", GrantID: "grant-1"}, nil)

		service := NewClientService(factory, idp, logger)
		client, err := service.CreateClient(ctx, CreateClientInput{
			AppID:    app.ID,
			Name:     "worker",
			TypeName: "machine",
			Audience: "https://api.example.com",
		})

		assert.NoError(t, err)
		assert.Equal(t, "ext-1", client.ExternalID)
		assert.Equal(t, "grant-1", client.ExternalGrantID)
		assert.True(t, client.Type.IsMachine())
	})

	t.Run("auth code client never gets grant id", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("SaveChanges", ctx).Return(nil)

		app := domain.NewApp("portal", "")
		uow.apps.On("GetByID", ctx, app.ID).Return(app, nil)
		uow.clients.On("Create", ctx, mock.AnythingOfType("*domain.Client")).Return(nil)
		idp.On("AddClient", ctx, mock.AnythingOfType("*domain.ClientSpec")).
			Return(&domain.ClientCredentials{ClientID: "ext-2"}, nil)

		service := NewClientService(factory, idp, logger)
		client, err := service.CreateClient(ctx, CreateClientInput{
			AppID:        app.ID,
			Name:         "spa",
			TypeName:     "auth_code",
			LoginURL:     "https://portal.example.com/login",
			CallbackURLs: []string{"https://portal.example.com/callback"},
		})

		assert.NoError(t, err)
		assert.Empty(t, client.ExternalGrantID)
		assert.False(t, client.Type.IsMachine())
	})

	t.Run("unknown type rejected before identity provider call", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)

		app := domain.NewApp("billing", "")
		uow.apps.On("GetByID", ctx, app.ID).Return(app, nil)

		service := NewClientService(factory, idp, logger)
		client, err := service.CreateClient(ctx, CreateClientInput{
			AppID:    app.ID,
			Name:     "worker",
			TypeName: "spa",
		})

		assert.Nil(t, client)
		assert.True(t, apperrors.IsValidationError(err))
		idp.AssertNotCalled(t, "AddClient", ctx, mock.Anything)
		uow.AssertNotCalled(t, "SaveChanges", ctx)
	})

	t.Run("machine client may not carry callback urls", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)

		app := domain.NewApp("billing", "")
		uow.apps.On("GetByID", ctx, app.ID).Return(app, nil)

		service := NewClientService(factory, idp, logger)
		client, err := service.CreateClient(ctx, CreateClientInput{
			AppID:        app.ID,
			Name:         "worker",
			TypeName:     "machine",
			CallbackURLs: []string{"https://example.com/cb"},
		})

		assert.Nil(t, client)
		assert.True(t, apperrors.IsValidationError(err))
		idp.AssertNotCalled(t, "AddClient", ctx, mock.Anything)
	})

	t.Run("missing app", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.apps.On("GetByID", ctx, "missing").Return(nil, nil)

		service := NewClientService(factory, idp, logger)
		client, err := service.CreateClient(ctx, CreateClientInput{
			AppID:    "missing",
			Name:     "worker",
			TypeName: "machine",
		})

		assert.Nil(t, client)
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	t.Run("identity provider failure aborts before local commit", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)

		app := domain.NewApp("billing", "")
		uow.apps.On("GetByID", ctx, app.ID).Return(app, nil)
		idp.On("AddClient", ctx, mock.AnythingOfType("*domain.ClientSpec")).Return(nil, assert.AnError)

		service := NewClientService(factory, idp, logger)
		client, err := service.CreateClient(ctx, CreateClientInput{
			AppID:    app.ID,
			Name:     "worker",
			TypeName: "machine",
		})

		assert.Nil(t, client)
		assert.True(t, apperrors.IsExternalError(err))
		uow.AssertNotCalled(t, "SaveChanges", ctx)
	})
}

func TestClientService_UpdateClient(t *testing.T) {
	logger, _ := zap.NewProduction()
	ctx := context.Background()

	t.Run("type dependent rules re-checked", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)

		existing := domain.NewClient("app-1", "spa", "", domain.ClientTypeAuthCode)
		uow.clients.On("GetByID", ctx, existing.ID).Return(existing, nil)

		// auth code clients must keep at least one callback URL
		service := NewClientService(factory, idp, logger)
		client, err := service.UpdateClient(ctx, existing.ID, UpdateClientInput{
			Name:         "spa",
			LoginURL:     "https://portal.example.com/login",
			CallbackURLs: nil,
		})

		assert.Nil(t, client)
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("successful update", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("SaveChanges", ctx).Return(nil)

		existing := domain.NewClient("app-1", "worker", "", domain.ClientTypeMachine)
		uow.clients.On("GetByID", ctx, existing.ID).Return(existing, nil)
		uow.clients.On("Update", ctx, existing).Return(existing, nil)

		service := NewClientService(factory, idp, logger)
		client, err := service.UpdateClient(ctx, existing.ID, UpdateClientInput{
			Name:        "worker-v2",
			Description: "renamed",
		})

		assert.NoError(t, err)
		assert.Equal(t, "worker-v2", client.Name)
	})
}

func TestClientService_DeleteClient(t *testing.T) {
	logger, _ := zap.NewProduction()
	ctx := context.Background()

	t.Run("deletes client and grants in one commit", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("SaveChanges", ctx).Return(nil)

		existing := domain.NewClient("app-1", "worker", "", domain.ClientTypeMachine)
		existing.ExternalID = "ext-1"
		existing.ExternalGrantID = "grant-1"
		grant := domain.NewGrant(existing.ID, "rs-1", "ext-grant-9")

		uow.clients.On("GetByID", ctx, existing.ID).Return(existing, nil)
		uow.grants.On("GetByClientID", ctx, existing.ID).Return([]*domain.Grant{grant}, nil)
		uow.clients.On("Update", ctx, existing).Return(existing, nil)
		uow.grants.On("Update", ctx, grant).Return(grant, nil)
		idp.On("DeleteClient", ctx, "ext-1").Return(true, nil)
		idp.On("DeleteGrant", ctx, "grant-1").Return(true, nil)
		idp.On("DeleteGrant", ctx, "ext-grant-9").Return(true, nil)

		service := NewClientService(factory, idp, logger)
		client, err := service.DeleteClient(ctx, existing.ID)

		assert.NoError(t, err)
		assert.True(t, client.IsDeleted())
		assert.True(t, grant.IsDeleted())
		uow.AssertNumberOfCalls(t, "SaveChanges", 1)
		idp.AssertCalled(t, "DeleteClient", ctx, "ext-1")
		idp.AssertCalled(t, "DeleteGrant", ctx, "grant-1")
		idp.AssertCalled(t, "DeleteGrant", ctx, "ext-grant-9")
	})

	t.Run("grant remote delete failure surfaces after local commit", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("SaveChanges", ctx).Return(nil)

		existing := domain.NewClient("app-1", "spa", "", domain.ClientTypeAuthCode)
		existing.ExternalID = "ext-4"
		grant := domain.NewGrant(existing.ID, "rs-1", "ext-grant-4")

		uow.clients.On("GetByID", ctx, existing.ID).Return(existing, nil)
		uow.grants.On("GetByClientID", ctx, existing.ID).Return([]*domain.Grant{grant}, nil)
		uow.clients.On("Update", ctx, existing).Return(existing, nil)
		uow.grants.On("Update", ctx, grant).Return(grant, nil)
		idp.On("DeleteClient", ctx, "ext-4").Return(true, nil)
		idp.On("DeleteGrant", ctx, "ext-grant-4").Return(false, assert.AnError)

		service := NewClientService(factory, idp, logger)
		client, err := service.DeleteClient(ctx, existing.ID)

		assert.Nil(t, client)
		assert.True(t, apperrors.IsExternalError(err))
		uow.AssertNumberOfCalls(t, "SaveChanges", 1)
	})

	t.Run("no remote grant delete without grant id", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("SaveChanges", ctx).Return(nil)

		existing := domain.NewClient("app-1", "spa", "", domain.ClientTypeAuthCode)
		existing.ExternalID = "ext-2"

		uow.clients.On("GetByID", ctx, existing.ID).Return(existing, nil)
		uow.grants.On("GetByClientID", ctx, existing.ID).Return([]*domain.Grant{}, nil)
		uow.clients.On("Update", ctx, existing).Return(existing, nil)
		idp.On("DeleteClient", ctx, "ext-2").Return(true, nil)

		service := NewClientService(factory, idp, logger)
		_, err := service.DeleteClient(ctx, existing.ID)

		assert.NoError(t, err)
		idp.AssertNotCalled(t, "DeleteGrant", ctx, mock.Anything)
	})

	t.Run("remote failure surfaces after local commit", func(t *testing.T) {
		uow := NewMockUnitOfWork()
		factory := new(MockUnitOfWorkFactory)
		idp := new(MockIdentityProvider)
		factory.On("Begin", ctx).Return(uow, nil)
		uow.On("Rollback", ctx).Return(nil)
		uow.On("SaveChanges", ctx).Return(nil)

		existing := domain.NewClient("app-1", "worker", "", domain.ClientTypeMachine)
		existing.ExternalID = "ext-3"

		uow.clients.On("GetByID", ctx, existing.ID).Return(existing, nil)
		uow.grants.On("GetByClientID", ctx, existing.ID).Return([]*domain.Grant{}, nil)
		uow.clients.On("Update", ctx, existing).Return(existing, nil)
		idp.On("DeleteClient", ctx, "ext-3").Return(false, assert.AnError)

		service := NewClientService(factory, idp, logger)
		client, err := service.DeleteClient(ctx, existing.ID)

		assert.Nil(t, client)
		assert.True(t, apperrors.IsExternalError(err))
		uow.AssertNumberOfCalls(t, "SaveChanges", 1)
	})
}
