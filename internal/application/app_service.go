package application

import (
	"context"
	"fmt"
	"time"

	"github.com/ipede/app-admin-service/internal/domain"
	apperrors "github.com/ipede/app-admin-service/internal/domain/errors"
	"go.uber.org/zap"
)

// AppService orchestrates application use cases. Every operation follows the
// same protocol: load through the unit of work, validate, mutate and commit
// once, then synchronize with external systems.
type AppService struct {
	uowFactory domain.UnitOfWorkFactory
	logger     *zap.Logger
}

// NewAppService creates a new AppService
func NewAppService(uowFactory domain.UnitOfWorkFactory, logger *zap.Logger) *AppService {
	return &AppService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// CreateAppInput carries the fields for creating an application
type CreateAppInput struct {
	Name        string
	Description string
}

// UpdateAppInput carries the fields for updating an application
type UpdateAppInput struct {
	Name        string
	Description string
	Active      *bool
}

// ListAppsInput carries the filters for listing applications
type ListAppsInput struct {
	Name        string
	Active      *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Cursor      int64
	PageSize    int
}

// CreateApp validates and persists a new application
func (s *AppService) CreateApp(ctx context.Context, input CreateAppInput) (*domain.App, error) {
	if fields := domain.ValidateApp(input.Name, input.Description); len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields...)
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	app := domain.NewApp(input.Name, input.Description)
	if err := uow.Apps().Create(ctx, app); err != nil {
		return nil, apperrors.NewInternalError("failed to create app", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save app", err)
	}
	return app, nil
}

// GetApp returns an application by id
func (s *AppService) GetApp(ctx context.Context, id string) (*domain.App, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	app, err := uow.Apps().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load app", err)
	}
	if app == nil {
		return nil, apperrors.NewNotFoundError("App", id)
	}
	return app, nil
}

// ListApps returns one page of applications matching the filters
func (s *AppService) ListApps(ctx context.Context, input ListAppsInput) (domain.Page[*domain.App], error) {
	var empty domain.Page[*domain.App]
	if fields := domain.ValidatePageRequest(input.Cursor, input.PageSize); len(fields) > 0 {
		return empty, apperrors.NewValidationError(fields...)
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return empty, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	apps, err := uow.Apps().Get(ctx, domain.AppFilter{
		Name:        input.Name,
		Active:      input.Active,
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
		Page:        domain.PageRequest{Cursor: input.Cursor, PageSize: input.PageSize},
	})
	if err != nil {
		return empty, apperrors.NewInternalError("failed to list apps", err)
	}
	return domain.NewPage(apps), nil
}

// UpdateApp applies field changes to an application
func (s *AppService) UpdateApp(ctx context.Context, id string, input UpdateAppInput) (*domain.App, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	app, err := uow.Apps().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load app", err)
	}
	if app == nil {
		return nil, apperrors.NewNotFoundError("App", id)
	}

	if fields := domain.ValidateApp(input.Name, input.Description); len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields...)
	}

	app.Name = input.Name
	app.Description = input.Description
	if input.Active != nil {
		app.Active = *input.Active
	}
	app.Touch()

	if _, err := uow.Apps().Update(ctx, app); err != nil {
		return nil, apperrors.NewInternalError("failed to update app", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save app", err)
	}
	return app, nil
}

// DeleteApp soft-deletes an application. An application still owning
// non-deleted clients cannot be deleted; nothing is committed in that case.
func (s *AppService) DeleteApp(ctx context.Context, id string) (*domain.App, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	app, err := uow.Apps().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load app", err)
	}
	if app == nil {
		return nil, apperrors.NewNotFoundError("App", id)
	}

	count, err := uow.Clients().CountActiveByAppID(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to count clients", err)
	}
	if count > 0 {
		return nil, apperrors.NewConflictError("ClientsPreventingDelete",
			fmt.Sprintf("application owns %d active clients", count))
	}

	app.SoftDelete()
	if _, err := uow.Apps().Update(ctx, app); err != nil {
		return nil, apperrors.NewInternalError("failed to delete app", err)
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, apperrors.NewInternalError("failed to save app", err)
	}

	s.logger.Info("app deleted", zap.String("id", app.ID))
	return app, nil
}
