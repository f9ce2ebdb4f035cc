package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ipede/app-admin-service/internal/domain"
	"github.com/ipede/app-admin-service/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// AppRepository persists applications inside one unit-of-work transaction
type AppRepository struct {
	db     database.Querier
	logger *zap.Logger
}

// NewAppRepository creates a new AppRepository bound to a transaction
func NewAppRepository(db database.Querier, logger *zap.Logger) *AppRepository {
	return &AppRepository{db: db, logger: logger}
}

func (r *AppRepository) GetByID(ctx context.Context, id string) (*domain.App, error) {
	app := &domain.App{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, active, cursor, created_at, updated_at, deleted_at
		FROM apps WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&app.ID, &app.Name, &app.Description, &app.Active, &app.Cursor, &app.CreatedAt, &app.UpdatedAt, &app.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find app by id", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return app, nil
}

func (r *AppRepository) Get(ctx context.Context, filter domain.AppFilter) ([]*domain.App, error) {
	query := `
		SELECT id, name, description, active, cursor, created_at, updated_at, deleted_at
		FROM apps WHERE deleted_at IS NULL AND cursor >= $1`
	args := []any{filter.Page.Cursor}

	if filter.Name != "" {
		args = append(args, filter.Name)
		query += fmt.Sprintf(" AND name = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(" AND active = $%d", len(args))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	args = append(args, filter.Page.PageSize)
	query += fmt.Sprintf(" ORDER BY cursor ASC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list apps", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var apps []*domain.App
	for rows.Next() {
		app := &domain.App{}
		if err := rows.Scan(&app.ID, &app.Name, &app.Description, &app.Active, &app.Cursor, &app.CreatedAt, &app.UpdatedAt, &app.DeletedAt); err != nil {
			r.logger.Error("failed to scan app", zap.Error(err))
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *AppRepository) Create(ctx context.Context, app *domain.App) error {
	return r.db.Exec(ctx, `
		INSERT INTO apps (id, name, description, active, cursor, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, app.ID, app.Name, app.Description, app.Active, app.Cursor, app.CreatedAt, app.UpdatedAt, app.DeletedAt)
}

func (r *AppRepository) Update(ctx context.Context, app *domain.App) (*domain.App, error) {
	err := r.db.Exec(ctx, `
		UPDATE apps
		SET name = $1, description = $2, active = $3, cursor = $4, updated_at = $5, deleted_at = $6
		WHERE id = $7
	`, app.Name, app.Description, app.Active, app.Cursor, app.UpdatedAt, app.DeletedAt, app.ID)
	if err != nil {
		return nil, err
	}
	return app, nil
}
