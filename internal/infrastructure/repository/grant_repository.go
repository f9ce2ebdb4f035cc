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

// GrantRepository persists grants inside one unit-of-work transaction
type GrantRepository struct {
	db     database.Querier
	logger *zap.Logger
}

// NewGrantRepository creates a new GrantRepository bound to a transaction
func NewGrantRepository(db database.Querier, logger *zap.Logger) *GrantRepository {
	return &GrantRepository{db: db, logger: logger}
}

const grantColumns = `id, external_id, client_id, resource_server_id, cursor, created_at, updated_at, deleted_at`

func (r *GrantRepository) scanGrant(row pgx.Row) (*domain.Grant, error) {
	grant := &domain.Grant{}
	err := row.Scan(&grant.ID, &grant.ExternalID, &grant.ClientID, &grant.ResourceServerID,
		&grant.Cursor, &grant.CreatedAt, &grant.UpdatedAt, &grant.DeletedAt)
	if err != nil {
		return nil, err
	}
	return grant, nil
}

func (r *GrantRepository) GetByID(ctx context.Context, id string) (*domain.Grant, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+grantColumns+`
		FROM grants WHERE id = $1 AND deleted_at IS NULL
	`, id)
	grant, err := r.scanGrant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find grant by id", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return grant, nil
}

func (r *GrantRepository) Get(ctx context.Context, filter domain.GrantFilter) ([]*domain.Grant, error) {
	query := `
		SELECT ` + grantColumns + `
		FROM grants WHERE deleted_at IS NULL AND cursor >= $1`
	args := []any{filter.Page.Cursor}

	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.ResourceServerID != "" {
		args = append(args, filter.ResourceServerID)
		query += fmt.Sprintf(" AND resource_server_id = $%d", len(args))
	}

	args = append(args, filter.Page.PageSize)
	query += fmt.Sprintf(" ORDER BY cursor ASC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list grants", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var grants []*domain.Grant
	for rows.Next() {
		grant, err := r.scanGrant(rows)
		if err != nil {
			r.logger.Error("failed to scan grant", zap.Error(err))
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

func (r *GrantRepository) GetByClientID(ctx context.Context, clientID string) ([]*domain.Grant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+grantColumns+`
		FROM grants WHERE client_id = $1 AND deleted_at IS NULL
	`, clientID)
	if err != nil {
		r.logger.Error("failed to list grants for client", zap.String("client_id", clientID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var grants []*domain.Grant
	for rows.Next() {
		grant, err := r.scanGrant(rows)
		if err != nil {
			r.logger.Error("failed to scan grant", zap.Error(err))
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

func (r *GrantRepository) Create(ctx context.Context, grant *domain.Grant) error {
	return r.db.Exec(ctx, `
		INSERT INTO grants (id, external_id, client_id, resource_server_id, cursor, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, grant.ID, grant.ExternalID, grant.ClientID, grant.ResourceServerID,
		grant.Cursor, grant.CreatedAt, grant.UpdatedAt, grant.DeletedAt)
}

func (r *GrantRepository) Update(ctx context.Context, grant *domain.Grant) (*domain.Grant, error) {
	err := r.db.Exec(ctx, `
		UPDATE grants
		SET external_id = $1, cursor = $2, updated_at = $3, deleted_at = $4
		WHERE id = $5
	`, grant.ExternalID, grant.Cursor, grant.UpdatedAt, grant.DeletedAt, grant.ID)
	if err != nil {
		return nil, err
	}
	return grant, nil
}
