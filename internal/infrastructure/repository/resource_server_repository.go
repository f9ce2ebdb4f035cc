package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ipede/app-admin-service/internal/domain"
	"github.com/ipede/app-admin-service/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ResourceServerRepository persists resource servers inside one unit-of-work
// transaction. Scopes are stored as JSONB.
type ResourceServerRepository struct {
	db     database.Querier
	logger *zap.Logger
}

// NewResourceServerRepository creates a new ResourceServerRepository bound to a transaction
func NewResourceServerRepository(db database.Querier, logger *zap.Logger) *ResourceServerRepository {
	return &ResourceServerRepository{db: db, logger: logger}
}

const resourceServerColumns = `id, external_id, audience, name, token_lifetime, scopes, cursor, created_at, updated_at, deleted_at`

func (r *ResourceServerRepository) scanResourceServer(row pgx.Row) (*domain.ResourceServer, error) {
	server := &domain.ResourceServer{}
	var scopes []byte

	err := row.Scan(&server.ID, &server.ExternalID, &server.Audience, &server.Name, &server.TokenLifetime,
		&scopes, &server.Cursor, &server.CreatedAt, &server.UpdatedAt, &server.DeletedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(scopes, &server.Scopes); err != nil {
		return nil, err
	}
	return server, nil
}

func (r *ResourceServerRepository) GetByID(ctx context.Context, id string) (*domain.ResourceServer, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+resourceServerColumns+`
		FROM resource_servers WHERE id = $1 AND deleted_at IS NULL
	`, id)
	server, err := r.scanResourceServer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find resource server by id", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return server, nil
}

func (r *ResourceServerRepository) Get(ctx context.Context, filter domain.ResourceServerFilter) ([]*domain.ResourceServer, error) {
	query := `
		SELECT ` + resourceServerColumns + `
		FROM resource_servers WHERE deleted_at IS NULL AND cursor >= $1`
	args := []any{filter.Page.Cursor}

	if filter.Name != "" {
		args = append(args, filter.Name)
		query += fmt.Sprintf(" AND name = $%d", len(args))
	}
	if filter.Audience != "" {
		args = append(args, filter.Audience)
		query += fmt.Sprintf(" AND audience = $%d", len(args))
	}

	args = append(args, filter.Page.PageSize)
	query += fmt.Sprintf(" ORDER BY cursor ASC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list resource servers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var servers []*domain.ResourceServer
	for rows.Next() {
		server, err := r.scanResourceServer(rows)
		if err != nil {
			r.logger.Error("failed to scan resource server", zap.Error(err))
			return nil, err
		}
		servers = append(servers, server)
	}
	return servers, rows.Err()
}

func (r *ResourceServerRepository) Create(ctx context.Context, server *domain.ResourceServer) error {
	scopes, err := json.Marshal(server.Scopes)
	if err != nil {
		return err
	}

	return r.db.Exec(ctx, `
		INSERT INTO resource_servers (id, external_id, audience, name, token_lifetime, scopes, cursor, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, server.ID, server.ExternalID, server.Audience, server.Name, server.TokenLifetime,
		scopes, server.Cursor, server.CreatedAt, server.UpdatedAt, server.DeletedAt)
}

func (r *ResourceServerRepository) Update(ctx context.Context, server *domain.ResourceServer) (*domain.ResourceServer, error) {
	scopes, err := json.Marshal(server.Scopes)
	if err != nil {
		return nil, err
	}

	err = r.db.Exec(ctx, `
		UPDATE resource_servers
		SET external_id = $1, audience = $2, name = $3, token_lifetime = $4, scopes = $5,
			cursor = $6, updated_at = $7, deleted_at = $8
		WHERE id = $9
	`, server.ExternalID, server.Audience, server.Name, server.TokenLifetime, scopes,
		server.Cursor, server.UpdatedAt, server.DeletedAt, server.ID)
	if err != nil {
		return nil, err
	}
	return server, nil
}
