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

// ClientRepository persists clients inside one unit-of-work transaction.
// URL collections are stored as JSONB; the client type as its integer value.
type ClientRepository struct {
	db     database.Querier
	logger *zap.Logger
}

// NewClientRepository creates a new ClientRepository bound to a transaction
func NewClientRepository(db database.Querier, logger *zap.Logger) *ClientRepository {
	return &ClientRepository{db: db, logger: logger}
}

const clientColumns = `id, external_id, external_grant_id, app_id, client_type, name, description,
		login_url, callback_urls, signout_urls, cursor, created_at, updated_at, deleted_at`

func (r *ClientRepository) scanClient(row pgx.Row) (*domain.Client, error) {
	client := &domain.Client{}
	var typeValue int
	var callbackURLs, signoutURLs []byte

	err := row.Scan(&client.ID, &client.ExternalID, &client.ExternalGrantID, &client.AppID, &typeValue,
		&client.Name, &client.Description, &client.LoginURL, &callbackURLs, &signoutURLs,
		&client.Cursor, &client.CreatedAt, &client.UpdatedAt, &client.DeletedAt)
	if err != nil {
		return nil, err
	}

	if t, ok := domain.ClientTypeFromValue(typeValue); ok {
		client.Type = t
	}
	if err := json.Unmarshal(callbackURLs, &client.CallbackURLs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(signoutURLs, &client.SignoutURLs); err != nil {
		return nil, err
	}
	return client, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+clientColumns+`
		FROM clients WHERE id = $1 AND deleted_at IS NULL
	`, id)
	client, err := r.scanClient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find client by id", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return client, nil
}

func (r *ClientRepository) Get(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients WHERE deleted_at IS NULL AND cursor >= $1`
	args := []any{filter.Page.Cursor}

	if filter.AppID != "" {
		args = append(args, filter.AppID)
		query += fmt.Sprintf(" AND app_id = $%d", len(args))
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		query += fmt.Sprintf(" AND name = $%d", len(args))
	}

	args = append(args, filter.Page.PageSize)
	query += fmt.Sprintf(" ORDER BY cursor ASC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list clients", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		client, err := r.scanClient(rows)
		if err != nil {
			r.logger.Error("failed to scan client", zap.Error(err))
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	callbackURLs, err := json.Marshal(client.CallbackURLs)
	if err != nil {
		return err
	}
	signoutURLs, err := json.Marshal(client.SignoutURLs)
	if err != nil {
		return err
	}

	return r.db.Exec(ctx, `
		INSERT INTO clients (id, external_id, external_grant_id, app_id, client_type, name, description,
			login_url, callback_urls, signout_urls, cursor, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, client.ID, client.ExternalID, client.ExternalGrantID, client.AppID, client.Type.Value(),
		client.Name, client.Description, client.LoginURL, callbackURLs, signoutURLs,
		client.Cursor, client.CreatedAt, client.UpdatedAt, client.DeletedAt)
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	callbackURLs, err := json.Marshal(client.CallbackURLs)
	if err != nil {
		return nil, err
	}
	signoutURLs, err := json.Marshal(client.SignoutURLs)
	if err != nil {
		return nil, err
	}

	err = r.db.Exec(ctx, `
		UPDATE clients
		SET external_id = $1, external_grant_id = $2, name = $3, description = $4, login_url = $5,
			callback_urls = $6, signout_urls = $7, cursor = $8, updated_at = $9, deleted_at = $10
		WHERE id = $11
	`, client.ExternalID, client.ExternalGrantID, client.Name, client.Description, client.LoginURL,
		callbackURLs, signoutURLs, client.Cursor, client.UpdatedAt, client.DeletedAt, client.ID)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *ClientRepository) CountActiveByAppID(ctx context.Context, appID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM clients WHERE app_id = $1 AND deleted_at IS NULL
	`, appID).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count clients for app", zap.String("app_id", appID), zap.Error(err))
		return 0, err
	}
	return count, nil
}
