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

// ProductClientRepository persists product clients inside one unit-of-work transaction
type ProductClientRepository struct {
	db     database.Querier
	logger *zap.Logger
}

// NewProductClientRepository creates a new ProductClientRepository bound to a transaction
func NewProductClientRepository(db database.Querier, logger *zap.Logger) *ProductClientRepository {
	return &ProductClientRepository{db: db, logger: logger}
}

const productClientColumns = `id, product_id, client_id, grant_id, name, description, client_type,
		audience, callback_urls, signout_urls, cursor, created_at, updated_at, deleted_at`

func (r *ProductClientRepository) scanProductClient(row pgx.Row) (*domain.ProductClient, error) {
	pc := &domain.ProductClient{}
	var typeValue int
	var callbackURLs, signoutURLs []byte

	err := row.Scan(&pc.ID, &pc.ProductID, &pc.ClientID, &pc.GrantID, &pc.Name, &pc.Description,
		&typeValue, &pc.Audience, &callbackURLs, &signoutURLs,
		&pc.Cursor, &pc.CreatedAt, &pc.UpdatedAt, &pc.DeletedAt)
	if err != nil {
		return nil, err
	}

	if t, ok := domain.ClientTypeFromValue(typeValue); ok {
		pc.Type = t
	}
	if err := json.Unmarshal(callbackURLs, &pc.CallbackURLs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(signoutURLs, &pc.SignoutURLs); err != nil {
		return nil, err
	}
	return pc, nil
}

func (r *ProductClientRepository) GetByID(ctx context.Context, id string) (*domain.ProductClient, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productClientColumns+`
		FROM product_clients WHERE id = $1 AND deleted_at IS NULL
	`, id)
	pc, err := r.scanProductClient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find product client by id", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return pc, nil
}

func (r *ProductClientRepository) Get(ctx context.Context, filter domain.ProductClientFilter) ([]*domain.ProductClient, error) {
	query := `
		SELECT ` + productClientColumns + `
		FROM product_clients WHERE deleted_at IS NULL AND cursor >= $1`
	args := []any{filter.Page.Cursor}

	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		query += fmt.Sprintf(" AND name = $%d", len(args))
	}

	args = append(args, filter.Page.PageSize)
	query += fmt.Sprintf(" ORDER BY cursor ASC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list product clients", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var productClients []*domain.ProductClient
	for rows.Next() {
		pc, err := r.scanProductClient(rows)
		if err != nil {
			r.logger.Error("failed to scan product client", zap.Error(err))
			return nil, err
		}
		productClients = append(productClients, pc)
	}
	return productClients, rows.Err()
}

func (r *ProductClientRepository) Create(ctx context.Context, pc *domain.ProductClient) error {
	callbackURLs, err := json.Marshal(pc.CallbackURLs)
	if err != nil {
		return err
	}
	signoutURLs, err := json.Marshal(pc.SignoutURLs)
	if err != nil {
		return err
	}

	return r.db.Exec(ctx, `
		INSERT INTO product_clients (id, product_id, client_id, grant_id, name, description, client_type,
			audience, callback_urls, signout_urls, cursor, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, pc.ID, pc.ProductID, pc.ClientID, pc.GrantID, pc.Name, pc.Description, pc.Type.Value(),
		pc.Audience, callbackURLs, signoutURLs, pc.Cursor, pc.CreatedAt, pc.UpdatedAt, pc.DeletedAt)
}

func (r *ProductClientRepository) Update(ctx context.Context, pc *domain.ProductClient) (*domain.ProductClient, error) {
	callbackURLs, err := json.Marshal(pc.CallbackURLs)
	if err != nil {
		return nil, err
	}
	signoutURLs, err := json.Marshal(pc.SignoutURLs)
	if err != nil {
		return nil, err
	}

	err = r.db.Exec(ctx, `
		UPDATE product_clients
		SET client_id = $1, grant_id = $2, name = $3, description = $4, audience = $5,
			callback_urls = $6, signout_urls = $7, cursor = $8, updated_at = $9, deleted_at = $10
		WHERE id = $11
	`, pc.ClientID, pc.GrantID, pc.Name, pc.Description, pc.Audience,
		callbackURLs, signoutURLs, pc.Cursor, pc.UpdatedAt, pc.DeletedAt, pc.ID)
	if err != nil {
		return nil, err
	}
	return pc, nil
}
