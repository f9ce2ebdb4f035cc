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

// ProductRepository persists products inside one unit-of-work transaction
type ProductRepository struct {
	db     database.Querier
	logger *zap.Logger
}

// NewProductRepository creates a new ProductRepository bound to a transaction
func NewProductRepository(db database.Querier, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{db: db, logger: logger}
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product := &domain.Product{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, cursor, created_at, updated_at, deleted_at
		FROM products WHERE id = $1 AND deleted_at IS NULL
	`, id).Scan(&product.ID, &product.Name, &product.Description, &product.Cursor,
		&product.CreatedAt, &product.UpdatedAt, &product.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to find product by id", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) Get(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	query := `
		SELECT id, name, description, cursor, created_at, updated_at, deleted_at
		FROM products WHERE deleted_at IS NULL AND cursor >= $1`
	args := []any{filter.Page.Cursor}

	if filter.Name != "" {
		args = append(args, filter.Name)
		query += fmt.Sprintf(" AND name = $%d", len(args))
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
		r.logger.Error("failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product := &domain.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Cursor,
			&product.CreatedAt, &product.UpdatedAt, &product.DeletedAt); err != nil {
			r.logger.Error("failed to scan product", zap.Error(err))
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, cursor, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, product.ID, product.Name, product.Description, product.Cursor,
		product.CreatedAt, product.UpdatedAt, product.DeletedAt)
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, cursor = $3, updated_at = $4, deleted_at = $5
		WHERE id = $6
	`, product.Name, product.Description, product.Cursor, product.UpdatedAt, product.DeletedAt, product.ID)
	if err != nil {
		return nil, err
	}
	return product, nil
}
