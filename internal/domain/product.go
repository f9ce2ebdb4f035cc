package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Product represents an administered product
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cursor      int64      `json:"cursor"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// NewProduct creates a new product
func NewProduct(name, description string) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:          ulid.Make().String(),
		Name:        name,
		Description: description,
		Cursor:      now.UnixMicro(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Touch refreshes the modification timestamp and the derived cursor
func (p *Product) Touch() {
	p.UpdatedAt = time.Now().UTC()
	p.Cursor = p.UpdatedAt.UnixMicro()
}

// SoftDelete marks the product deleted without removing the row
func (p *Product) SoftDelete() {
	now := time.Now().UTC()
	p.DeletedAt = &now
	p.UpdatedAt = now
	p.Cursor = now.UnixMicro()
}

// IsDeleted reports whether the product is soft-deleted
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// GetCursor implements HasCursor
func (p *Product) GetCursor() int64 {
	return p.Cursor
}
