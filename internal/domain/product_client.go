package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ProductClient represents a client provisioned for a product, paired with
// the grant that authorizes it against the product's audience.
type ProductClient struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"product_id"`
	ClientID     string     `json:"client_id"`
	GrantID      string     `json:"grant_id,omitempty"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Type         ClientType `json:"-"`
	Audience     string     `json:"audience,omitempty"`
	CallbackURLs []string   `json:"callback_urls,omitempty"`
	SignoutURLs  []string   `json:"signout_urls,omitempty"`
	Cursor       int64      `json:"cursor"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// NewProductClient creates a new product client
func NewProductClient(productID, name, description string, clientType ClientType) *ProductClient {
	now := time.Now().UTC()
	return &ProductClient{
		ID:          ulid.Make().String(),
		ProductID:   productID,
		Name:        name,
		Description: description,
		Type:        clientType,
		Cursor:      now.UnixMicro(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Touch refreshes the modification timestamp and the derived cursor
func (pc *ProductClient) Touch() {
	pc.UpdatedAt = time.Now().UTC()
	pc.Cursor = pc.UpdatedAt.UnixMicro()
}

// SoftDelete marks the product client deleted without removing the row
func (pc *ProductClient) SoftDelete() {
	now := time.Now().UTC()
	pc.DeletedAt = &now
	pc.UpdatedAt = now
	pc.Cursor = now.UnixMicro()
}

// IsDeleted reports whether the product client is soft-deleted
func (pc *ProductClient) IsDeleted() bool {
	return pc.DeletedAt != nil
}

// GetCursor implements HasCursor
func (pc *ProductClient) GetCursor() int64 {
	return pc.Cursor
}
