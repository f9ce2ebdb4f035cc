package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Grant links a client to a resource server. ExternalID is the identity
// provider's grant identifier, stored as an opaque string.
type Grant struct {
	ID               string     `json:"id"`
	ExternalID       string     `json:"external_id"`
	ClientID         string     `json:"client_id"`
	ResourceServerID string     `json:"resource_server_id"`
	Cursor           int64      `json:"cursor"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// NewGrant creates a new grant between a client and a resource server
func NewGrant(clientID, resourceServerID, externalID string) *Grant {
	now := time.Now().UTC()
	return &Grant{
		ID:               ulid.Make().String(),
		ExternalID:       externalID,
		ClientID:         clientID,
		ResourceServerID: resourceServerID,
		Cursor:           now.UnixMicro(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Touch refreshes the modification timestamp and the derived cursor
func (g *Grant) Touch() {
	g.UpdatedAt = time.Now().UTC()
	g.Cursor = g.UpdatedAt.UnixMicro()
}

// SoftDelete marks the grant deleted without removing the row
func (g *Grant) SoftDelete() {
	now := time.Now().UTC()
	g.DeletedAt = &now
	g.UpdatedAt = now
	g.Cursor = now.UnixMicro()
}

// IsDeleted reports whether the grant is soft-deleted
func (g *Grant) IsDeleted() bool {
	return g.DeletedAt != nil
}

// GetCursor implements HasCursor
func (g *Grant) GetCursor() int64 {
	return g.Cursor
}
