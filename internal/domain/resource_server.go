package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Scope is a permission exposed by a resource server
type Scope struct {
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// HasScopes is implemented by aggregates that carry a set of scopes.
// Scope-assignment logic is written against this capability.
type HasScopes interface {
	GetScopes() []Scope
	SetScopes(scopes []Scope)
}

// ResourceServer represents an API protected by the identity provider.
// ExternalID is the identity provider's identifier, stored opaquely.
type ResourceServer struct {
	ID            string     `json:"id"`
	ExternalID    string     `json:"external_id"`
	Audience      string     `json:"audience"`
	Name          string     `json:"name"`
	TokenLifetime int        `json:"token_lifetime"`
	Scopes        []Scope    `json:"scopes,omitempty"`
	Cursor        int64      `json:"cursor"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// NewResourceServer creates a new resource server
func NewResourceServer(name, audience string, tokenLifetime int) *ResourceServer {
	now := time.Now().UTC()
	return &ResourceServer{
		ID:            ulid.Make().String(),
		Name:          name,
		Audience:      audience,
		TokenLifetime: tokenLifetime,
		Cursor:        now.UnixMicro(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Touch refreshes the modification timestamp and the derived cursor
func (r *ResourceServer) Touch() {
	r.UpdatedAt = time.Now().UTC()
	r.Cursor = r.UpdatedAt.UnixMicro()
}

// SoftDelete marks the resource server deleted without removing the row
func (r *ResourceServer) SoftDelete() {
	now := time.Now().UTC()
	r.DeletedAt = &now
	r.UpdatedAt = now
	r.Cursor = now.UnixMicro()
}

// IsDeleted reports whether the resource server is soft-deleted
func (r *ResourceServer) IsDeleted() bool {
	return r.DeletedAt != nil
}

// GetCursor implements HasCursor
func (r *ResourceServer) GetCursor() int64 {
	return r.Cursor
}

// GetScopes implements HasScopes
func (r *ResourceServer) GetScopes() []Scope {
	return r.Scopes
}

// SetScopes implements HasScopes
func (r *ResourceServer) SetScopes(scopes []Scope) {
	r.Scopes = scopes
}

// AssignScopes replaces the scope set on any scope-bearing aggregate and is
// written against the capability, not a concrete entity type.
func AssignScopes(target HasScopes, scopes []Scope) {
	out := make([]Scope, len(scopes))
	copy(out, scopes)
	target.SetScopes(out)
}
