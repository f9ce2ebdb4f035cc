package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Client represents a client owned by an application and mirrored at the
// identity provider. ExternalID and ExternalGrantID are foreign identifiers
// owned by the identity provider; they are stored as opaque strings.
type Client struct {
	ID              string     `json:"id"`
	ExternalID      string     `json:"external_id"`
	ExternalGrantID string     `json:"external_grant_id,omitempty"`
	AppID           string     `json:"app_id"`
	Type            ClientType `json:"-"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	LoginURL        string     `json:"login_url,omitempty"`
	CallbackURLs    []string   `json:"callback_urls,omitempty"`
	SignoutURLs     []string   `json:"signout_urls,omitempty"`
	Cursor          int64      `json:"cursor"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// NewClient creates a new client for an application
func NewClient(appID, name, description string, clientType ClientType) *Client {
	now := time.Now().UTC()
	return &Client{
		ID:          ulid.Make().String(),
		AppID:       appID,
		Type:        clientType,
		Name:        name,
		Description: description,
		Cursor:      now.UnixMicro(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Touch refreshes the modification timestamp and the derived cursor
func (c *Client) Touch() {
	c.UpdatedAt = time.Now().UTC()
	c.Cursor = c.UpdatedAt.UnixMicro()
}

// SoftDelete marks the client deleted without removing the row
func (c *Client) SoftDelete() {
	now := time.Now().UTC()
	c.DeletedAt = &now
	c.UpdatedAt = now
	c.Cursor = now.UnixMicro()
}

// IsDeleted reports whether the client is soft-deleted
func (c *Client) IsDeleted() bool {
	return c.DeletedAt != nil
}

// GetCursor implements HasCursor
func (c *Client) GetCursor() int64 {
	return c.Cursor
}
