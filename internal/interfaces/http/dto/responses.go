package dto

import (
	"time"

	"github.com/ipede/app-admin-service/internal/domain"
)

// PageResponse is the envelope for every paginated list response
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	ItemCount  int   `json:"item_count"`
	NextCursor int64 `json:"next_cursor"`
}

// NewPageResponse converts a domain page into its transport form
func NewPageResponse[D domain.HasCursor, T any](page domain.Page[D], convert func(D) T) PageResponse[T] {
	data := make([]T, len(page.Data))
	for i, item := range page.Data {
		data[i] = convert(item)
	}
	return PageResponse[T]{
		Data:       data,
		ItemCount:  page.ItemCount,
		NextCursor: page.NextCursor,
	}
}

// AppResponse is the transport form of an application
type AppResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Active      bool       `json:"active"`
	Cursor      int64      `json:"cursor"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// NewAppResponse converts an App
func NewAppResponse(app *domain.App) AppResponse {
	return AppResponse{
		ID:          app.ID,
		Name:        app.Name,
		Description: app.Description,
		Active:      app.Active,
		Cursor:      app.Cursor,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
		DeletedAt:   app.DeletedAt,
	}
}

// ClientResponse is the transport form of a client
type ClientResponse struct {
	ID              string     `json:"id"`
	ExternalID      string     `json:"external_id"`
	ExternalGrantID string     `json:"external_grant_id,omitempty"`
	AppID           string     `json:"app_id"`
	Type            string     `json:"type"`
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

// NewClientResponse converts a Client
func NewClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:              client.ID,
		ExternalID:      client.ExternalID,
		ExternalGrantID: client.ExternalGrantID,
		AppID:           client.AppID,
		Type:            client.Type.Name(),
		Name:            client.Name,
		Description:     client.Description,
		LoginURL:        client.LoginURL,
		CallbackURLs:    client.CallbackURLs,
		SignoutURLs:     client.SignoutURLs,
		Cursor:          client.Cursor,
		CreatedAt:       client.CreatedAt,
		UpdatedAt:       client.UpdatedAt,
		DeletedAt:       client.DeletedAt,
	}
}

// GrantResponse is the transport form of a grant
type GrantResponse struct {
	ID               string     `json:"id"`
	ExternalID       string     `json:"external_id"`
	ClientID         string     `json:"client_id"`
	ResourceServerID string     `json:"resource_server_id"`
	Cursor           int64      `json:"cursor"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// NewGrantResponse converts a Grant
func NewGrantResponse(grant *domain.Grant) GrantResponse {
	return GrantResponse{
		ID:               grant.ID,
		ExternalID:       grant.ExternalID,
		ClientID:         grant.ClientID,
		ResourceServerID: grant.ResourceServerID,
		Cursor:           grant.Cursor,
		CreatedAt:        grant.CreatedAt,
		UpdatedAt:        grant.UpdatedAt,
		DeletedAt:        grant.DeletedAt,
	}
}

// ResourceServerResponse is the transport form of a resource server
type ResourceServerResponse struct {
	ID            string         `json:"id"`
	ExternalID    string         `json:"external_id"`
	Audience      string         `json:"audience"`
	Name          string         `json:"name"`
	TokenLifetime int            `json:"token_lifetime"`
	Scopes        []domain.Scope `json:"scopes,omitempty"`
	Cursor        int64          `json:"cursor"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     *time.Time     `json:"deleted_at,omitempty"`
}

// NewResourceServerResponse converts a ResourceServer
func NewResourceServerResponse(server *domain.ResourceServer) ResourceServerResponse {
	return ResourceServerResponse{
		ID:            server.ID,
		ExternalID:    server.ExternalID,
		Audience:      server.Audience,
		Name:          server.Name,
		TokenLifetime: server.TokenLifetime,
		Scopes:        server.Scopes,
		Cursor:        server.Cursor,
		CreatedAt:     server.CreatedAt,
		UpdatedAt:     server.UpdatedAt,
		DeletedAt:     server.DeletedAt,
	}
}

// ProductResponse is the transport form of a product
type ProductResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cursor      int64      `json:"cursor"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// NewProductResponse converts a Product
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Cursor:      product.Cursor,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
		DeletedAt:   product.DeletedAt,
	}
}

// ProductClientResponse is the transport form of a product client
type ProductClientResponse struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"product_id"`
	ClientID     string     `json:"client_id"`
	GrantID      string     `json:"grant_id,omitempty"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Type         string     `json:"type"`
	Audience     string     `json:"audience,omitempty"`
	CallbackURLs []string   `json:"callback_urls,omitempty"`
	SignoutURLs  []string   `json:"signout_urls,omitempty"`
	Cursor       int64      `json:"cursor"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// NewProductClientResponse converts a ProductClient
func NewProductClientResponse(pc *domain.ProductClient) ProductClientResponse {
	return ProductClientResponse{
		ID:           pc.ID,
		ProductID:    pc.ProductID,
		ClientID:     pc.ClientID,
		GrantID:      pc.GrantID,
		Name:         pc.Name,
		Description:  pc.Description,
		Type:         pc.Type.Name(),
		Audience:     pc.Audience,
		CallbackURLs: pc.CallbackURLs,
		SignoutURLs:  pc.SignoutURLs,
		Cursor:       pc.Cursor,
		CreatedAt:    pc.CreatedAt,
		UpdatedAt:    pc.UpdatedAt,
		DeletedAt:    pc.DeletedAt,
	}
}
