package dto

// CreateAppRequest is the payload for creating an application
type CreateAppRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateAppRequest is the payload for updating an application
type UpdateAppRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

// CreateClientRequest is the payload for creating a client
type CreateClientRequest struct {
	AppID        string   `json:"app_id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Type         string   `json:"type" validate:"required"`
	LoginURL     string   `json:"login_url"`
	CallbackURLs []string `json:"callback_urls"`
	SignoutURLs  []string `json:"signout_urls"`
	Audience     string   `json:"audience"`
}

// UpdateClientRequest is the payload for updating a client
type UpdateClientRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	LoginURL     string   `json:"login_url"`
	CallbackURLs []string `json:"callback_urls"`
	SignoutURLs  []string `json:"signout_urls"`
}

// CreateGrantRequest is the payload for creating a grant
type CreateGrantRequest struct {
	ClientID         string `json:"client_id" validate:"required"`
	ResourceServerID string `json:"resource_server_id" validate:"required"`
	ExternalID       string `json:"external_id"`
}

// ScopeRequest is one scope inside a resource server payload
type ScopeRequest struct {
	Value       string `json:"value" validate:"required"`
	Description string `json:"description"`
}

// CreateResourceServerRequest is the payload for creating a resource server
type CreateResourceServerRequest struct {
	Name          string         `json:"name" validate:"required"`
	Audience      string         `json:"audience" validate:"required"`
	TokenLifetime int            `json:"token_lifetime" validate:"required"`
	Scopes        []ScopeRequest `json:"scopes"`
	ExternalID    string         `json:"external_id"`
}

// UpdateResourceServerRequest is the payload for updating a resource server
type UpdateResourceServerRequest struct {
	Name          string         `json:"name" validate:"required"`
	TokenLifetime int            `json:"token_lifetime" validate:"required"`
	Scopes        []ScopeRequest `json:"scopes"`
}

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateProductRequest is the payload for updating a product
type UpdateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateProductClientRequest is the payload for provisioning a product client
type CreateProductClientRequest struct {
	ProductID    string   `json:"product_id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Type         string   `json:"type" validate:"required"`
	Audience     string   `json:"audience"`
	CallbackURLs []string `json:"callback_urls"`
	SignoutURLs  []string `json:"signout_urls"`
}

// UpdateProductClientRequest is the payload for updating a product client
type UpdateProductClientRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	CallbackURLs []string `json:"callback_urls"`
	SignoutURLs  []string `json:"signout_urls"`
}
