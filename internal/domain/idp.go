package domain

import "context"

// ClientSpec describes the client to create at the identity provider
type ClientSpec struct {
	Name         string
	Description  string
	Type         ClientType
	LoginURL     string
	CallbackURLs []string
	SignoutURLs  []string
	// Audience the client-credentials grant is issued against; only
	// meaningful for machine clients. Empty means the configured default.
	Audience string
}

// ClientCredentials carries the identity provider's identifiers for a newly
// created client. GrantID is non-empty exactly when the client is a machine
// client, whose client-credentials grant is created alongside it.
type ClientCredentials struct {
	ClientID string
	GrantID  string
}

// IdentityProvider abstracts the external identity provider's management
// API. None of the delete operations may be assumed idempotent remotely;
// implementations must treat "already absent" as success so duplicate
// deletes are tolerated. Calls inherit the ambient request deadline.
type IdentityProvider interface {
	AddClient(ctx context.Context, spec *ClientSpec) (*ClientCredentials, error)
	UpdateResourceServer(ctx context.Context, server *ResourceServer) (bool, error)
	DeleteResourceServer(ctx context.Context, externalID string) (bool, error)
	DeleteClient(ctx context.Context, externalID string) (bool, error)
	DeleteGrant(ctx context.Context, externalID string) (bool, error)
}
