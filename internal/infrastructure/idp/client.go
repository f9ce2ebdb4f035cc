package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ipede/app-admin-service/internal/domain"
	"github.com/ipede/app-admin-service/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ManagementClient talks to the identity provider's management API. It
// implements domain.IdentityProvider. Requests inherit the caller's context
// deadline; the http.Client timeout is only a backstop.
type ManagementClient struct {
	baseURL    string
	token      string
	audience   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewManagementClient creates a new ManagementClient from configuration
func NewManagementClient(cfg *config.Config, logger *zap.Logger) *ManagementClient {
	return &ManagementClient{
		baseURL:  cfg.IdPBaseURL,
		token:    cfg.IdPToken,
		audience: cfg.IdPAudience,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type clientRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	GrantTypes       []string `json:"grant_types"`
	Callbacks        []string `json:"callbacks,omitempty"`
	AllowedLogoutURL []string `json:"allowed_logout_urls,omitempty"`
	InitiateLoginURI string   `json:"initiate_login_uri,omitempty"`
}

type clientResponse struct {
	ClientID string `json:"client_id"`
}

type clientGrantRequest struct {
	ClientID string   `json:"client_id"`
	Audience string   `json:"audience"`
	Scope    []string `json:"scope"`
}

type clientGrantResponse struct {
	ID string `json:"id"`
}

type resourceServerRequest struct {
	Name          string         `json:"name"`
	TokenLifetime int            `json:"token_lifetime"`
	Scopes        []domain.Scope `json:"scopes,omitempty"`
}

// AddClient creates a client at the identity provider. Machine clients also
// get a client-credentials grant against the configured audience; its id is
// returned alongside the client id.
func (c *ManagementClient) AddClient(ctx context.Context, spec *domain.ClientSpec) (*domain.ClientCredentials, error) {
	body := clientRequest{
		Name:             spec.Name,
		Description:      spec.Description,
		GrantTypes:       spec.Type.GrantTypes(),
		Callbacks:        spec.CallbackURLs,
		AllowedLogoutURL: spec.SignoutURLs,
		InitiateLoginURI: spec.LoginURL,
	}

	var created clientResponse
	if err := c.do(ctx, http.MethodPost, "/api/v2/clients", body, &created); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	credentials := &domain.ClientCredentials{ClientID: created.ClientID}
	if !spec.Type.IsMachine() {
		return credentials, nil
	}

	audience := spec.Audience
	if audience == "" {
		audience = c.audience
	}

	var grant clientGrantResponse
	grantBody := clientGrantRequest{ClientID: created.ClientID, Audience: audience, Scope: []string{}}
	if err := c.do(ctx, http.MethodPost, "/api/v2/client-grants", grantBody, &grant); err != nil {
		return nil, fmt.Errorf("failed to create client grant: %w", err)
	}
	credentials.GrantID = grant.ID
	return credentials, nil
}

// UpdateResourceServer pushes name, token lifetime and scopes to the remote
// resource server identified by the entity's external id.
func (c *ManagementClient) UpdateResourceServer(ctx context.Context, server *domain.ResourceServer) (bool, error) {
	body := resourceServerRequest{
		Name:          server.Name,
		TokenLifetime: server.TokenLifetime,
		Scopes:        server.Scopes,
	}
	path := "/api/v2/resource-servers/" + server.ExternalID
	if err := c.do(ctx, http.MethodPatch, path, body, nil); err != nil {
		return false, fmt.Errorf("failed to update resource server: %w", err)
	}
	return true, nil
}

// DeleteResourceServer deletes the remote resource server. A remote 404 is
// treated as success so duplicate deletes are tolerated.
func (c *ManagementClient) DeleteResourceServer(ctx context.Context, externalID string) (bool, error) {
	return c.delete(ctx, "/api/v2/resource-servers/"+externalID)
}

// DeleteClient deletes the remote client, tolerating "already absent"
func (c *ManagementClient) DeleteClient(ctx context.Context, externalID string) (bool, error) {
	return c.delete(ctx, "/api/v2/clients/"+externalID)
}

// DeleteGrant deletes the remote client grant, tolerating "already absent"
func (c *ManagementClient) DeleteGrant(ctx context.Context, externalID string) (bool, error) {
	return c.delete(ctx, "/api/v2/client-grants/"+externalID)
}

func (c *ManagementClient) delete(ctx context.Context, path string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Already absent remotely; the delete is effectively done.
		c.logger.Debug("remote resource already absent", zap.String("path", path))
		return true, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	default:
		return false, fmt.Errorf("identity provider returned status %d for DELETE %s", resp.StatusCode, path)
	}
}

func (c *ManagementClient) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("identity provider call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data))
		return fmt.Errorf("identity provider returned status %d for %s %s", resp.StatusCode, method, path)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
