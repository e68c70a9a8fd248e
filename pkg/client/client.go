// Package client is an HTTP client for the OpenTRE management API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/opentre/opentre/pkg/types"
)

// Client is an HTTP client for the OpenTRE management API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new management API client. token is a Bearer access
// token; it may be empty against a dev-mode server.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest performs an HTTP request with Bearer authentication.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	return resp, nil
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
}

// ListWorkspaceTemplates lists the current workspace template summaries.
func (c *Client) ListWorkspaceTemplates(ctx context.Context) ([]types.TemplateInfo, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/workspace-templates", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var out struct {
		Templates []types.TemplateInfo `json:"templates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Templates, nil
}

// GetWorkspaceTemplate returns the enriched current template for a name.
func (c *Client) GetWorkspaceTemplate(ctx context.Context, name string) (*types.ResourceTemplate, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/workspace-templates/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var tmpl types.ResourceTemplate
	if err := json.NewDecoder(resp.Body).Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &tmpl, nil
}

// RegisterWorkspaceTemplate registers a new workspace template version.
func (c *Client) RegisterWorkspaceTemplate(ctx context.Context, reg types.TemplateRegistration) (*types.ResourceTemplate, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/workspace-templates", reg)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp)
	}

	var tmpl types.ResourceTemplate
	if err := json.NewDecoder(resp.Body).Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &tmpl, nil
}

// ListWorkspaces lists all active workspaces.
func (c *Client) ListWorkspaces(ctx context.Context) ([]types.Workspace, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/workspaces", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var out struct {
		Workspaces []types.Workspace `json:"workspaces"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Workspaces, nil
}

// GetWorkspace returns a workspace by id.
func (c *Client) GetWorkspace(ctx context.Context, id string) (*types.Workspace, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/workspaces/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var out struct {
		Workspace *types.Workspace `json:"workspace"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Workspace, nil
}

// CreateWorkspace requests creation of a workspace and returns the new id.
// The workspace is provisioned asynchronously; the id is returned as soon as
// the request is accepted.
func (c *Client) CreateWorkspace(ctx context.Context, in types.WorkspaceCreate) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/workspaces", in)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return "", apiError(resp)
	}

	var out struct {
		WorkspaceID string `json:"workspaceId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.WorkspaceID, nil
}
