package types

import "time"

// WorkspaceStatus is the lifecycle state of a workspace as seen by the
// management API. Only "pending" is ever written here; the later states are
// owned by the external provisioning pipeline.
type WorkspaceStatus string

const (
	WorkspaceStatusPending   WorkspaceStatus = "pending"
	WorkspaceStatusDeploying WorkspaceStatus = "deploying"
	WorkspaceStatusDeployed  WorkspaceStatus = "deployed"
	WorkspaceStatusFailed    WorkspaceStatus = "failed"
)

// Workspace is a provisioned (or provisioning) research workspace.
type Workspace struct {
	ID              string          `json:"id"`
	TemplateName    string          `json:"templateName"`
	TemplateVersion string          `json:"templateVersion,omitempty"`
	Properties      map[string]any  `json:"properties"`
	Status          WorkspaceStatus `json:"status"`
	Deleted         bool            `json:"-"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// WorkspaceCreate is the request body for creating a workspace.
type WorkspaceCreate struct {
	TemplateName string         `json:"templateName"`
	Properties   map[string]any `json:"properties"`
}
