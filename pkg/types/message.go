package types

// TemplateRef identifies the template a provisioning request was created from.
type TemplateRef struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	ResourceType ResourceType `json:"resourceType"`
}

// ProvisioningMessage is the asynchronous request handed to the external
// deployment pipeline to create infrastructure for a workspace. It is built
// once per persisted workspace and not stored beyond the publish attempt.
type ProvisioningMessage struct {
	WorkspaceID string         `json:"workspaceId"`
	Action      string         `json:"action"`
	Template    TemplateRef    `json:"template"`
	Parameters  map[string]any `json:"parameters"`
}

// ActionInstall is the provisioning action for initial workspace creation.
const ActionInstall = "install"
