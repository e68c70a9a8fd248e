package types

import "time"

// ResourceType identifies what kind of resource a template describes.
type ResourceType string

const (
	ResourceTypeWorkspace        ResourceType = "workspace"
	ResourceTypeWorkspaceService ResourceType = "workspace-service"
)

// Property describes a single schema property of a resource template.
type Property struct {
	Type        string `json:"type"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
}

// CustomAction is a named operation a provisioned resource supports beyond
// create/delete (e.g. "disable").
type CustomAction struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ResourceTemplate is a named, versioned schema describing the parameters a
// workspace or workspace service requires, plus the custom actions it supports.
//
// Within one composite key (name, resourceType, parentServiceTemplateName) at
// most one version is current; (name, version) pairs are unique. Both are
// enforced by the template store.
type ResourceTemplate struct {
	ID                        string              `json:"id"`
	Name                      string              `json:"name"`
	Version                   string              `json:"version"`
	ResourceType              ResourceType        `json:"resourceType"`
	ParentServiceTemplateName string              `json:"parentServiceTemplateName,omitempty"`
	Current                   bool                `json:"current"`
	Title                     string              `json:"title,omitempty"`
	Description               string              `json:"description,omitempty"`
	Type                      string              `json:"type"`
	Required                  []string            `json:"required"`
	Properties                map[string]Property `json:"properties"`
	Actions                   []CustomAction      `json:"customActions,omitempty"`
	CreatedAt                 time.Time           `json:"createdAt"`
}

// TemplateInfo is the summary returned by template list endpoints.
type TemplateInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// TemplateRegistration is the request body for registering a new template
// version.
type TemplateRegistration struct {
	Name                      string              `json:"name"`
	Version                   string              `json:"version"`
	Current                   bool                `json:"current"`
	ParentServiceTemplateName string              `json:"parentServiceTemplateName,omitempty"`
	Title                     string              `json:"title,omitempty"`
	Description               string              `json:"description,omitempty"`
	Type                      string              `json:"type,omitempty"`
	Required                  []string            `json:"required,omitempty"`
	Properties                map[string]Property `json:"properties,omitempty"`
	Actions                   []CustomAction      `json:"customActions,omitempty"`
}
