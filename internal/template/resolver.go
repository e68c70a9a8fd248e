package template

import (
	"context"
	"fmt"

	"github.com/opentre/opentre/pkg/types"
)

// Store is the template storage the resolver runs against. Implemented by
// db.Store; the store owns atomicity of the current-flag transition and the
// (name, version) uniqueness constraint.
type Store interface {
	CreateTemplate(ctx context.Context, reg types.TemplateRegistration, resourceType types.ResourceType) (*types.ResourceTemplate, error)
	GetCurrentTemplate(ctx context.Context, name string, resourceType types.ResourceType, parentServiceTemplateName string) (*types.ResourceTemplate, error)
	ListCurrentTemplateInfo(ctx context.Context, resourceType types.ResourceType) ([]types.TemplateInfo, error)
}

// Resolver resolves and registers resource template versions.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver backed by the given template store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// GetCurrent returns the single current template for (name, resourceType,
// parent). Store error kinds (NotFound, DuplicateCurrent, StoreUnavailable)
// propagate unchanged.
func (r *Resolver) GetCurrent(ctx context.Context, name string, resourceType types.ResourceType, parentServiceTemplateName string) (*types.ResourceTemplate, error) {
	return r.store.GetCurrentTemplate(ctx, name, resourceType, parentServiceTemplateName)
}

// Register validates and persists a new template version. Uniqueness of
// (name, version) and the single-current invariant are enforced atomically by
// the store, not checked here first.
func (r *Resolver) Register(ctx context.Context, reg types.TemplateRegistration, resourceType types.ResourceType) (*types.ResourceTemplate, error) {
	if reg.Name == "" {
		return nil, fmt.Errorf("template name is required")
	}
	if reg.Version == "" {
		return nil, fmt.Errorf("template version is required")
	}
	return r.store.CreateTemplate(ctx, reg, resourceType)
}

// ListInfo returns summaries of all current templates of a resource type.
func (r *Resolver) ListInfo(ctx context.Context, resourceType types.ResourceType) ([]types.TemplateInfo, error) {
	return r.store.ListCurrentTemplateInfo(ctx, resourceType)
}
