// Package workspace composes the workspace-store write and the provisioning
// dispatch into one creation use case.
package workspace

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/opentre/opentre/internal/dispatch"
	"github.com/opentre/opentre/internal/template"
	"github.com/opentre/opentre/pkg/types"
)

// Store is the workspace persistence the orchestrator writes to. Implemented
// by db.Store.
type Store interface {
	CreateWorkspace(ctx context.Context, w *types.Workspace) (*types.Workspace, error)
}

// TemplateResolver resolves the current template a workspace is created from.
type TemplateResolver interface {
	GetCurrent(ctx context.Context, name string, resourceType types.ResourceType, parentServiceTemplateName string) (*types.ResourceTemplate, error)
}

// Orchestrator creates workspaces: validate, persist pending, dispatch.
type Orchestrator struct {
	store      Store
	templates  TemplateResolver
	dispatcher dispatch.Dispatcher
}

// NewOrchestrator wires the orchestrator with its collaborators. All are
// passed in explicitly; there is no ambient registry.
func NewOrchestrator(store Store, templates TemplateResolver, dispatcher dispatch.Dispatcher) *Orchestrator {
	return &Orchestrator{store: store, templates: templates, dispatcher: dispatcher}
}

// Create persists a new workspace in pending status and hands a provisioning
// request to the pipeline. The store write and the publish are two independent
// operations with no shared transaction: if the publish fails, the pending
// record is NOT retracted and the caller receives ErrDispatchUnavailable. That
// record will never be provisioned unless reconciled externally — a known gap
// in the contract, kept rather than papered over with a client-side rollback.
func (o *Orchestrator) Create(ctx context.Context, in types.WorkspaceCreate) (string, error) {
	tmpl, err := o.templates.GetCurrent(ctx, in.TemplateName, types.ResourceTypeWorkspace, "")
	if err != nil {
		return "", err
	}

	if violations := template.ValidateParameters(tmpl, in.Properties); len(violations) > 0 {
		return "", &template.ValidationError{TemplateName: tmpl.Name, Violations: violations}
	}

	ws := &types.Workspace{
		ID:              uuid.New().String(),
		TemplateName:    tmpl.Name,
		TemplateVersion: tmpl.Version,
		Properties:      in.Properties,
		Status:          types.WorkspaceStatusPending,
	}
	created, err := o.store.CreateWorkspace(ctx, ws)
	if err != nil {
		// No message is ever constructed if the write fails.
		return "", err
	}

	msg := types.ProvisioningMessage{
		WorkspaceID: created.ID,
		Action:      types.ActionInstall,
		Template: types.TemplateRef{
			Name:         tmpl.Name,
			Version:      tmpl.Version,
			ResourceType: tmpl.ResourceType,
		},
		Parameters: created.Properties,
	}
	if err := o.dispatcher.Publish(ctx, msg); err != nil {
		log.Printf("workspace: dispatch failed for %s, pending record remains: %v", created.ID, err)
		return "", err
	}

	// Fire-and-forget handoff: the caller gets the id immediately and does not
	// wait for provisioning to complete.
	return created.ID, nil
}
