package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/opentre/opentre/internal/db"
	"github.com/opentre/opentre/internal/dispatch"
	"github.com/opentre/opentre/internal/template"
	"github.com/opentre/opentre/pkg/types"
)

type fakeWorkspaceStore struct {
	created []*types.Workspace
	err     error
}

func (f *fakeWorkspaceStore) CreateWorkspace(ctx context.Context, w *types.Workspace) (*types.Workspace, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, w)
	return w, nil
}

type fakeResolver struct {
	tmpl *types.ResourceTemplate
	err  error
}

func (f *fakeResolver) GetCurrent(ctx context.Context, name string, resourceType types.ResourceType, parent string) (*types.ResourceTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tmpl, nil
}

type fakeDispatcher struct {
	published []types.ProvisioningMessage
	err       error
}

func (f *fakeDispatcher) Publish(ctx context.Context, msg types.ProvisioningMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func currentTemplate() *types.ResourceTemplate {
	return &types.ResourceTemplate{
		Name:         "base-workspace",
		Version:      "1.2.0",
		ResourceType: types.ResourceTypeWorkspace,
		Current:      true,
		Required:     []string{"display_name"},
		Properties: map[string]types.Property{
			"display_name": {Type: "string"},
		},
	}
}

func TestCreate_PersistsAndDispatches(t *testing.T) {
	store := &fakeWorkspaceStore{}
	dispatcher := &fakeDispatcher{}
	o := NewOrchestrator(store, &fakeResolver{tmpl: currentTemplate()}, dispatcher)

	id, err := o.Create(context.Background(), types.WorkspaceCreate{
		TemplateName: "base-workspace",
		Properties:   map[string]any{"display_name": "Project X"},
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a workspace id")
	}

	if len(store.created) != 1 {
		t.Fatalf("expected 1 store write, got %d", len(store.created))
	}
	ws := store.created[0]
	if ws.Status != types.WorkspaceStatusPending {
		t.Errorf("expected pending status, got %q", ws.Status)
	}
	if ws.TemplateName != "base-workspace" || ws.TemplateVersion != "1.2.0" {
		t.Errorf("unexpected template pin: %s@%s", ws.TemplateName, ws.TemplateVersion)
	}

	if len(dispatcher.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(dispatcher.published))
	}
	msg := dispatcher.published[0]
	if msg.WorkspaceID != id {
		t.Errorf("message carries workspace id %q, want %q", msg.WorkspaceID, id)
	}
	if msg.Action != types.ActionInstall {
		t.Errorf("expected install action, got %q", msg.Action)
	}
	if msg.Template.Name != "base-workspace" || msg.Template.Version != "1.2.0" {
		t.Errorf("unexpected template ref: %+v", msg.Template)
	}
}

func TestCreate_UnknownTemplate(t *testing.T) {
	store := &fakeWorkspaceStore{}
	dispatcher := &fakeDispatcher{}
	o := NewOrchestrator(store, &fakeResolver{err: db.ErrNotFound}, dispatcher)

	_, err := o.Create(context.Background(), types.WorkspaceCreate{TemplateName: "missing"})
	if !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(store.created) != 0 {
		t.Error("store was written for an unknown template")
	}
	if len(dispatcher.published) != 0 {
		t.Error("message was published for an unknown template")
	}
}

func TestCreate_InvalidParameters(t *testing.T) {
	store := &fakeWorkspaceStore{}
	dispatcher := &fakeDispatcher{}
	o := NewOrchestrator(store, &fakeResolver{tmpl: currentTemplate()}, dispatcher)

	_, err := o.Create(context.Background(), types.WorkspaceCreate{
		TemplateName: "base-workspace",
		Properties:   map[string]any{"bogus": 1},
	})

	var verr *template.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Violations) != 2 {
		t.Errorf("expected 2 violations, got %d", len(verr.Violations))
	}
	if len(store.created) != 0 {
		t.Error("store was written despite invalid parameters")
	}
	if len(dispatcher.published) != 0 {
		t.Error("message was published despite invalid parameters")
	}
}

func TestCreate_StoreFailureSkipsDispatch(t *testing.T) {
	store := &fakeWorkspaceStore{err: db.ErrStoreUnavailable}
	dispatcher := &fakeDispatcher{}
	o := NewOrchestrator(store, &fakeResolver{tmpl: currentTemplate()}, dispatcher)

	_, err := o.Create(context.Background(), types.WorkspaceCreate{
		TemplateName: "base-workspace",
		Properties:   map[string]any{"display_name": "Project X"},
	})
	if !errors.Is(err, db.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if len(dispatcher.published) != 0 {
		t.Error("message was published after a failed store write")
	}
}

func TestCreate_DispatchFailureLeavesPendingRecord(t *testing.T) {
	store := &fakeWorkspaceStore{}
	dispatcher := &fakeDispatcher{err: dispatch.ErrDispatchUnavailable}
	o := NewOrchestrator(store, &fakeResolver{tmpl: currentTemplate()}, dispatcher)

	_, err := o.Create(context.Background(), types.WorkspaceCreate{
		TemplateName: "base-workspace",
		Properties:   map[string]any{"display_name": "Project X"},
	})
	if !errors.Is(err, dispatch.ErrDispatchUnavailable) {
		t.Fatalf("expected ErrDispatchUnavailable, got %v", err)
	}

	// The pending record survives the failed publish; it is not retracted.
	if len(store.created) != 1 {
		t.Fatalf("expected the pending record to remain, got %d writes", len(store.created))
	}
	if store.created[0].Status != types.WorkspaceStatusPending {
		t.Errorf("expected pending status, got %q", store.created[0].Status)
	}
}
