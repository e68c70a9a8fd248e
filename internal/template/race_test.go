package template

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/opentre/opentre/internal/db"
	"github.com/opentre/opentre/pkg/types"
)

// swapStore mirrors the real store's registration semantics in memory: the
// demotion of the previous current version and the insert of the new one are
// one atomic step, and a duplicate (name, version) is rejected.
type swapStore struct {
	mu        sync.Mutex
	templates []*types.ResourceTemplate
}

func (s *swapStore) CreateTemplate(ctx context.Context, reg types.TemplateRegistration, resourceType types.ResourceType) (*types.ResourceTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.templates {
		if t.Name == reg.Name && t.Version == reg.Version {
			return nil, fmt.Errorf("%w: %s/%s", db.ErrVersionConflict, reg.Name, reg.Version)
		}
	}
	if reg.Current {
		for _, t := range s.templates {
			if t.Name == reg.Name && t.ResourceType == resourceType && t.ParentServiceTemplateName == reg.ParentServiceTemplateName {
				t.Current = false
			}
		}
	}
	created := &types.ResourceTemplate{
		Name:                      reg.Name,
		Version:                   reg.Version,
		ResourceType:              resourceType,
		ParentServiceTemplateName: reg.ParentServiceTemplateName,
		Current:                   reg.Current,
	}
	s.templates = append(s.templates, created)
	return created, nil
}

func (s *swapStore) GetCurrentTemplate(ctx context.Context, name string, resourceType types.ResourceType, parent string) (*types.ResourceTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []*types.ResourceTemplate
	for _, t := range s.templates {
		if t.Name == name && t.ResourceType == resourceType && t.ParentServiceTemplateName == parent && t.Current {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil, db.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, db.ErrDuplicateCurrent
	}
}

func (s *swapStore) ListCurrentTemplateInfo(ctx context.Context, resourceType types.ResourceType) ([]types.TemplateInfo, error) {
	return nil, nil
}

func TestRegister_ConcurrentCurrentRegistrations(t *testing.T) {
	store := &swapStore{}
	r := NewResolver(store)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Register(context.Background(), types.TemplateRegistration{
				Name:    "base-workspace",
				Version: fmt.Sprintf("1.0.%d", i),
				Current: true,
			}, types.ResourceTypeWorkspace)
			if err != nil {
				t.Errorf("Register() error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	// However the registrations interleave, exactly one version ends up
	// current for the key.
	currentCount := 0
	for _, tmpl := range store.templates {
		if tmpl.Current {
			currentCount++
		}
	}
	if currentCount != 1 {
		t.Errorf("expected exactly 1 current template, got %d", currentCount)
	}

	if _, err := r.GetCurrent(context.Background(), "base-workspace", types.ResourceTypeWorkspace, ""); err != nil {
		t.Errorf("GetCurrent() after concurrent registrations: %v", err)
	}
}

func TestRegister_DuplicateVersionRejected(t *testing.T) {
	store := &swapStore{}
	r := NewResolver(store)

	reg := types.TemplateRegistration{Name: "base-workspace", Version: "1.0.0", Current: true}
	if _, err := r.Register(context.Background(), reg, types.ResourceTypeWorkspace); err != nil {
		t.Fatalf("first Register() error: %v", err)
	}
	_, err := r.Register(context.Background(), reg, types.ResourceTypeWorkspace)
	if !errors.Is(err, db.ErrVersionConflict) {
		t.Errorf("expected ErrVersionConflict, got %v", err)
	}
}
