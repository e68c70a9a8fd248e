package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/opentre/opentre/pkg/types"
)

const workspaceColumns = `id, template_name, template_version, properties, status, deleted, created_at, updated_at`

func scanWorkspace(row pgx.Row) (*types.Workspace, error) {
	w := &types.Workspace{}
	var id uuid.UUID
	err := row.Scan(
		&id, &w.TemplateName, &w.TemplateVersion, &w.Properties,
		&w.Status, &w.Deleted, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.ID = id.String()
	return w, nil
}

// CreateWorkspace persists a new workspace record in pending status.
func (s *Store) CreateWorkspace(ctx context.Context, w *types.Workspace) (*types.Workspace, error) {
	id, err := uuid.Parse(w.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid workspace id %q: %w", w.ID, err)
	}
	properties := w.Properties
	if properties == nil {
		properties = map[string]any{}
	}
	created, err := scanWorkspace(s.pool.QueryRow(ctx,
		`INSERT INTO workspaces (id, template_name, template_version, properties, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+workspaceColumns,
		id, w.TemplateName, w.TemplateVersion, properties, types.WorkspaceStatusPending,
	))
	if err != nil {
		return nil, fmt.Errorf("%w: create workspace: %v", ErrStoreUnavailable, err)
	}
	return created, nil
}

// GetWorkspace returns a workspace by id.
func (s *Store) GetWorkspace(ctx context.Context, id string) (*types.Workspace, error) {
	wsID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: workspace %q", ErrNotFound, id)
	}
	w, err := scanWorkspace(s.pool.QueryRow(ctx,
		`SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1 AND NOT deleted`, wsID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: workspace %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: get workspace: %v", ErrStoreUnavailable, err)
	}
	return w, nil
}

// ListActiveWorkspaces returns all workspaces that have not been soft-deleted.
func (s *Store) ListActiveWorkspaces(ctx context.Context) ([]types.Workspace, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+workspaceColumns+` FROM workspaces WHERE NOT deleted ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list workspaces: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	workspaces := []types.Workspace{}
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan workspace: %v", ErrStoreUnavailable, err)
		}
		workspaces = append(workspaces, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list workspaces: %v", ErrStoreUnavailable, err)
	}
	return workspaces, nil
}
