package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/opentre/opentre/pkg/types"
)

// templateColumns is the list of columns returned by all template queries.
const templateColumns = `id, name, version, resource_type, parent_service_template_name, current,
	title, description, schema_type, required, properties, custom_actions, created_at`

func scanResourceTemplate(row pgx.Row) (*types.ResourceTemplate, error) {
	t := &types.ResourceTemplate{}
	var id uuid.UUID
	err := row.Scan(
		&id, &t.Name, &t.Version, &t.ResourceType, &t.ParentServiceTemplateName, &t.Current,
		&t.Title, &t.Description, &t.Type, &t.Required, &t.Properties, &t.Actions, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.ID = id.String()
	return t, nil
}

// uniqueViolation reports whether err is a violation of the named unique
// constraint or index.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}
	return false
}

// CreateTemplate registers a new template version. The insert and the demotion
// of any previously current version for the same (name, resource_type, parent)
// key run in one transaction; the partial unique index on current rows makes a
// racing registration fail with ErrVersionConflict instead of leaving two
// current rows. There is deliberately no read-then-write sequencing here.
func (s *Store) CreateTemplate(ctx context.Context, reg types.TemplateRegistration, resourceType types.ResourceType) (*types.ResourceTemplate, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin template registration: %v", ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	if reg.Current {
		_, err = tx.Exec(ctx,
			`UPDATE resource_templates SET current = false
			 WHERE name = $1 AND resource_type = $2 AND parent_service_template_name = $3 AND current`,
			reg.Name, resourceType, reg.ParentServiceTemplateName)
		if err != nil {
			return nil, fmt.Errorf("%w: demote current template: %v", ErrStoreUnavailable, err)
		}
	}

	schemaType := reg.Type
	if schemaType == "" {
		schemaType = "object"
	}
	required := reg.Required
	if required == nil {
		required = []string{}
	}
	properties := reg.Properties
	if properties == nil {
		properties = map[string]types.Property{}
	}
	actions := reg.Actions
	if actions == nil {
		actions = []types.CustomAction{}
	}

	t, err := scanResourceTemplate(tx.QueryRow(ctx,
		`INSERT INTO resource_templates
		 (name, version, resource_type, parent_service_template_name, current,
		  title, description, schema_type, required, properties, custom_actions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+templateColumns,
		reg.Name, reg.Version, resourceType, reg.ParentServiceTemplateName, reg.Current,
		reg.Title, reg.Description, schemaType, required, properties, actions,
	))
	if err != nil {
		if uniqueViolation(err, "resource_templates_name_version_key") {
			return nil, fmt.Errorf("%w: %s/%s", ErrVersionConflict, reg.Name, reg.Version)
		}
		if uniqueViolation(err, "resource_templates_current_key") {
			// Lost the race against a concurrent registration for the same key.
			return nil, fmt.Errorf("%w: concurrent registration for %s", ErrVersionConflict, reg.Name)
		}
		return nil, fmt.Errorf("%w: insert template: %v", ErrStoreUnavailable, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit template registration: %v", ErrStoreUnavailable, err)
	}
	return t, nil
}

// GetCurrentTemplate returns the single current template for the composite key.
// Zero matches is ErrNotFound; more than one is ErrDuplicateCurrent — an
// integrity violation that must be surfaced, never resolved by picking a row.
func (s *Store) GetCurrentTemplate(ctx context.Context, name string, resourceType types.ResourceType, parentServiceTemplateName string) (*types.ResourceTemplate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+templateColumns+`
		 FROM resource_templates
		 WHERE name = $1 AND resource_type = $2 AND parent_service_template_name = $3 AND current`,
		name, resourceType, parentServiceTemplateName)
	if err != nil {
		return nil, fmt.Errorf("%w: query current template: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var matches []*types.ResourceTemplate
	for rows.Next() {
		t, err := scanResourceTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan template: %v", ErrStoreUnavailable, err)
		}
		matches = append(matches, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read current template: %v", ErrStoreUnavailable, err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: template %q", ErrNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: template %q has %d current versions", ErrDuplicateCurrent, name, len(matches))
	}
}

// ListCurrentTemplateInfo returns name/title/description summaries of all
// current templates of the given resource type.
func (s *Store) ListCurrentTemplateInfo(ctx context.Context, resourceType types.ResourceType) ([]types.TemplateInfo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, title, description FROM resource_templates
		 WHERE resource_type = $1 AND current ORDER BY name ASC`,
		resourceType)
	if err != nil {
		return nil, fmt.Errorf("%w: list templates: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	infos := []types.TemplateInfo{}
	for rows.Next() {
		var info types.TemplateInfo
		if err := rows.Scan(&info.Name, &info.Title, &info.Description); err != nil {
			return nil, fmt.Errorf("%w: scan template info: %v", ErrStoreUnavailable, err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list templates: %v", ErrStoreUnavailable, err)
	}
	return infos, nil
}
