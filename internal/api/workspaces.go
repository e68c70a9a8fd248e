package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opentre/opentre/internal/metrics"
	"github.com/opentre/opentre/pkg/types"
)

func (s *Server) listWorkspaces(c echo.Context) error {
	workspaces, err := s.workspaces.ListActiveWorkspaces(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]types.Workspace{"workspaces": workspaces})
}

func (s *Server) getWorkspace(c echo.Context) error {
	ws, err := s.workspaces.GetWorkspace(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]*types.Workspace{"workspace": ws})
}

// createWorkspace accepts the request and hands off to the provisioning
// pipeline. 202 means "persisted and dispatched", not "provisioned". A 503
// response is not safe to blindly retry: the pending record may already exist.
func (s *Server) createWorkspace(c echo.Context) error {
	var in types.WorkspaceCreate
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
	}
	if in.TemplateName == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "templateName is required",
		})
	}

	id, err := s.creator.Create(c.Request().Context(), in)
	if err != nil {
		return jsonError(c, err)
	}

	metrics.WorkspacesCreatedTotal.Inc()
	return c.JSON(http.StatusAccepted, map[string]string{"workspaceId": id})
}
