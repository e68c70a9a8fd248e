package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opentre/opentre/internal/metrics"
	"github.com/opentre/opentre/internal/template"
	"github.com/opentre/opentre/pkg/types"
)

func (s *Server) listTemplates(c echo.Context, resourceType types.ResourceType) error {
	infos, err := s.templates.ListInfo(c.Request().Context(), resourceType)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]types.TemplateInfo{"templates": infos})
}

func (s *Server) getTemplate(c echo.Context, resourceType types.ResourceType) error {
	name := c.Param("name")
	parent := c.QueryParam("parentServiceTemplateName")

	tmpl, err := s.templates.GetCurrent(c.Request().Context(), name, resourceType, parent)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, template.Enrich(tmpl))
}

func (s *Server) registerTemplate(c echo.Context, resourceType types.ResourceType) error {
	var reg types.TemplateRegistration
	if err := c.Bind(&reg); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body: " + err.Error(),
		})
	}
	if reg.Name == "" || reg.Version == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "name and version are required",
		})
	}

	created, err := s.templates.Register(c.Request().Context(), reg, resourceType)
	if err != nil {
		return jsonError(c, err)
	}

	metrics.TemplatesRegisteredTotal.WithLabelValues(string(resourceType)).Inc()
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) listWorkspaceTemplates(c echo.Context) error {
	return s.listTemplates(c, types.ResourceTypeWorkspace)
}

func (s *Server) getWorkspaceTemplate(c echo.Context) error {
	return s.getTemplate(c, types.ResourceTypeWorkspace)
}

func (s *Server) registerWorkspaceTemplate(c echo.Context) error {
	return s.registerTemplate(c, types.ResourceTypeWorkspace)
}

func (s *Server) listServiceTemplates(c echo.Context) error {
	return s.listTemplates(c, types.ResourceTypeWorkspaceService)
}

func (s *Server) getServiceTemplate(c echo.Context) error {
	return s.getTemplate(c, types.ResourceTypeWorkspaceService)
}

func (s *Server) registerServiceTemplate(c echo.Context) error {
	return s.registerTemplate(c, types.ResourceTypeWorkspaceService)
}
