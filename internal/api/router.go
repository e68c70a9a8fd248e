package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/opentre/opentre/internal/auth"
	"github.com/opentre/opentre/internal/metrics"
	"github.com/opentre/opentre/internal/template"
	"github.com/opentre/opentre/pkg/types"
)

// WorkspaceReader serves the workspace read endpoints. Implemented by db.Store.
type WorkspaceReader interface {
	GetWorkspace(ctx context.Context, id string) (*types.Workspace, error)
	ListActiveWorkspaces(ctx context.Context) ([]types.Workspace, error)
}

// WorkspaceCreator is the creation use case behind POST /workspaces.
type WorkspaceCreator interface {
	Create(ctx context.Context, in types.WorkspaceCreate) (string, error)
}

// Server holds the API server dependencies.
type Server struct {
	echo       *echo.Echo
	templates  *template.Resolver
	workspaces WorkspaceReader
	creator    WorkspaceCreator
}

// NewServer creates a new API server with all routes configured.
func NewServer(templates *template.Resolver, workspaces WorkspaceReader, creator WorkspaceCreator, jwtIssuer *auth.JWTIssuer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:       e,
		templates:  templates,
		workspaces: workspaces,
		creator:    creator,
	}

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(metrics.EchoMiddleware())

	// Health check and metrics (no auth)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// API routes (with auth)
	api := e.Group("")
	api.Use(auth.Middleware(jwtIssuer))

	// Workspace templates
	api.GET("/workspace-templates", s.listWorkspaceTemplates)
	api.GET("/workspace-templates/:name", s.getWorkspaceTemplate)
	api.POST("/workspace-templates", s.registerWorkspaceTemplate, auth.RequireAdmin())

	// Workspace service templates
	api.GET("/workspace-service-templates", s.listServiceTemplates)
	api.GET("/workspace-service-templates/:name", s.getServiceTemplate)
	api.POST("/workspace-service-templates", s.registerServiceTemplate, auth.RequireAdmin())

	// Workspaces
	api.GET("/workspaces", s.listWorkspaces)
	api.POST("/workspaces", s.createWorkspace)
	api.GET("/workspaces/:id", s.getWorkspace)

	return s
}

// Start starts the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	return s.echo.Close()
}

// Echo returns the underlying echo instance (used by handler tests).
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
