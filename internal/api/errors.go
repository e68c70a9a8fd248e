package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opentre/opentre/internal/db"
	"github.com/opentre/opentre/internal/dispatch"
	"github.com/opentre/opentre/internal/template"
)

// jsonError maps a store/orchestrator error kind to the status-code contract
// and writes a JSON error body. Raw store detail is logged, never returned.
func jsonError(c echo.Context, err error) error {
	var verr *template.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":      "invalid parameters",
			"violations": verr.Violations,
		})
	case errors.Is(err, db.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "entity does not exist",
		})
	case errors.Is(err, db.ErrVersionConflict):
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "a template with this name and version already exists",
		})
	case errors.Is(err, db.ErrDuplicateCurrent):
		// More than one current row in stored data: an integrity bug, not a
		// user error.
		log.Printf("api: integrity violation: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "no unique current template for this key",
		})
	case errors.Is(err, dispatch.ErrDispatchUnavailable):
		log.Printf("api: provisioning dispatch failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "provisioning pipeline unavailable",
		})
	case errors.Is(err, db.ErrStoreUnavailable):
		log.Printf("api: state store error: %v", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "state store is not responding",
		})
	default:
		log.Printf("api: unexpected error: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "internal error",
		})
	}
}
