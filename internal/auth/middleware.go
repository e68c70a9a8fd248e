package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

// ContextKeyUser is the echo context key for the authenticated user.
const ContextKeyUser contextKey = "user"

// User is the resolved caller identity with its role set.
type User struct {
	ID    string
	Name  string
	Roles []string
}

// HasRole reports whether the user's role set contains the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SetUser stores the user in the echo context.
func SetUser(c echo.Context, u *User) {
	c.Set(string(ContextKeyUser), u)
}

// GetUser retrieves the user from the echo context.
func GetUser(c echo.Context) (*User, bool) {
	v := c.Get(string(ContextKeyUser))
	if v == nil {
		return nil, false
	}
	u, ok := v.(*User)
	return u, ok
}

// Middleware resolves the caller identity from a Bearer token. If no issuer is
// configured (dev mode) every request runs as a local admin.
func Middleware(issuer *JWTIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if issuer == nil {
				SetUser(c, &User{ID: "local-dev", Name: "Local Dev", Roles: []string{AdminRole}})
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "missing or invalid Authorization header",
				})
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := issuer.ValidateToken(tokenStr)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "invalid token",
				})
			}

			SetUser(c, &User{ID: claims.Subject, Name: claims.Name, Roles: claims.Roles})
			return next(c)
		}
	}
}

// RequireAdmin gates admin-only operations. The role check runs before any
// other work in the handler chain; a missing admin role fails with 403 and no
// store mutation is attempted.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := GetUser(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "authentication required",
				})
			}
			if !user.HasRole(AdminRole) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "user is not assigned to the " + AdminRole + " role",
				})
			}
			return next(c)
		}
	}
}
