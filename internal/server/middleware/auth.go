package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	PermRebuild = "graph.rebuild"
	PermExport  = "insights.export"
)

var allPermissions = []string{
	PermRebuild,
	PermExport,
}

// AuthMiddleware accepts the master API key or a JWT signed by a key from
// the configured JWKS.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		cc := c.(*AppContext)
		app := cc.App

		// Master API Key bypass
		if app.MasterAPIKey != "" && token == app.MasterAPIKey {
			cc.User = &AppUser{
				Subject:     "master",
				Role:        "admin",
				Permissions: allPermissions,
			}
			return next(c)
		}

		if app.Key == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		parsed, err := jwt.Parse(token, app.Key.Keyfunc)
		if err != nil || !parsed.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		subject, _ := claims.GetSubject()

		role := "user"
		if roleClaim, ok := claims["role"].(string); ok {
			role = roleClaim
		}

		var permissions []string
		if permsClaim, ok := claims["permissions"].([]any); ok {
			for _, p := range permsClaim {
				if pStr, ok := p.(string); ok {
					permissions = append(permissions, pStr)
				}
			}
		}

		if role == "admin" && len(permissions) == 0 {
			permissions = allPermissions
		}

		cc.User = &AppUser{
			Subject:     subject,
			Role:        role,
			Permissions: permissions,
		}

		return next(c)
	}
}
