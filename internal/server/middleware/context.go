package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/project-simone/simone/pkg/engine"
	"github.com/project-simone/simone/pkg/logger"
)

type AppUser struct {
	Subject     string
	Role        string
	Permissions []string
}

// TokenKeys looks up the key that signed a JWT. keyfunc.Keyfunc satisfies
// it.
type TokenKeys interface {
	Keyfunc(token *jwt.Token) (any, error)
}

type App struct {
	Engine *engine.Engine
	// Key verifies JWTs. Nil disables token auth and leaves only the
	// master key.
	Key          TokenKeys
	MasterAPIKey string
}

type AppContext struct {
	echo.Context
	App       *App
	User      *AppUser
	RequestID string
}

// AppContextMiddleware wraps every request in an AppContext and tags it with
// a request id, reusing the caller's X-Request-ID when present.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				id, err := gonanoid.New()
				if err != nil {
					logger.Warn("[Server] Failed to generate request id", "err", err)
				}
				requestID = id
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			cc := &AppContext{Context: c, App: app, RequestID: requestID}
			return next(cc)
		}
	}
}
