package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor_id"

// RequireActor pulls the caller identity off Ax-Actor-Id and stashes it
// on the request context. Identity issuance and authentication live in
// the transport layer in front of this service; here the header is the
// contract.
func RequireActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := strings.ToLower(strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Id")))
			if !reHex32.MatchString(actor) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid Ax-Actor-Id"})
			}
			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// ActorID returns the identity stashed by RequireActor; empty when the
// middleware did not run.
func ActorID(c echo.Context) string {
	v, _ := c.Get(actorContextKey).(string)
	return v
}
