package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// SessionHeader is the header carrying the caller's checkout session
// key.  Each browser tab keeps one fixed key (the localStorage analog)
// and sends it on every checkout request.
const SessionHeader = "X-Checkout-Session"

// sessionKeyContext is the echo context key the session key is stored
// under.
const sessionKeyContext = "session_key"

// RequireSessionKey rejects checkout requests that do not identify
// their booking session.  The key itself is opaque to the service; it
// only namespaces the persisted session blob.
func RequireSessionKey() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := c.Request().Header.Get(SessionHeader)
            if key == "" {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing " + SessionHeader + " header"})
            }
            c.Set(sessionKeyContext, key)
            return next(c)
        }
    }
}

// SessionKey extracts the session key stored by RequireSessionKey.
// It returns the empty string when the middleware did not run.
func SessionKey(c echo.Context) string {
    if v, ok := c.Get(sessionKeyContext).(string); ok {
        return v
    }
    return ""
}
