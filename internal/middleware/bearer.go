package middleware

// bearer.go captures the caller's access token without verifying it.
// Authentication lives in the accounts service; this service only
// forwards the token on the purchase call and reads profile claims to
// prefill the customer form.  The backend re-validates the token at
// purchase time.

import (
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"

    "github.com/kinoapp/checkout/internal/model"
)

const (
    accessTokenContext = "access_token"
    profileContext     = "profile"
)

// OptionalBearer stores a Bearer token from the Authorization header
// in the request context, along with any profile claims it carries.
// Requests without a token pass through untouched; the checkout flow
// works for guests.
func OptionalBearer() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return next(c)
            }
            raw := strings.TrimPrefix(auth, "Bearer ")
            c.Set(accessTokenContext, raw)
            if profile := profileFromToken(raw); profile != nil {
                c.Set(profileContext, profile)
            }
            return next(c)
        }
    }
}

// profileFromToken decodes the token without verification and builds a
// customer prefill from its profile claims.  Returns nil when the
// token does not parse or carries no usable claims.
func profileFromToken(raw string) *model.Customer {
    tok, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
    if err != nil {
        return nil
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return nil
    }
    str := func(key string) string {
        if v, ok := claims[key].(string); ok {
            return v
        }
        return ""
    }
    profile := model.Customer{
        FirstName:   str("first_name"),
        LastName:    str("last_name"),
        Email:       str("email"),
        PhoneNumber: str("phone_number"),
    }
    if profile == (model.Customer{}) {
        return nil
    }
    return &profile
}

// AccessToken returns the raw bearer token captured by OptionalBearer,
// or the empty string for guest requests.
func AccessToken(c echo.Context) string {
    if v, ok := c.Get(accessTokenContext).(string); ok {
        return v
    }
    return ""
}

// Profile returns the customer prefill extracted from the bearer
// token, or nil for guests and tokens without profile claims.
func Profile(c echo.Context) *model.Customer {
    if v, ok := c.Get(profileContext).(*model.Customer); ok {
        return v
    }
    return nil
}
