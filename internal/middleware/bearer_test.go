package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinoapp/checkout/internal/model"
)

func runBearer(t *testing.T, authorization string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handler := OptionalBearer()(func(c echo.Context) error { return nil })
	require.NoError(t, handler(c))
	return c
}

func TestOptionalBearerExtractsProfile(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":          "123",
		"first_name":   "Jan",
		"last_name":    "Kowalski",
		"email":        "jan@example.com",
		"phone_number": "+48 600 000 000",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	c := runBearer(t, "Bearer "+token)
	assert.Equal(t, token, AccessToken(c))

	profile := Profile(c)
	require.NotNil(t, profile)
	assert.Equal(t, model.Customer{
		FirstName:   "Jan",
		LastName:    "Kowalski",
		Email:       "jan@example.com",
		PhoneNumber: "+48 600 000 000",
	}, *profile)
}

func TestOptionalBearerGuestPassthrough(t *testing.T) {
	c := runBearer(t, "")
	assert.Empty(t, AccessToken(c))
	assert.Nil(t, Profile(c))
}

func TestOptionalBearerTokenWithoutProfileClaims(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "123",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	c := runBearer(t, "Bearer "+token)
	assert.Equal(t, token, AccessToken(c), "the token is still forwarded on the purchase call")
	assert.Nil(t, Profile(c))
}

func TestOptionalBearerMalformedToken(t *testing.T) {
	c := runBearer(t, "Bearer not-a-jwt")
	assert.Equal(t, "not-a-jwt", AccessToken(c))
	assert.Nil(t, Profile(c))
}

func TestRequireSessionKey(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, "tab-1")
	c := e.NewContext(req, httptest.NewRecorder())
	handler := RequireSessionKey()(func(c echo.Context) error { return nil })
	require.NoError(t, handler(c))
	assert.Equal(t, "tab-1", SessionKey(c))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
