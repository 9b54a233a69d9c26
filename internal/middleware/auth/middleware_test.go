package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovasilenko/shop_api/internal/tokens"
)

var secret = []byte("middleware-test-secret")

func newGatedEcho(t *testing.T) *echo.Echo {
	t.Helper()

	m := New(secret)
	e := echo.New()

	g := e.Group("", m.Populate)
	g.GET("/open", func(c echo.Context) error {
		if ident, ok := IdentityFromContext(c); ok {
			return c.String(http.StatusOK, ident.Email)
		}
		return c.String(http.StatusOK, "anonymous")
	})
	g.GET("/auth", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, m.RequireAuth)
	g.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, m.RequireAdmin)

	return e
}

func get(e *echo.Echo, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signedToken(t *testing.T, role string) string {
	t.Helper()
	raw, err := tokens.Sign(uuid.New(), role+"@example.com", role, secret)
	require.NoError(t, err)
	return raw
}

func TestGates_Anonymous(t *testing.T) {
	e := newGatedEcho(t)

	rec := get(e, "/open", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(e, "/auth", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(e, "/admin", "").Code)
}

func TestGates_UserToken(t *testing.T) {
	e := newGatedEcho(t)
	header := "Bearer " + signedToken(t, tokens.RoleUser)

	rec := get(e, "/open", header)
	assert.Equal(t, "user@example.com", rec.Body.String())

	assert.Equal(t, http.StatusOK, get(e, "/auth", header).Code)
	assert.Equal(t, http.StatusForbidden, get(e, "/admin", header).Code)
}

func TestGates_AdminToken(t *testing.T) {
	e := newGatedEcho(t)
	header := "Bearer " + signedToken(t, tokens.RoleAdmin)

	assert.Equal(t, http.StatusOK, get(e, "/auth", header).Code)
	assert.Equal(t, http.StatusOK, get(e, "/admin", header).Code)
}

// A garbled header downgrades the request to anonymous instead of failing the
// whole chain; only the gates decide whether that matters.
func TestGates_MalformedHeaderIsAnonymous(t *testing.T) {
	e := newGatedEcho(t)

	for _, header := range []string{
		"Bearer not.a.jwt",
		"Basic dXNlcjpwYXNz",
		"Bearer ",
	} {
		rec := get(e, "/open", header)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String(), header)

		assert.Equal(t, http.StatusUnauthorized, get(e, "/auth", header).Code, header)
	}
}

func TestGates_ForeignSecretIsAnonymous(t *testing.T) {
	e := newGatedEcho(t)

	raw, err := tokens.Sign(uuid.New(), "x@example.com", tokens.RoleAdmin, []byte("other-secret"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(e, "/admin", "Bearer "+raw).Code)
}
