package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ovasilenko/shop_api/internal/tokens"
)

const identityKey = "identity"

// Identity is the verified subject of a bearer token. A request without one
// is anonymous, which is not an error until a gate requires otherwise.
type Identity struct {
	ID    uuid.UUID
	Email string
	Role  string
}

type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

// Populate reads the Authorization header once per request. Verification is
// purely local: signature plus expiry, no datastore lookup.
func (m *Middleware) Populate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if claims, err := tokens.Parse(token, m.JWTSecret); err == nil && claims != nil {
				if id, err := uuid.Parse(claims.Subject); err == nil {
					c.Set(identityKey, &Identity{ID: id, Email: claims.Email, Role: claims.Role})
				}
			}
		}
		return next(c)
	}
}

type validatorFunc func(ident *Identity) error

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireWithValidator(next, nil)
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireWithValidator(next, func(ident *Identity) error {
		if ident.Role != tokens.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *Middleware) requireWithValidator(next echo.HandlerFunc, validator validatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := IdentityFromContext(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		if validator != nil {
			if err := validator(ident); err != nil {
				return err
			}
		}
		return next(c)
	}
}

func IdentityFromContext(c echo.Context) (*Identity, bool) {
	ident, ok := c.Get(identityKey).(*Identity)
	return ident, ok
}
