package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/ovasilenko/shop_api/internal/middleware/auth"
	"github.com/ovasilenko/shop_api/internal/logging"
	"github.com/ovasilenko/shop_api/internal/service"
	"github.com/ovasilenko/shop_api/internal/transport"
)

// The message is identical for an unknown email and a wrong password so the
// login endpoint cannot be used to enumerate accounts.
const badCredentialsMsg = "email or password is incorrect"

type AccountHTTP struct {
	Svc *service.AccountService
}

func (h *AccountHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.Svc.RegisterUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "email already in use")
		}
		l.Error("register_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"user":  transport.ProfileFromUser(user),
		"token": token,
	})
}

func (h *AccountHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.Svc.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, badCredentialsMsg)
		case errors.Is(err, service.ErrUnauthorized):
			return echo.NewHTTPError(http.StatusUnauthorized, badCredentialsMsg)
		default:
			l.Error("login_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in")
		}
	}

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"user":  transport.ProfileFromUser(user),
		"token": token,
	})
}

func (h *AccountHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	ident, _ := authmw.IdentityFromContext(c)

	user, err := h.Svc.GetUser(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		logging.FromContext(ctx).Error("me_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load profile")
	}

	return c.JSON(http.StatusOK, transport.ProfileFromUser(user))
}

func (h *AccountHTTP) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update")
	ident, _ := authmw.IdentityFromContext(c)

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.Svc.UpdateUser(ctx, ident.ID, service.ProfileUpdate{Name: req.Name, Password: req.Password})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("update_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update profile")
	}

	l.Info("update_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.ProfileFromUser(user))
}
