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

type AdminHTTP struct {
	Svc *service.AccountService
}

func (h *AdminHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, token, err := h.Svc.RegisterAdmin(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "email already in use")
		}
		l.Error("register_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot register admin")
	}

	l.Info("register_success", "admin_id", admin.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"admin": transport.ProfileFromAdmin(admin),
		"token": token,
	})
}

func (h *AdminHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, token, err := h.Svc.LoginAdmin(ctx, req.Email, req.Password)
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

	l.Info("login_success", "admin_id", admin.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"admin": transport.ProfileFromAdmin(admin),
		"token": token,
	})
}

func (h *AdminHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	ident, _ := authmw.IdentityFromContext(c)

	admin, err := h.Svc.GetAdmin(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "admin not found")
		}
		logging.FromContext(ctx).Error("me_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load profile")
	}

	return c.JSON(http.StatusOK, transport.ProfileFromAdmin(admin))
}

func (h *AdminHTTP) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update")
	ident, _ := authmw.IdentityFromContext(c)

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, err := h.Svc.UpdateAdmin(ctx, ident.ID, service.ProfileUpdate{Name: req.Name, Password: req.Password})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "admin not found")
		}
		l.Error("update_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update profile")
	}

	l.Info("update_success", "admin_id", admin.ID)
	return c.JSON(http.StatusOK, transport.ProfileFromAdmin(admin))
}
