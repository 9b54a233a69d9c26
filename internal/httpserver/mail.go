package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ovasilenko/shop_api/internal/logging"
	"github.com/ovasilenko/shop_api/internal/service"
	"github.com/ovasilenko/shop_api/internal/transport"
)

type MailHTTP struct {
	Svc *service.MailService
}

func (h *MailHTTP) Send(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "mail.send")

	var req transport.SendMailRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("send_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := service.ContactMail{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.Svc.SendContact(ctx, in); err != nil {
		l.Error("send_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to send mail")
	}

	l.Info("send_success")
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "mail sent"})
}
