package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	authmw "github.com/ovasilenko/shop_api/internal/middleware/auth"
	"github.com/ovasilenko/shop_api/internal/logging"
	"github.com/ovasilenko/shop_api/internal/models"
	"github.com/ovasilenko/shop_api/internal/service"
	"github.com/ovasilenko/shop_api/internal/transport"
)

type ImageHTTP struct {
	Svc *service.ImageService
}

func (h *ImageHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "image.add")
	ident, _ := authmw.IdentityFromContext(c)

	var req transport.AddImageRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "productId is not a uuid")
	}

	image, err := h.Svc.Add(ctx, ident.ID, productID, req.URL, req.PublicID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("add_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add image")
	}

	l.Info("add_success", "image_id", image.ID)
	return c.JSON(http.StatusCreated, image)
}

func (h *ImageHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "image.delete")
	ident, _ := authmw.IdentityFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	publicID, err := h.Svc.Delete(ctx, ident.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "image not found")
		}
		l.Error("delete_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete image")
	}

	l.Info("delete_success", "image_id", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "publicId": publicID})
}

func (h *ImageHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "image.list")
	ident, _ := authmw.IdentityFromContext(c)

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		l.Warn("list_failed", "status", 400, "reason", "productId is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "productId is not a uuid")
	}

	images, err := h.Svc.ListByProduct(ctx, ident.ID, productID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("list_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list images")
	}

	if images == nil {
		images = []models.Image{}
	}
	return c.JSON(http.StatusOK, images)
}
