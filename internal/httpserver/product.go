package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	authmw "github.com/ovasilenko/shop_api/internal/middleware/auth"
	"github.com/ovasilenko/shop_api/internal/logging"
	"github.com/ovasilenko/shop_api/internal/search"
	"github.com/ovasilenko/shop_api/internal/service"
	"github.com/ovasilenko/shop_api/internal/transport"
	"github.com/ovasilenko/shop_api/internal/util"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

func (h *ProductHTTP) list(c echo.Context, ownerID *uuid.UUID) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	var q transport.ListQuery
	if err := c.Bind(&q); err != nil {
		l.Warn("list_failed", "status", 400, "reason", "invalid query", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	var cursor *util.Cursor
	if q.Cursor != "" {
		cur, err := util.DecodeCursor(q.Cursor)
		if err != nil {
			l.Warn("list_failed", "status", 400, "reason", "invalid cursor", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid cursor")
		}
		cursor = &cur
	}

	page, err := h.Svc.List(ctx, cursor, q.Limit, ownerID)
	if err != nil {
		l.Error("list_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	resp := echo.Map{"products": transport.ViewsFromProducts(page.Products)}
	if page.NextCursor != "" {
		resp["nextCursor"] = page.NextCursor
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ProductHTTP) List(c echo.Context) error {
	return h.list(c, nil)
}

func (h *ProductHTTP) Mine(c echo.Context) error {
	ident, _ := authmw.IdentityFromContext(c)
	return h.list(c, &ident.ID)
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_failed", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, transport.ViewFromProduct(product))
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")
	ident, _ := authmw.IdentityFromContext(c)

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := service.ProductCreate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	for _, img := range req.Images {
		in.Images = append(in.Images, service.ImageInput{URL: img.URL, PublicID: img.PublicID})
	}

	product, err := h.Svc.Create(ctx, ident.ID, in)
	if err != nil {
		l.Error("create_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	l.Info("create_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, transport.ViewFromProduct(product))
}

func (h *ProductHTTP) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")
	ident, _ := authmw.IdentityFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("patch_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	patch := service.ProductPatch{Name: req.Name, Description: req.Description, Price: req.Price}
	product, err := h.Svc.Update(ctx, ident.ID, id, patch)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("patch_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	l.Info("patch_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, transport.ViewFromProduct(product))
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")
	ident, _ := authmw.IdentityFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.Delete(ctx, ident.ID, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("delete_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	l.Info("delete_success", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *ProductHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, docs, err := h.Svc.SearchProducts(ctx, query, from, size)
	if err != nil {
		if errors.Is(err, search.ErrUnavailable) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
		}
		l.Error("search_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot search products")
	}

	if docs == nil {
		docs = []search.ProductDoc{}
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": docs})
}
