package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/ovasilenko/shop_api/internal/middleware/auth"
)

type Deps struct {
	Account *AccountHTTP
	Admin   *AdminHTTP
	Product *ProductHTTP
	Image   *ImageHTTP
	Mail    *MailHTTP
	Auth    *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = NewValidator()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api", d.Auth.Populate)

	user := api.Group("/user")
	user.POST("/register", d.Account.Register)
	user.POST("/login", d.Account.Login)
	user.GET("/me", d.Account.Me, d.Auth.RequireAuth)
	user.PATCH("/me", d.Account.UpdateMe, d.Auth.RequireAuth)

	admin := api.Group("/admin")
	admin.POST("/register", d.Admin.Register)
	admin.POST("/login", d.Admin.Login)
	admin.GET("/me", d.Admin.Me, d.Auth.RequireAdmin)
	admin.PATCH("/me", d.Admin.UpdateMe, d.Auth.RequireAdmin)

	product := api.Group("/product")
	product.GET("/list", d.Product.List)
	product.GET("/search", d.Product.Search)
	product.GET("/mine", d.Product.Mine, d.Auth.RequireAdmin)
	product.GET("/:id", d.Product.Get)
	product.POST("", d.Product.Create, d.Auth.RequireAdmin)
	product.PATCH("/:id", d.Product.Patch, d.Auth.RequireAdmin)
	product.DELETE("/:id", d.Product.Delete, d.Auth.RequireAdmin)

	image := api.Group("/image", d.Auth.RequireAdmin)
	image.POST("", d.Image.Add)
	image.DELETE("/:id", d.Image.Delete)
	image.GET("/list/:productId", d.Image.List)

	api.POST("/mail/send", d.Mail.Send)
}
