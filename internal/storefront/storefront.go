// Package storefront serves the public read paths of the shop: product
// listing and detail, gallery browsing, and the contact form.
package storefront

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/handcraftlab/atelier/internal/app"
	"github.com/handcraftlab/atelier/internal/webserver"
)

// Init registers all public routes. Call after webserver.Init.
func Init() {
	registerProductRoutes()
	registerGalleryRoutes()
	registerContactRoutes()
}

func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetApp(c).DB()
}

func GetApp(c echo.Context) *app.Application {
	return webserver.GetApp(c)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	body := map[string]interface{}{
		"code":    code,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}
	return c.JSON(status, body)
}
