package storefront

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/handcraftlab/atelier/internal/domain"
	"github.com/handcraftlab/atelier/internal/webserver"
)

func registerProductRoutes() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/:id", getProduct)
	webserver.PubGET("/products/slug/:slug", getProductBySlug)
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Specification").
		Preload("Highlights", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Images")
}

func listProducts(c echo.Context) error {
	db := GetDB(c).Model(&domain.Product{})

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
			db = db.Where("name ILIKE ? OR description ILIKE ?", "%"+q+"%", "%"+q+"%")
		} else {
			like := "%" + strings.ToLower(q) + "%"
			db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
	}
	if since := strings.TrimSpace(c.QueryParam("created_since")); since != "" {
		if t, err := dateparse.ParseAny(since); err == nil {
			db = db.Where("created_at >= ?", t)
		}
	}

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"created_at": "created_at",
		"createdAt":  "created_at",
		"name":       "name",
	}
	sortCol, ok2 := allowed[strings.TrimSpace(c.QueryParam("sort"))]
	if !ok2 {
		sortCol = "created_at"
	}
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	var products []domain.Product
	if err := withChildren(db).Order(sortCol + " " + order).Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	if products == nil {
		products = []domain.Product{}
	}
	return ok(c, products)
}

func getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	}
	var p domain.Product
	err = withChildren(GetDB(c)).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}

// getProductBySlug is the public detail lookup. Images come back hero-first:
// featured before catalog before the rest.
func getProductBySlug(c echo.Context) error {
	var p domain.Product
	err := GetDB(c).
		Preload("Specification").
		Preload("Highlights", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("is_featured DESC, is_catalog DESC")
		}).
		Where("slug = ?", c.Param("slug")).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}
