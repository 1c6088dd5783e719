package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/handcraftlab/atelier/internal/domain"
	"github.com/handcraftlab/atelier/internal/webserver"
)

type specificationPayload struct {
	Size      string `json:"size"`
	Finishing string `json:"finishing"`
	Material  string `json:"material"`
	Price     string `json:"price"`
}

func (p *specificationPayload) isEmpty() bool {
	if p == nil {
		return true
	}
	return domain.Specification{
		Size: p.Size, Finishing: p.Finishing, Material: p.Material, Price: p.Price,
	}.IsEmpty()
}

type highlightPayload struct {
	Icon string `json:"icon" validate:"omitempty,max=64"`
	Text string `json:"text" validate:"required"`
}

type imagePayload struct {
	ImageURL   string `json:"imageUrl" validate:"required,max=1024"`
	IsFeatured bool   `json:"isFeatured"`
	IsCatalog  bool   `json:"isCatalog"`
}

// productPayload is the full-product contract: the admin form assembles the
// whole product client-side and submits it in one call. Child arrays are
// required (empty allowed) because update replaces them wholesale.
type productPayload struct {
	Name           string                `json:"name" validate:"required,max=200"`
	Slug           string                `json:"slug" validate:"required,max=200"`
	Description    string                `json:"description"`
	Details        string                `json:"details"`
	Notes          string                `json:"notes"`
	Specifications *specificationPayload `json:"specifications"`
	Highlights     *[]highlightPayload   `json:"highlights" validate:"required,dive"`
	Images         *[]imagePayload       `json:"images" validate:"required,dive"`
}

// registerProductRoutes registers the mutating product endpoints. Reads are
// public and live in the storefront package.
func registerProductRoutes() {
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func loadProduct(db *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.
		Preload("Specification").
		Preload("Highlights", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func slugTaken(db *gorm.DB, slug string, excludeID int64) bool {
	q := db.Model(&domain.Product{}).Where("slug = ?", slug)
	if excludeID > 0 {
		q = q.Where("id != ?", excludeID)
	}
	var count int64
	q.Count(&count)
	return count > 0
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product payload", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Slug = strings.TrimSpace(payload.Slug)

	db := GetDB(c)
	if slugTaken(db, payload.Slug, 0) {
		return fail(c, http.StatusBadRequest, "SLUG_EXISTS", "A product with this slug already exists", nil)
	}

	now := time.Now()
	product := domain.Product{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
		Details:     payload.Details,
		Notes:       payload.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, h := range *payload.Highlights {
		product.Highlights = append(product.Highlights, domain.Highlight{Icon: h.Icon, Text: h.Text})
	}
	for _, img := range *payload.Images {
		product.Images = append(product.Images, domain.ProductImage{
			ImageURL: img.ImageURL, IsFeatured: img.IsFeatured, IsCatalog: img.IsCatalog,
		})
	}
	if !payload.Specifications.isEmpty() {
		product.Specification = &domain.Specification{
			Size:      payload.Specifications.Size,
			Finishing: payload.Specifications.Finishing,
			Material:  payload.Specifications.Material,
			Price:     payload.Specifications.Price,
		}
	}

	if err := db.Create(&product).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}

	result, err := loadProduct(db, product.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load created product", err.Error())
	}
	logOperation(c, "product.create", fmt.Sprintf("created product %s (%d)", result.Slug, result.ID))
	return created(c, result)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	db := GetDB(c)
	var existing domain.Product
	if err := db.Where("id = ?", id).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product payload", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Slug = strings.TrimSpace(payload.Slug)

	if payload.Slug != existing.Slug && slugTaken(db, payload.Slug, id) {
		return fail(c, http.StatusBadRequest, "SLUG_EXISTS", "Another product already uses this slug", nil)
	}

	// Destructive replace: the caller submits the complete desired child
	// set; existing specification/highlights/images are deleted, then the
	// replacement rows are inserted, all in one transaction.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.Specification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.Highlight{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductImage{}).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":        payload.Name,
			"slug":        payload.Slug,
			"description": payload.Description,
			"details":     payload.Details,
			"notes":       payload.Notes,
			"updated_at":  time.Now(),
		}
		if err := tx.Model(&domain.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if !payload.Specifications.isEmpty() {
			spec := domain.Specification{
				ProductID: id,
				Size:      payload.Specifications.Size,
				Finishing: payload.Specifications.Finishing,
				Material:  payload.Specifications.Material,
				Price:     payload.Specifications.Price,
			}
			if err := tx.Create(&spec).Error; err != nil {
				return err
			}
		}
		for _, h := range *payload.Highlights {
			if err := tx.Create(&domain.Highlight{ProductID: id, Icon: h.Icon, Text: h.Text}).Error; err != nil {
				return err
			}
		}
		for _, img := range *payload.Images {
			row := domain.ProductImage{
				ProductID: id, ImageURL: img.ImageURL,
				IsFeatured: img.IsFeatured, IsCatalog: img.IsCatalog,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}

	result, err := loadProduct(db, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load updated product", err.Error())
	}
	logOperation(c, "product.update", fmt.Sprintf("updated product %s (%d)", result.Slug, id))
	return ok(c, result)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	db := GetDB(c)
	var existing domain.Product
	if err := db.Where("id = ?", id).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&domain.Specification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.Highlight{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Product{}).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}

	logOperation(c, "product.delete", fmt.Sprintf("deleted product %s (%d)", existing.Slug, id))
	return ok(c, map[string]interface{}{"id": id})
}
