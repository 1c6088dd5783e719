package storefront

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/handcraftlab/atelier/internal/domain"
	"github.com/handcraftlab/atelier/internal/webserver"
)

func registerGalleryRoutes() {
	webserver.PubGET("/gallery", listGalleryAssets)
	webserver.PubGET("/gallery/:id", getGalleryAsset)
}

// predicate is one optional conjunct of the gallery filter. Absent filter
// fields yield a nil predicate, which the fold skips.
type predicate struct {
	query string
	args  []interface{}
}

func applyPredicates(db *gorm.DB, preds []*predicate) *gorm.DB {
	for _, p := range preds {
		if p != nil {
			db = db.Where(p.query, p.args...)
		}
	}
	return db
}

// galleryPredicates builds the four optional conjuncts: free text, type,
// category, featured. The free-text predicate matches title/description by
// substring and tags by exact element (the quoted form inside the
// serialized JSON column).
func galleryPredicates(c echo.Context, dialect string) []*predicate {
	preds := make([]*predicate, 4)

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		tagMatch := `%"` + q + `"%`
		if strings.EqualFold(dialect, "postgres") { //nolint:staticcheck
			like := "%" + q + "%"
			preds[0] = &predicate{
				query: "title ILIKE ? OR description ILIKE ? OR CAST(tags AS TEXT) LIKE ?",
				args:  []interface{}{like, like, tagMatch},
			}
		} else {
			like := "%" + strings.ToLower(q) + "%"
			preds[0] = &predicate{
				query: "LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR CAST(tags AS TEXT) LIKE ?",
				args:  []interface{}{like, like, tagMatch},
			}
		}
	}
	if t := strings.TrimSpace(c.QueryParam("type")); t != "" {
		preds[1] = &predicate{query: "type = ?", args: []interface{}{t}}
	}
	if cat := strings.TrimSpace(c.QueryParam("category")); cat != "" {
		preds[2] = &predicate{query: "category = ?", args: []interface{}{cat}}
	}
	if f := strings.TrimSpace(c.QueryParam("featured")); f != "" {
		preds[3] = &predicate{query: "is_featured = ?", args: []interface{}{cast.ToBool(f)}}
	}
	return preds
}

func listGalleryAssets(c echo.Context) error {
	db := GetDB(c).Model(&domain.GalleryAsset{})
	db = applyPredicates(db, galleryPredicates(c, db.Name()))

	var assets []domain.GalleryAsset
	if err := db.Order("created_at DESC").Find(&assets).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query gallery", err.Error())
	}
	if assets == nil {
		assets = []domain.GalleryAsset{}
	}
	return ok(c, assets)
}

func getGalleryAsset(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusNotFound, "ASSET_NOT_FOUND", "Gallery asset not found", nil)
	}
	var asset domain.GalleryAsset
	err = GetDB(c).Where("id = ?", id).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "ASSET_NOT_FOUND", "Gallery asset not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query gallery asset", err.Error())
	}
	return ok(c, asset)
}
