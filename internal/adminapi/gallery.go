package adminapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/mitchellh/mapstructure"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/handcraftlab/atelier/internal/domain"
	"github.com/handcraftlab/atelier/internal/webserver"
)

type galleryPayload struct {
	URL         string   `json:"url" validate:"required,max=1024"`
	Type        string   `json:"type" validate:"required,oneof=image video"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsFeatured  bool     `json:"isFeatured"`
}

// galleryUpdateValues receives the typed side of a partial update. Presence
// is tracked separately through the raw body map, so absent fields stay
// untouched while explicit nulls clear.
type galleryUpdateValues struct {
	Title       string   `mapstructure:"title"`
	Description string   `mapstructure:"description"`
	Category    string   `mapstructure:"category"`
	URL         string   `mapstructure:"url"`
	Type        string   `mapstructure:"type"`
	Tags        []string `mapstructure:"tags"`
	IsFeatured  bool     `mapstructure:"isFeatured"`
}

func registerGalleryRoutes() {
	webserver.ApiPOST("/gallery", createGalleryAsset)
	webserver.ApiPUT("/gallery/:id", updateGalleryAsset)
	webserver.ApiDELETE("/gallery/:id", deleteGalleryAsset)
}

func createGalleryAsset(c echo.Context) error {
	var payload galleryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse gallery payload", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	tags := payload.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now()
	asset := domain.GalleryAsset{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Tags:        datatypes.NewJSONSlice(tags),
		IsFeatured:  payload.IsFeatured,
		URL:         payload.URL,
		Type:        payload.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&asset).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create gallery asset", err.Error())
	}
	logOperation(c, "gallery.create", fmt.Sprintf("created gallery asset %d (%s)", asset.ID, asset.Type))
	return created(c, asset)
}

func updateGalleryAsset(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid gallery asset ID", nil)
	}

	db := GetDB(c)
	var asset domain.GalleryAsset
	if err := db.Where("id = ?", id).First(&asset).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "ASSET_NOT_FOUND", "Gallery asset not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query gallery asset", err.Error())
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read request body", nil)
	}
	var raw map[string]interface{}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &raw); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse gallery payload", nil)
	}

	var vals galleryUpdateValues
	if err := mapstructure.Decode(raw, &vals); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to decode gallery fields", nil)
	}

	// Field-level semantics: a key present in the body (including explicit
	// null) overwrites; an omitted key leaves the column unchanged.
	updates := map[string]interface{}{}
	if _, present := raw["title"]; present {
		updates["title"] = vals.Title
	}
	if _, present := raw["description"]; present {
		updates["description"] = vals.Description
	}
	if _, present := raw["category"]; present {
		updates["category"] = vals.Category
	}
	if _, present := raw["url"]; present {
		if vals.URL == "" {
			return fail(c, http.StatusBadRequest, "MISSING_URL", "url cannot be cleared", nil)
		}
		updates["url"] = vals.URL
	}
	if _, present := raw["type"]; present {
		if vals.Type != domain.AssetTypeImage && vals.Type != domain.AssetTypeVideo {
			return fail(c, http.StatusBadRequest, "INVALID_TYPE", "type must be 'image' or 'video'", nil)
		}
		updates["type"] = vals.Type
	}
	if _, present := raw["isFeatured"]; present {
		updates["is_featured"] = vals.IsFeatured
	}
	if _, present := raw["tags"]; present {
		tags := vals.Tags
		if tags == nil {
			tags = []string{}
		}
		updates["tags"] = datatypes.NewJSONSlice(tags)
	}
	updates["updated_at"] = time.Now()

	if err := db.Model(&domain.GalleryAsset{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update gallery asset", err.Error())
	}

	if err := db.Where("id = ?", id).First(&asset).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load updated gallery asset", err.Error())
	}
	logOperation(c, "gallery.update", fmt.Sprintf("updated gallery asset %d", id))
	return ok(c, asset)
}

func deleteGalleryAsset(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid gallery asset ID", nil)
	}

	db := GetDB(c)
	var asset domain.GalleryAsset
	if err := db.Where("id = ?", id).First(&asset).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "ASSET_NOT_FOUND", "Gallery asset not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query gallery asset", err.Error())
	}

	if err := db.Where("id = ?", id).Delete(&domain.GalleryAsset{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete gallery asset", err.Error())
	}

	// The record is gone; blob cleanup is best-effort. A URL without the
	// public marker has no backing blob and is skipped.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	GetApp(c).Storage().RemoveByPublicURL(ctx, asset.URL)

	logOperation(c, "gallery.delete", fmt.Sprintf("deleted gallery asset %d", id))
	return ok(c, map[string]interface{}{"id": id})
}
