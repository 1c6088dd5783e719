package adminapi

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"

	"github.com/handcraftlab/atelier/internal/webserver"
	"github.com/handcraftlab/atelier/pkg/common"
)

func registerUploadRoutes() {
	webserver.ApiPOST("/admin/upload", uploadMedia)
}

// uploadMedia is a direct pass-through to object storage: the blob goes up,
// the public URL comes back. The metadata row (product image or gallery
// asset) is written by a separate call; a failure between the two leaves an
// orphaned blob by design of the contract.
func uploadMedia(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "MISSING_FILE", "A file field is required", nil)
	}

	folder := common.Slugify(c.FormValue("folder"))
	if folder == "" {
		folder = "uploads"
	}
	bucket := strings.TrimSpace(c.FormValue("bucket"))
	if bucket == "" {
		bucket = GetApp(c).Config().Storage.UploadBucket
	}

	src, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to open uploaded file", err.Error())
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to read uploaded file", err.Error())
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	base := common.Slugify(strings.TrimSuffix(filepath.Base(fh.Filename), ext))
	if base == "" {
		base = "file"
	}
	objectPath := fmt.Sprintf("%s/%s-%s%s", folder, base, strings.ToLower(random.String(8)), ext)

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := GetApp(c).Storage().Upload(c.Request().Context(), bucket, objectPath, data, contentType)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to upload file", err.Error())
	}

	logOperation(c, "media.upload", fmt.Sprintf("uploaded %s to %s", objectPath, bucket))
	return ok(c, map[string]interface{}{"url": url})
}
