package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/handcraftlab/atelier/internal/domain"
	"github.com/handcraftlab/atelier/internal/webserver"
)

func registerSettingsRoutes() {
	webserver.ApiGET("/admin/settings", listSettings)
	webserver.ApiPUT("/admin/settings", saveSettings)
}

func listSettings(c echo.Context) error {
	rows, err := GetApp(c).Settings().All()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query settings", err.Error())
	}
	grouped := map[string][]domain.SysConfig{}
	for _, row := range rows {
		grouped[row.Type] = append(grouped[row.Type], row)
	}
	return ok(c, grouped)
}

// saveSettings accepts a flat {"category.name": "value"} map.
func saveSettings(c echo.Context) error {
	var payload map[string]string
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings payload", nil)
	}
	settings := GetApp(c).Settings()
	updated := 0
	for key, value := range payload {
		parts := strings.SplitN(key, ".", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fail(c, http.StatusBadRequest, "INVALID_KEY", "Settings keys use the category.name form", key)
		}
		if err := settings.SetValue(parts[0], parts[1], value); err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save setting", err.Error())
		}
		updated++
	}
	logOperation(c, "settings.save", "updated settings")
	return ok(c, map[string]interface{}{"updated": updated})
}
