package adminapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/handcraftlab/atelier/internal/app"
	"github.com/handcraftlab/atelier/internal/webserver"
)

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetApp(c).DB()
}

// GetApp returns the application context for the request.
func GetApp(c echo.Context) *app.Application {
	return webserver.GetApp(c)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
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

func paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":    items,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = int(GetApp(c).Settings().GetInt64("catalog", "page_size"))
	if pageSize <= 0 {
		pageSize = 20
	}
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func handleValidationError(c echo.Context, err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Missing or invalid fields: "+strings.Join(fields, ", "), nil)
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
}

// logOperation publishes an audit event; the bus subscriber persists it.
func logOperation(c echo.Context, action, desc string) {
	GetApp(c).PublishOperation(app.OperationEvent{
		OprName: webserver.Operator(c),
		OprIP:   c.RealIP(),
		Action:  action,
		Desc:    desc,
	})
}
