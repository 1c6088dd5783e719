package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/handcraftlab/atelier/internal/domain"
	"github.com/handcraftlab/atelier/internal/webserver"
)

func registerOprlogRoutes() {
	webserver.ApiGET("/admin/oprlogs", listOprLogs)
}

// listOprLogs pages through the audit trail written by the event bus
// subscriber, newest first.
func listOprLogs(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.SysOprLog{})
	if name := strings.TrimSpace(c.QueryParam("opr_name")); name != "" {
		db = db.Where("opr_name = ?", name)
	}
	if action := strings.TrimSpace(c.QueryParam("action")); action != "" {
		db = db.Where("opt_action = ?", action)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count operation logs", err.Error())
	}

	var rows []domain.SysOprLog
	err := db.Order("opt_time DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query operation logs", err.Error())
	}
	if rows == nil {
		rows = []domain.SysOprLog{}
	}
	return paged(c, rows, total, page, pageSize)
}
