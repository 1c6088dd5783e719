package adminapi

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/handcraftlab/atelier/internal/webserver"
	"github.com/handcraftlab/atelier/pkg/metrics"
)

func registerMetricsRoutes() {
	webserver.ApiGET("/admin/metrics", getMetrics)
}

func getMetrics(c echo.Context) error {
	window := time.Hour
	if w := c.QueryParam("window"); w != "" {
		if parsed, err := time.ParseDuration(w); err == nil && parsed > 0 {
			window = parsed
		}
	}
	return ok(c, map[string]interface{}{
		"requests": metrics.SummarizeRequests(window),
		"system":   metrics.Snapshot(),
	})
}
