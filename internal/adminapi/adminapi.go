// Package adminapi implements the authenticated admin surface: catalog and
// gallery CRUD, media upload, settings, metrics and data export.
package adminapi

// Init registers all admin routes. Call after webserver.Init.
func Init() {
	registerAuthRoutes()
	registerProductRoutes()
	registerGalleryRoutes()
	registerUploadRoutes()
	registerSettingsRoutes()
	registerMetricsRoutes()
	registerExportRoutes()
	registerOprlogRoutes()
}
