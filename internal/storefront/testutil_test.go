package storefront

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"github.com/handcraftlab/atelier/config"
	"github.com/handcraftlab/atelier/internal/app"
	"github.com/handcraftlab/atelier/internal/domain"
	"github.com/handcraftlab/atelier/internal/webserver"
)

var (
	setupOnce sync.Once
	testApp   *app.Application
)

// setupTestServer boots the stack once per test binary and seeds a small
// fixed catalog directly through the database handle.
func setupTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	setupOnce.Do(func() {
		workdir, err := os.MkdirTemp("", "atelier-storefront-test")
		if err != nil {
			panic(err)
		}
		cfg := config.DefaultAppConfig()
		cfg.System.Workdir = workdir
		cfg.Database.Type = "sqlite"
		cfg.Database.Name = "atelier_storefront_test"
		cfg.Logger.Mode = "development"
		cfg.Storage.Endpoint = "http://127.0.0.1:1"
		cfg.Smtp.Host = "127.0.0.1"
		cfg.Smtp.Port = 1
		cfg.InitDirs()

		testApp = app.NewApplication(cfg)
		testApp.Init(cfg)
		webserver.Init(testApp)
		Init()
		seedCatalog()
	})
	return webserver.Echo()
}

func seedCatalog() {
	db := testApp.DB()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	products := []domain.Product{
		{
			Name: "Walnut Bench", Slug: "walnut-bench",
			Description: "Solid walnut bench",
			Specification: &domain.Specification{
				Size: "120x35x45 cm", Material: "Walnut", Price: "USD 480",
			},
			Highlights: []domain.Highlight{{Text: "Oiled finish"}},
			// Insertion order is deliberately catalog, featured, plain so the
			// slug endpoint has to reorder.
			Images: []domain.ProductImage{
				{ImageURL: "https://cdn.example.com/wb-catalog.jpg", IsCatalog: true},
				{ImageURL: "https://cdn.example.com/wb-hero.jpg", IsFeatured: true},
				{ImageURL: "https://cdn.example.com/wb-extra.jpg"},
			},
			CreatedAt: base, UpdatedAt: base,
		},
		{
			Name: "Oak Stool", Slug: "oak-stool",
			Description: "Compact oak stool",
			CreatedAt:   base.Add(24 * time.Hour), UpdatedAt: base.Add(24 * time.Hour),
		},
		{
			Name: "Ceramic Vase", Slug: "ceramic-vase",
			Description: "Matte glaze ceramic vase",
			CreatedAt:   base.Add(48 * time.Hour), UpdatedAt: base.Add(48 * time.Hour),
		},
	}
	for i := range products {
		db.Create(&products[i])
	}

	assets := []domain.GalleryAsset{
		{
			Title: "Loom detail", Category: "workshop", Type: domain.AssetTypeImage,
			IsFeatured: true,
			Tags:       datatypes.NewJSONSlice([]string{"weaving"}),
			URL:        "https://cdn.example.com/storage/v1/object/public/gallery-assets/loom.jpg",
			CreatedAt:  base, UpdatedAt: base,
		},
		{
			Title: "Workshop tour", Category: "workshop", Type: domain.AssetTypeVideo,
			Tags:      datatypes.NewJSONSlice([]string{"tour"}),
			URL:       "https://cdn.example.com/storage/v1/object/public/gallery-assets/tour.mp4",
			CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour),
		},
		{
			Title: "Grain close-up", Description: "Teak grain close-up",
			Category: "product", Type: domain.AssetTypeImage,
			Tags:      datatypes.NewJSONSlice([]string{"teak", "weaving"}),
			URL:       "https://cdn.example.com/storage/v1/object/public/gallery-assets/grain.jpg",
			CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(2 * time.Hour),
		},
	}
	for i := range assets {
		db.Create(&assets[i])
	}
}

func doRequest(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var items []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("list decode: %v (body %s)", err, rec.Body.String())
	}
	return items
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("object decode: %v (body %s)", err, rec.Body.String())
	}
	return m
}

func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
