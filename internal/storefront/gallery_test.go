package storefront

import (
	"net/http"
	"strconv"
	"testing"
)

func TestListGalleryAssets(t *testing.T) {
	e := setupTestServer(t)

	rec := doRequest(t, e, http.MethodGet, "/api/gallery", "")
	mustStatus(t, rec, http.StatusOK)
	items := decodeList(t, rec)
	if len(items) != 3 {
		t.Fatalf("expected 3 assets, got %d", len(items))
	}
	// Newest first.
	if items[0]["title"] != "Grain close-up" {
		t.Errorf("expected Grain close-up first, got %v", items[0]["title"])
	}
}

func TestListGalleryAssetsFilters(t *testing.T) {
	e := setupTestServer(t)

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"by type image", "?type=image", 2},
		{"by type video", "?type=video", 1},
		{"by category", "?category=workshop", 2},
		{"featured only", "?featured=true", 1},
		{"tag match", "?q=weaving", 2},
		{"tag and description match", "?q=teak", 1},
		{"title substring", "?q=loom", 1},
		{"combined", "?type=image&category=workshop", 1},
		{"no match", "?q=porcelain", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, e, http.MethodGet, "/api/gallery"+tc.query, "")
			mustStatus(t, rec, http.StatusOK)
			items := decodeList(t, rec)
			if len(items) != tc.want {
				t.Errorf("query %s: expected %d assets, got %d", tc.query, tc.want, len(items))
			}
		})
	}
}

func TestGetGalleryAsset(t *testing.T) {
	e := setupTestServer(t)

	rec := doRequest(t, e, http.MethodGet, "/api/gallery?featured=true", "")
	mustStatus(t, rec, http.StatusOK)
	items := decodeList(t, rec)
	if len(items) != 1 {
		t.Fatalf("expected one featured asset, got %d", len(items))
	}
	id := int64(items[0]["id"].(float64))

	rec = doRequest(t, e, http.MethodGet, "/api/gallery/"+strconv.FormatInt(id, 10), "")
	mustStatus(t, rec, http.StatusOK)
	asset := decodeObject(t, rec)
	if asset["title"] != "Loom detail" {
		t.Errorf("expected Loom detail, got %v", asset["title"])
	}
	if tags, _ := asset["tags"].([]interface{}); len(tags) != 1 {
		t.Errorf("expected one tag, got %v", asset["tags"])
	}

	rec = doRequest(t, e, http.MethodGet, "/api/gallery/999999", "")
	mustStatus(t, rec, http.StatusNotFound)
	if code := decodeObject(t, rec)["code"]; code != "ASSET_NOT_FOUND" {
		t.Errorf("expected ASSET_NOT_FOUND, got %v", code)
	}

	// A non-numeric id is indistinguishable from an absent asset.
	rec = doRequest(t, e, http.MethodGet, "/api/gallery/not-a-number", "")
	mustStatus(t, rec, http.StatusNotFound)
	if code := decodeObject(t, rec)["code"]; code != "ASSET_NOT_FOUND" {
		t.Errorf("expected ASSET_NOT_FOUND, got %v", code)
	}
}
