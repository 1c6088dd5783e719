package adminapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/handcraftlab/atelier/internal/domain"
)

const fullProductBody = `{
	"name": "Rattan Lounge Chair",
	"slug": "rattan-lounge-chair",
	"description": "Hand-woven rattan chair",
	"details": "Frame of solid teak",
	"notes": "Ships flat-packed",
	"specifications": {"size": "80x70x90 cm", "finishing": "Natural", "material": "Rattan", "price": "USD 240"},
	"highlights": [
		{"icon": "leaf", "text": "Sustainably sourced"},
		{"icon": "hand", "text": "Hand woven"}
	],
	"images": [
		{"imageUrl": "https://cdn.example.com/chair-1.jpg", "isFeatured": true, "isCatalog": false},
		{"imageUrl": "https://cdn.example.com/chair-2.jpg", "isFeatured": true, "isCatalog": true}
	]
}`

func TestCreateProduct(t *testing.T) {
	e := setupTestServer(t)
	token := adminToken(t, e)

	rec := doRequest(t, e, http.MethodPost, "/api/products", token, fullProductBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["slug"] != "rattan-lounge-chair" {
		t.Errorf("unexpected slug: %v", body["slug"])
	}
	// Two featured images are accepted; exclusivity is not enforced here.
	images, _ := body["images"].([]interface{})
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	spec, _ := body["specifications"].(map[string]interface{})
	if spec == nil || spec["material"] != "Rattan" {
		t.Errorf("unexpected specifications: %v", body["specifications"])
	}
	highlights, _ := body["highlights"].([]interface{})
	if len(highlights) != 2 {
		t.Errorf("expected 2 highlights, got %d", len(highlights))
	}
}

func TestCreateProductDuplicateSlug(t *testing.T) {
	e := setupTestServer(t)
	token := adminToken(t, e)

	first := `{"name":"A","slug":"dup-slug","highlights":[],"images":[]}`
	rec := doRequest(t, e, http.MethodPost, "/api/products", token, first)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var before int64
	testApp.DB().Model(&domain.Product{}).Count(&before)

	second := `{"name":"B","slug":"dup-slug","highlights":[],"images":[]}`
	rec = doRequest(t, e, http.MethodPost, "/api/products", token, second)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := decodeBody(t, rec)["code"]; code != "SLUG_EXISTS" {
		t.Errorf("expected SLUG_EXISTS, got %v", code)
	}

	var after int64
	testApp.DB().Model(&domain.Product{}).Count(&after)
	if after != before {
		t.Errorf("product count changed on rejected create: %d -> %d", before, after)
	}
}

func TestCreateProductMissingChildArrays(t *testing.T) {
	e := setupTestServer(t)
	token := adminToken(t, e)

	rec := doRequest(t, e, http.MethodPost, "/api/products", token,
		`{"name":"No Arrays","slug":"no-arrays"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := decodeBody(t, rec)["code"]; code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %v", code)
	}
}

func TestMutationRequiresAuth(t *testing.T) {
	e := setupTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/products", "",
		`{"name":"X","slug":"x","highlights":[],"images":[]}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := decodeBody(t, rec)["code"]; code != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED, got %v", code)
	}

	rec = doRequest(t, e, http.MethodDelete, "/api/products/1", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on delete, got %d", rec.Code)
	}
}

func TestUpdateProductReplacesChildren(t *testing.T) {
	e := setupTestServer(t)
	token := adminToken(t, e)

	create := `{
		"name": "Teak Side Table", "slug": "teak-side-table",
		"specifications": {"size": "40x40x50 cm", "finishing": "", "material": "Teak", "price": ""},
		"highlights": [{"text": "One"}, {"text": "Two"}],
		"images": [{"imageUrl": "https://cdn.example.com/t1.jpg"}]
	}`
	rec := doRequest(t, e, http.MethodPost, "/api/products", token, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	id := int64(decodeBody(t, rec)["id"].(float64))

	// Replace everything with empty child sets and an all-blank spec.
	update := `{
		"name": "Teak Side Table", "slug": "teak-side-table",
		"specifications": {"size": "", "finishing": "", "material": "", "price": ""},
		"highlights": [], "images": []
	}`
	rec = doRequest(t, e, http.MethodPut, fmt.Sprintf("/api/products/%d", id), token, update)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["specifications"] != nil {
		t.Errorf("expected null specifications after blank update, got %v", body["specifications"])
	}
	if hl, _ := body["highlights"].([]interface{}); len(hl) != 0 {
		t.Errorf("expected 0 highlights after replacement, got %d", len(hl))
	}

	var hlCount, imgCount, specCount int64
	testApp.DB().Model(&domain.Highlight{}).Where("product_id = ?", id).Count(&hlCount)
	testApp.DB().Model(&domain.ProductImage{}).Where("product_id = ?", id).Count(&imgCount)
	testApp.DB().Model(&domain.Specification{}).Where("product_id = ?", id).Count(&specCount)
	if hlCount != 0 || imgCount != 0 || specCount != 0 {
		t.Errorf("stale child rows after replacement: highlights=%d images=%d specs=%d",
			hlCount, imgCount, specCount)
	}
}

func TestUpdateProductSlugCollision(t *testing.T) {
	e := setupTestServer(t)
	token := adminToken(t, e)

	rec := doRequest(t, e, http.MethodPost, "/api/products", token,
		`{"name":"First","slug":"collision-first","highlights":[],"images":[]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}
	rec = doRequest(t, e, http.MethodPost, "/api/products", token,
		`{"name":"Second","slug":"collision-second","highlights":[],"images":[]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}
	id := int64(decodeBody(t, rec)["id"].(float64))

	rec = doRequest(t, e, http.MethodPut, fmt.Sprintf("/api/products/%d", id), token,
		`{"name":"Second","slug":"collision-first","highlights":[],"images":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := decodeBody(t, rec)["code"]; code != "SLUG_EXISTS" {
		t.Errorf("expected SLUG_EXISTS, got %v", code)
	}

	// Re-submitting a product's own slug is not a collision.
	rec = doRequest(t, e, http.MethodPut, fmt.Sprintf("/api/products/%d", id), token,
		`{"name":"Second Renamed","slug":"collision-second","highlights":[],"images":[]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 keeping own slug, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteProduct(t *testing.T) {
	e := setupTestServer(t)
	token := adminToken(t, e)

	rec := doRequest(t, e, http.MethodPost, "/api/products", token,
		`{"name":"Doomed","slug":"doomed","highlights":[{"text":"gone soon"}],"images":[{"imageUrl":"https://cdn.example.com/d.jpg"}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}
	id := int64(decodeBody(t, rec)["id"].(float64))

	rec = doRequest(t, e, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	var count int64
	testApp.DB().Model(&domain.Product{}).Where("id = ?", id).Count(&count)
	if count != 0 {
		t.Error("product row survived delete")
	}
	testApp.DB().Model(&domain.Highlight{}).Where("product_id = ?", id).Count(&count)
	if count != 0 {
		t.Error("highlight rows survived delete")
	}

	rec = doRequest(t, e, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	e := setupTestServer(t)
	token := adminToken(t, e)

	rec := doRequest(t, e, http.MethodPut, "/api/products/999999", token,
		`{"name":"Ghost","slug":"ghost","highlights":[],"images":[]}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := decodeBody(t, rec)["code"]; code != "PRODUCT_NOT_FOUND" {
		t.Errorf("expected PRODUCT_NOT_FOUND, got %v", code)
	}
}
