package productcontroller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/catalog"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	body := `[
		{"id": "p1", "title": "Oil Filter", "price": 10, "images": ["a.jpg"], "category": "Oil Filters"},
		{"id": "p2", "title": "Dash Cam", "price": 45, "images": ["b.jpg"], "category": "Dash Cams"}
	]`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write products file: %v", err)
	}
	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	return cat
}

func newRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Rating{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	cat := testCatalog(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", GetStorefront(cat))
	r.GET("/product/:id", GetProductByID(cat, db))
	return r, db
}

func TestGetStorefront(t *testing.T) {
	r, _ := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Products   []catalog.Product `json:"products"`
		Categories []string          `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Products) != 2 {
		t.Errorf("Expected 2 products, got %d", len(resp.Products))
	}
	want := []string{"Dash Cams", "Oil Filters"}
	if len(resp.Categories) != 2 || resp.Categories[0] != want[0] || resp.Categories[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, resp.Categories)
	}
}

func TestGetProductByID(t *testing.T) {
	r, db := newRouter(t)
	db.Create(&models.Rating{ProductID: "p1", Rating: 5, Comment: "Great fit"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/p1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Product catalog.Product `json:"product"`
		Ratings []models.Rating `json:"ratings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Product.ID != "p1" {
		t.Errorf("Expected product p1, got %q", resp.Product.ID)
	}
	if len(resp.Ratings) != 1 || resp.Ratings[0].Rating != 5 {
		t.Errorf("Expected the submitted rating, got %+v", resp.Ratings)
	}
}

func TestGetProductByIDUnknown(t *testing.T) {
	r, _ := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
