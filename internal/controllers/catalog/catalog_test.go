package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/models"
	"storefront/internal/testutil"
)

func router(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", List(db))
	r.GET("/products/:id", Detail(db))
	return r
}

func seedCatalog(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		p := models.Product{
			Name:     fmt.Sprintf("Product %d", i),
			Brand:    fmt.Sprintf("Brand %d", i%3),
			Category: fmt.Sprintf("Category %d", i%2),
			Price:    decimal.NewFromInt(int64(i)),
			Stock:    5,
		}
		require.NoError(t, db.Create(&p).Error)
	}
}

type listResponse struct {
	Products   []models.Product `json:"products"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      int64            `json:"total"`
	Categories []string         `json:"categories"`
	Brands     []string         `json:"brands"`
}

func getList(t *testing.T, r *gin.Engine, query string) listResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/products"+query, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestListPaginatesAtTen(t *testing.T) {
	db := testutil.OpenDB(t)
	seedCatalog(t, db, 25)
	r := router(db)

	first := getList(t, r, "")
	assert.Len(t, first.Products, 10)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 3, first.TotalPages)
	assert.EqualValues(t, 25, first.Total)

	last := getList(t, r, "?page=3")
	assert.Len(t, last.Products, 5)
}

func TestListFiltersAreANDCombined(t *testing.T) {
	db := testutil.OpenDB(t)
	seedCatalog(t, db, 12)
	r := router(db)

	// odd ids: 1,3,5,7,9,11
	byCategory := getList(t, r, "?category=Category+1")
	require.Len(t, byCategory.Products, 6)
	for _, p := range byCategory.Products {
		assert.Equal(t, "Category 1", p.Category)
	}

	// odd AND id%3==1: 1,7
	both := getList(t, r, "?category=Category+1&brand=Brand+1")
	require.Len(t, both.Products, 2)
	for _, p := range both.Products {
		assert.Equal(t, "Category 1", p.Category)
		assert.Equal(t, "Brand 1", p.Brand)
	}
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	db := testutil.OpenDB(t)
	seedCatalog(t, db, 5)
	r := router(db)

	out := getList(t, r, "?search=pRoDuCt+3")
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Product 3", out.Products[0].Name)

	none := getList(t, r, "?search=widget")
	assert.Len(t, none.Products, 0)
}

func TestListExposesDistinctCategoriesAndBrands(t *testing.T) {
	db := testutil.OpenDB(t)
	seedCatalog(t, db, 6)

	out := getList(t, router(db), "")
	assert.ElementsMatch(t, []string{"Category 0", "Category 1"}, out.Categories)
	assert.ElementsMatch(t, []string{"Brand 0", "Brand 1", "Brand 2"}, out.Brands)
}

func TestDetail(t *testing.T) {
	db := testutil.OpenDB(t)
	product := testutil.Product(t, db, "Product 1", "19.99")
	r := router(db)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Product 1")

	req = httptest.NewRequest(http.MethodGet, "/products/99999", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
