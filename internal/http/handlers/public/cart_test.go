package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meiduo-next/internal/config"
	"github.com/meiduo-next/internal/http/response"
	"github.com/meiduo-next/internal/models"
	"github.com/meiduo-next/internal/provider"
	"github.com/meiduo-next/internal/repository"
	"github.com/meiduo-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newCartTestHandler(t *testing.T) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "handler.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	product := models.Product{
		ID:          1,
		Name:        "测试商品",
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("10.50")),
		Stock:       10,
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	cfg := &config.Config{}
	cfg.Cart.CookieName = "cart"
	cfg.Cart.CookieMaxAge = 3600

	return New(&provider.Container{
		Config:      cfg,
		ProductRepo: productRepo,
		CartService: service.NewCartService(nil, productRepo),
	})
}

func postCartJSON(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/cart", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.AddCartItem(c)
	return w
}

// decodeSingleResponse 解析响应体并校验只写入了一个 JSON 文档
func decodeSingleResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	decoder := json.NewDecoder(strings.NewReader(w.Body.String()))
	var resp response.Response
	if err := decoder.Decode(&resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if decoder.More() {
		t.Fatalf("response must contain exactly one JSON body, got %q", w.Body.String())
	}
	return resp
}

func findCartCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "cart" {
			return cookie
		}
	}
	return nil
}

func TestAddCartItemAnonymousWritesCookieOnce(t *testing.T) {
	h := newCartTestHandler(t)
	w := postCartJSON(t, h, `{"product_id":1,"quantity":2}`)

	resp := decodeSingleResponse(t, w)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("status code want %d got %d", response.CodeOK, resp.StatusCode)
	}

	cookie := findCartCookie(w)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("anonymous add must set the cart cookie")
	}
	cart := service.DecodeCartCookie(cookie.Value)
	line, ok := cart[1]
	if !ok || line.Quantity != 2 || !line.Selected {
		t.Fatalf("cookie line want qty 2 selected, got %+v", cart)
	}
}

func TestAddCartItemAnonymousErrorSkipsCookie(t *testing.T) {
	h := newCartTestHandler(t)
	w := postCartJSON(t, h, `{"product_id":99,"quantity":2}`)

	resp := decodeSingleResponse(t, w)
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("status code want %d got %d", response.CodeBadRequest, resp.StatusCode)
	}
	if findCartCookie(w) != nil {
		t.Fatalf("failed add must not touch the cart cookie")
	}
}
