package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/config"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/memory"
	"github.com/mutugading/goapps-backend/services/catalog/pkg/response"
)

type envelope struct {
	Base response.BaseResponse `json:"base"`
	Data json.RawMessage       `json:"data"`
}

type testServer struct {
	handler    http.Handler
	categories *memory.CategoryRepository
	products   *memory.ProductRepository
}

func newTestServer(t *testing.T, server *config.ServerConfig, checks map[string]Checker) *testServer {
	t.Helper()
	ctx := context.Background()

	categories := memory.NewCategoryRepository()
	products := memory.NewProductRepository()

	active, err := category.NewCategoryWithID("category_1", "Electronics", "")
	require.NoError(t, err)
	inactive, err := category.NewCategoryWithID("category_2", "Music", "")
	require.NoError(t, err)
	inactive.Deactivate()
	_, err = categories.Save(ctx, active)
	require.NoError(t, err)
	_, err = categories.Save(ctx, inactive)
	require.NoError(t, err)

	categoryService := category.NewService(categories, product.NewCategoryUsage(products))
	productService := product.NewService(products, categories, product.DefaultPriceBands())

	handler := NewRouter(RouterConfig{
		Server:     server,
		Categories: NewCategoryHandler(categories, categoryService, shared.NopPublisher{}),
		Products:   NewProductHandler(products, categories, productService, shared.NopPublisher{}),
		Checks:     checks,
	})

	return &testServer{handler: handler, categories: categories, products: products}
}

func (s *testServer) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (s *testServer) createProduct(t *testing.T, name string, price float64) ProductDTO {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": name, "price": price, "category_id": "category_1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var dto ProductDTO
	decodeEnvelope(t, rec, &dto)
	return dto
}

func TestProductRoutes_CreateAndGet(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	created := srv.createProduct(t, "Laptop", 999.5)

	assert.True(t, strings.HasPrefix(created.ID, "product_"))
	assert.Equal(t, "R$ 999,50", created.DisplayPrice)
	assert.Equal(t, "category_1", created.CategoryID)

	rec := srv.do(t, http.MethodGet, "/api/v1/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched ProductDTO
	env := decodeEnvelope(t, rec, &fetched)
	assert.True(t, env.Base.IsSuccess)
	assert.Equal(t, "Laptop", fetched.Name)
	assert.Equal(t, 999.5, fetched.Price)
}

func TestProductRoutes_CreateFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    interface{}
		status  int
		message string
		field   string
	}{
		{
			name:    "inactive category",
			body:    map[string]interface{}{"name": "Guitar", "price": 100, "category_id": "category_2"},
			status:  http.StatusConflict,
			message: product.ErrCategoryInactive.Error(),
		},
		{
			name:    "unknown category",
			body:    map[string]interface{}{"name": "Guitar", "price": 100, "category_id": "category_9"},
			status:  http.StatusConflict,
			message: product.ErrCategoryInactive.Error(),
		},
		{
			name:    "price outside band",
			body:    map[string]interface{}{"name": "Server", "price": 5000, "category_id": "category_1"},
			status:  http.StatusConflict,
			message: product.ErrPriceOutOfRange.Error(),
		},
		{
			name:   "negative price",
			body:   map[string]interface{}{"name": "Laptop", "price": -1, "category_id": "category_1"},
			status: http.StatusBadRequest,
			field:  "price",
		},
		{
			name:   "missing price",
			body:   map[string]interface{}{"name": "Laptop", "category_id": "category_1"},
			status: http.StatusBadRequest,
			field:  "price",
		},
		{
			name:   "blank name",
			body:   map[string]interface{}{"name": "  ", "price": 100, "category_id": "category_1"},
			status: http.StatusBadRequest,
			field:  "name",
		},
		{
			name:    "malformed body",
			body:    "{not json",
			status:  http.StatusBadRequest,
			message: "request body must be valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil, nil)

			rec := srv.do(t, http.MethodPost, "/api/v1/products", tt.body)

			assert.Equal(t, tt.status, rec.Code)
			env := decodeEnvelope(t, rec, nil)
			assert.False(t, env.Base.IsSuccess)
			if tt.message != "" {
				assert.Equal(t, tt.message, env.Base.Message)
			}
			if tt.field != "" {
				require.Len(t, env.Base.ValidationErrors, 1)
				assert.Equal(t, tt.field, env.Base.ValidationErrors[0].Field)
			}
		})
	}
}

func TestProductRoutes_DuplicateName(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	srv.createProduct(t, "Laptop", 500)

	rec := srv.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Laptop", "price": 600, "category_id": "category_1",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, product.ErrDuplicateName.Error(), decodeEnvelope(t, rec, nil).Base.Message)
}

func TestProductRoutes_ListUpdateDelete(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	laptop := srv.createProduct(t, "Laptop", 500)
	srv.createProduct(t, "Phone", 300)

	rec := srv.do(t, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []ProductDTO
	decodeEnvelope(t, rec, &all)
	assert.Len(t, all, 2)

	rec = srv.do(t, http.MethodGet, "/api/v1/products/category/category_1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var inCategory []ProductDTO
	decodeEnvelope(t, rec, &inCategory)
	assert.Len(t, inCategory, 2)

	rec = srv.do(t, http.MethodPut, "/api/v1/products/"+laptop.ID, map[string]interface{}{
		"name": "Laptop Pro", "price": 1500, "category_id": "category_1", "description": "16 inch",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated ProductDTO
	decodeEnvelope(t, rec, &updated)
	assert.Equal(t, laptop.ID, updated.ID)
	assert.Equal(t, "Laptop Pro", updated.Name)
	assert.Equal(t, "R$ 1.500,00", updated.DisplayPrice)

	rec = srv.do(t, http.MethodDelete, "/api/v1/products/"+laptop.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/products/"+laptop.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/v1/products/"+laptop.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductRoutes_Export(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	srv.createProduct(t, "Laptop", 500)

	rec := srv.do(t, http.MethodGet, "/api/v1/products/export?category_id=category_1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "product_export_category_1.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestCategoryRoutes(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := srv.do(t, http.MethodPost, "/api/v1/categories", map[string]string{"name": "Books"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var books CategoryDTO
	decodeEnvelope(t, rec, &books)
	assert.True(t, books.IsActive)

	rec = srv.do(t, http.MethodPost, "/api/v1/categories", map[string]string{"name": "Books"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/categories?active=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var active []CategoryDTO
	decodeEnvelope(t, rec, &active)
	assert.Len(t, active, 2)

	rec = srv.do(t, http.MethodGet, "/api/v1/categories?active=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/categories/category_2/activate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var activated CategoryDTO
	decodeEnvelope(t, rec, &activated)
	assert.True(t, activated.IsActive)

	rec = srv.do(t, http.MethodGet, "/api/v1/categories/statistics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats category.Statistics
	decodeEnvelope(t, rec, &stats)
	assert.Equal(t, category.Statistics{Total: 3, Active: 3, Inactive: 0}, stats)

	name := "Novels"
	rec = srv.do(t, http.MethodPut, "/api/v1/categories/"+books.ID, map[string]interface{}{"name": name})
	require.Equal(t, http.StatusOK, rec.Code)
	var renamed CategoryDTO
	decodeEnvelope(t, rec, &renamed)
	assert.Equal(t, "Novels", renamed.Name)

	rec = srv.do(t, http.MethodGet, "/api/v1/categories/category_404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryRoutes_CreateWithTakenID(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := srv.do(t, http.MethodGet, "/api/v1/categories/category_2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var before CategoryDTO
	decodeEnvelope(t, rec, &before)

	rec = srv.do(t, http.MethodPost, "/api/v1/categories", map[string]string{
		"category_id": "category_2", "name": "Jazz",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, category.ErrIDTaken.Error(), decodeEnvelope(t, rec, nil).Base.Message)

	rec = srv.do(t, http.MethodGet, "/api/v1/categories/category_2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var after CategoryDTO
	decodeEnvelope(t, rec, &after)
	assert.Equal(t, before, after)
	assert.Equal(t, "Music", after.Name)
	assert.False(t, after.IsActive)
}

func TestCategoryRoutes_DeleteWithProducts(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	laptop := srv.createProduct(t, "Laptop", 500)

	rec := srv.do(t, http.MethodDelete, "/api/v1/categories/category_1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, category.ErrHasProducts.Error(), decodeEnvelope(t, rec, nil).Base.Message)

	srv.do(t, http.MethodDelete, "/api/v1/products/"+laptop.ID, nil)

	rec = srv.do(t, http.MethodDelete, "/api/v1/categories/category_1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCategoryRoutes_Pricing(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	srv.createProduct(t, "Laptop", 100)
	srv.createProduct(t, "Phone", 300)

	rec := srv.do(t, http.MethodGet, "/api/v1/categories/category_1/pricing?price=240", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var pricing PricingDTO
	decodeEnvelope(t, rec, &pricing)
	assert.Equal(t, 10.0, pricing.MinPrice)
	assert.Equal(t, 1000.0, pricing.MaxPrice)
	require.NotNil(t, pricing.AveragePrice)
	assert.Equal(t, 200.0, *pricing.AveragePrice)
	assert.Equal(t, 2, pricing.ProductCount)
	require.NotNil(t, pricing.WithinRange)
	assert.True(t, *pricing.WithinRange)
	require.NotNil(t, pricing.Competitive)
	assert.True(t, *pricing.Competitive)
	assert.Equal(t, "R$ 240,00", pricing.DisplayPrice)

	rec = srv.do(t, http.MethodGet, "/api/v1/categories/category_1/pricing", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary PricingDTO
	decodeEnvelope(t, rec, &summary)
	assert.Nil(t, summary.Price)
	assert.Nil(t, summary.Competitive)

	rec = srv.do(t, http.MethodGet, "/api/v1/categories/category_1/pricing?price=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, raw := range []string{"NaN", "Inf", "-Inf"} {
		rec = srv.do(t, http.MethodGet, "/api/v1/categories/category_1/pricing?price="+raw, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, raw)
	}

	rec = srv.do(t, http.MethodGet, "/api/v1/categories/category_404/pricing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RequestID(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := srv.do(t, http.MethodGet, "/api/v1/products", nil)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestRouter_RateLimit(t *testing.T) {
	srv := newTestServer(t, &config.ServerConfig{RateLimitRPS: 0.001, RateLimitBurst: 5}, nil)

	for i := 0; i < 5; i++ {
		rec := srv.do(t, http.MethodGet, "/api/v1/products", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := srv.do(t, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// health endpoints are not rate limited
	rec = srv.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, nil, map[string]Checker{
		"database": CheckerFunc(func(context.Context) error { return nil }),
		"redis":    CheckerFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	for _, path := range []string{"/healthz", "/livez"} {
		rec := srv.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := srv.do(t, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var statuses map[string]string
	decodeEnvelope(t, rec, &statuses)
	assert.Equal(t, "ok", statuses["database"])
	assert.Equal(t, "connection refused", statuses["redis"])
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	srv.do(t, http.MethodGet, "/api/v1/categories/statistics", nil)

	rec := srv.do(t, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="GET /api/v1/categories/statistics"`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, &config.ServerConfig{AllowedOrigins: []string{"https://shop.example"}}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestTimeoutMiddleware(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	handler := Chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		deadline, hasDeadline = r.Context().Deadline()
	}), TimeoutMiddleware(time.Minute))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), RecoveryMiddleware())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeEnvelope(t, rec, nil).Base.Message)
}

func TestErrorResponse(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", product.ErrNegativePrice, http.StatusBadRequest},
		{"not found", category.ErrNotFound, http.StatusNotFound},
		{"rule violation", category.ErrAlreadyExists, http.StatusConflict},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"canceled", context.Canceled, http.StatusServiceUnavailable},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, errorResponse(ctx, tt.err).HTTPStatus())
		})
	}
}
