package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/catalog-api/internal/api/shared"
	"github.com/openshelf/catalog-api/internal/domain"
	"github.com/openshelf/catalog-api/internal/mocks"
	"github.com/openshelf/catalog-api/internal/service"
)

// testEnv bundles the router and the backing mock stores so tests can seed
// data and drive requests end to end through the real handlers and services.
type testEnv struct {
	router       chi.Router
	productStore *mocks.MockProductStore
	userStore    *mocks.MockUserStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	productStore := mocks.NewMockProductStore()
	userStore := mocks.NewMockUserStore()

	productService, err := service.NewProductService(productStore, log)
	require.NoError(t, err)

	userService, err := service.NewUserService(userStore, log)
	require.NoError(t, err)

	productHandler := NewProductHandler(productService, log)
	userHandler := NewUserHandler(userService, log)

	return &testEnv{
		router:       NewRouter(productHandler, userHandler, log),
		productStore: productStore,
		userStore:    userStore,
	}
}

// do executes a request against the router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp shared.ErrorResponse
	decodeBody(t, rec, &resp)
	return resp.Error
}

func TestRegisterProduct(t *testing.T) {
	t.Parallel()

	t.Run("creates a valid product", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/products", ProductRequest{
			Name:  "Laptop",
			Price: 1200.50,
			Stock: 3,
		})

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp ProductResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Laptop", resp.Name)
		assert.Equal(t, 1200.50, resp.Price)
		assert.Equal(t, 3, resp.Stock)

		id, err := uuid.Parse(resp.ID)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("rejects zero price with the registration message", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/products", ProductRequest{
			Name:  "Laptop",
			Price: 0,
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "cannot register a product with zero or negative price", errorMessage(t, rec))
	})

	t.Run("rejects negative price with the registration message", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/products", ProductRequest{
			Name:  "Laptop",
			Price: -10,
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "cannot register a product with zero or negative price", errorMessage(t, rec))
	})

	t.Run("rejects blank name after price passes", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/products", ProductRequest{
			Name:  "   ",
			Price: 10,
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "product name is required", errorMessage(t, rec))
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/products", "{not json")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request format", errorMessage(t, rec))
	})
}

func TestGetProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	seeded := env.productStore.Seed(&domain.Product{Name: "Mouse", Price: 25, Stock: 8})

	t.Run("returns a seeded product", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/products/"+seeded[0].ID.String(), nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProductResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, seeded[0].ID.String(), resp.ID)
		assert.Equal(t, "Mouse", resp.Name)
	})

	t.Run("returns 404 for an unknown id", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/products/"+uuid.New().String(), nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Product not found", errorMessage(t, rec))
	})

	t.Run("returns 400 for a malformed id", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/products/not-a-uuid", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid ID format", errorMessage(t, rec))
	})
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	t.Run("returns an empty array when the catalog is empty", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/api/products", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("returns all products", func(t *testing.T) {
		env := newTestEnv(t)
		env.productStore.Seed(
			&domain.Product{Name: "Mouse", Price: 25, Stock: 8},
			&domain.Product{Name: "Keyboard", Price: 45, Stock: 2},
		)

		rec := env.do(t, http.MethodGet, "/api/products", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp []ProductResponse
		decodeBody(t, rec, &resp)
		assert.Len(t, resp, 2)
	})
}

func TestListProductsByPriceRange(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.productStore.Seed(
		&domain.Product{Name: "Cable", Price: 5, Stock: 100},
		&domain.Product{Name: "Mouse", Price: 15, Stock: 8},
		&domain.Product{Name: "Keyboard", Price: 25, Stock: 2},
	)

	t.Run("returns products inside the inclusive range", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/products/price-range?min=10&max=20", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp []ProductResponse
		decodeBody(t, rec, &resp)
		require.Len(t, resp, 1)
		assert.Equal(t, "Mouse", resp[0].Name)
	})

	t.Run("inverted range matches nothing", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/products/price-range?min=20&max=10", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("rejects a non-numeric bound", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/products/price-range?min=abc&max=10", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "min must be a number", errorMessage(t, rec))
	})
}

func TestListLowStockProducts(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.productStore.Seed(
		&domain.Product{Name: "Cable", Price: 5, Stock: 0},
		&domain.Product{Name: "Mouse", Price: 15, Stock: 5},
		&domain.Product{Name: "Keyboard", Price: 25, Stock: 10},
	)

	t.Run("threshold is exclusive", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/products/low-stock?threshold=5", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp []ProductResponse
		decodeBody(t, rec, &resp)
		require.Len(t, resp, 1)
		assert.Equal(t, "Cable", resp[0].Name)
	})

	t.Run("rejects a non-integer threshold", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/products/low-stock?threshold=lots", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "threshold must be an integer", errorMessage(t, rec))
	})
}

func TestReplaceProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	seeded := env.productStore.Seed(&domain.Product{Name: "Mouse", Price: 25, Stock: 8})

	t.Run("replaces every field", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/products/"+seeded[0].ID.String(), ProductRequest{
			Name:  "Wireless Mouse",
			Price: 35,
			Stock: 4,
		})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProductResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, seeded[0].ID.String(), resp.ID)
		assert.Equal(t, "Wireless Mouse", resp.Name)
		assert.Equal(t, 35.0, resp.Price)
		assert.Equal(t, 4, resp.Stock)
	})

	t.Run("validation still applies", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/products/"+seeded[0].ID.String(), ProductRequest{
			Name:  "Wireless Mouse",
			Price: -1,
			Stock: 4,
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "price must be greater than zero", errorMessage(t, rec))
	})
}

func TestAdjustStock(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	seeded := env.productStore.Seed(&domain.Product{Name: "Mouse", Price: 25, Stock: 10})
	id := seeded[0].ID.String()

	t.Run("applies a negative delta", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/products/"+id+"/stock/adjustments", AdjustStockRequest{Delta: -4})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProductResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, 6, resp.Stock)
	})

	t.Run("rejects a delta that would go negative", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/products/"+id+"/stock/adjustments", AdjustStockRequest{Delta: -20})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorMessage(t, rec), "current stock: 6")
	})

	t.Run("a zero delta is a no-op", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/products/"+id+"/stock/adjustments", AdjustStockRequest{Delta: 0})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProductResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, 6, resp.Stock)
	})

	t.Run("returns 404 for an unknown product", func(t *testing.T) {
		rec := env.do(t, http.MethodPost,
			fmt.Sprintf("/api/products/%s/stock/adjustments", uuid.New()), AdjustStockRequest{Delta: 1})

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestReplaceStock(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	seeded := env.productStore.Seed(&domain.Product{Name: "Mouse", Price: 25, Stock: 10})
	id := seeded[0].ID.String()

	t.Run("replaces the stored quantity", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/products/"+id+"/stock", ReplaceStockRequest{Quantity: 3})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProductResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, 3, resp.Stock)
	})

	t.Run("rejects a negative quantity before any lookup", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/products/"+id+"/stock", ReplaceStockRequest{Quantity: -1})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "stock quantity cannot be negative", errorMessage(t, rec))
	})

	t.Run("returns 404 for an unknown product", func(t *testing.T) {
		rec := env.do(t, http.MethodPut,
			fmt.Sprintf("/api/products/%s/stock", uuid.New()), ReplaceStockRequest{Quantity: 5})

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSetPrice(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	seeded := env.productStore.Seed(&domain.Product{Name: "Mouse", Price: 25, Stock: 10})
	id := seeded[0].ID.String()

	t.Run("updates the price", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/products/"+id+"/price", SetPriceRequest{Price: 99.99})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProductResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, 99.99, resp.Price)
	})

	t.Run("rejects a non-positive price even for an unknown product", func(t *testing.T) {
		rec := env.do(t, http.MethodPut,
			fmt.Sprintf("/api/products/%s/price", uuid.New()), SetPriceRequest{Price: 0})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "price must be greater than zero", errorMessage(t, rec))
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	seeded := env.productStore.Seed(&domain.Product{Name: "Mouse", Price: 25, Stock: 10})
	id := seeded[0].ID.String()

	assertDeleted := func(t *testing.T, rec *httptest.ResponseRecorder, want bool) {
		t.Helper()
		require.Equal(t, http.StatusOK, rec.Code)
		var resp DeleteProductResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, want, resp.Deleted)
	}

	t.Run("reports true for an existing product", func(t *testing.T) {
		assertDeleted(t, env.do(t, http.MethodDelete, "/api/products/"+id, nil), true)
	})

	t.Run("reports false once the product is gone", func(t *testing.T) {
		assertDeleted(t, env.do(t, http.MethodDelete, "/api/products/"+id, nil), false)
	})

	t.Run("reports false for a malformed id", func(t *testing.T) {
		assertDeleted(t, env.do(t, http.MethodDelete, "/api/products/not-a-uuid", nil), false)
	})
}
