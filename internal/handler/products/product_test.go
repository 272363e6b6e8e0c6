// File: internal/handler/products/product_test.go
package products

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cyber-shop/internal/cache"
	"cyber-shop/internal/database"
	"cyber-shop/internal/model"
	"cyber-shop/internal/store"
	"cyber-shop/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	listProducts = store.ListProducts
	getProductByID = store.GetProductByID
	createProduct = store.CreateProduct
	updateProduct = store.UpdateProduct
	deleteProduct = store.DeleteProduct
}

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

type errValidator struct{}

func (errValidator) Validate(i any) error { return errors.New("v") }

type okValidator struct{}

func (okValidator) Validate(i any) error { return nil }

// syncPool 同步執行任務，方便驗證快取副作用
type syncPool struct{}

func (syncPool) Submit(t worker.Task) { t() }
func (syncPool) Stop()                {}

func missCache() *cache.FakeCache {
	return &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("OK", nil)
		},
		DelFn: func(context.Context, ...string) *redis.IntCmd {
			return redis.NewIntResult(1, nil)
		},
	}
}

func newCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sampleProduct() *model.Product {
	desc := "The best watch for hackers"
	return &model.Product{
		ID:            1,
		Name:          "Cyber-Punk Watch v.1",
		Description:   &desc,
		Price:         99.99,
		StockQuantity: 1,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestListProductsHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	e := echo.New()

	// invalid skip
	ctx, rec := newCtx(e, http.MethodGet, "/products?skip=abc", "")
	require.NoError(t, ListProductsHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// invalid limit
	ctx, rec = newCtx(e, http.MethodGet, "/products?limit=-1", "")
	require.NoError(t, ListProductsHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// store error
	listProducts = func(context.Context, database.DB, int, int) ([]model.Product, error) {
		return nil, errors.New("list fail")
	}
	ctx, rec = newCtx(e, http.MethodGet, "/products", "")
	require.NoError(t, ListProductsHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// ok：skip/limit 傳入 store
	listProducts = func(_ context.Context, _ database.DB, skip, limit int) ([]model.Product, error) {
		require.Equal(t, 5, skip)
		require.Equal(t, 10, limit)
		return []model.Product{*sampleProduct(), *sampleProduct()}, nil
	}
	ctx, rec = newCtx(e, http.MethodGet, "/products?skip=5&limit=10", "")
	require.NoError(t, ListProductsHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Cyber-Punk Watch v.1")
}

func TestGetProductHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	e := echo.New()

	// invalid id
	ctx, rec := newCtx(e, http.MethodGet, "/", "")
	ctx.SetParamNames("product_id")
	ctx.SetParamValues("abc")
	require.NoError(t, GetProductHandler(&database.FakeDB{}, missCache(), syncPool{})(ctx))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// cache hit：直接回傳快取內容，不碰資料庫
	hit := missCache()
	hit.GetFn = func(_ context.Context, key string) *redis.StringCmd {
		require.Equal(t, "product:1", key)
		return redis.NewStringResult(`{"id":1,"name":"cached"}`, nil)
	}
	ctx, rec = newCtx(e, http.MethodGet, "/", "")
	ctx.SetParamNames("product_id")
	ctx.SetParamValues("1")
	require.NoError(t, GetProductHandler(&database.FakeDB{}, hit, syncPool{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "cached")

	// not found
	getProductByID = func(context.Context, database.DB, int) (*model.Product, error) {
		return nil, fmt.Errorf("GetProductByID: %w", pgx.ErrNoRows)
	}
	ctx, rec = newCtx(e, http.MethodGet, "/", "")
	ctx.SetParamNames("product_id")
	ctx.SetParamValues("99")
	require.NoError(t, GetProductHandler(&database.FakeDB{}, missCache(), syncPool{})(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Product not found")

	// ok：回傳商品並回填快取
	getProductByID = func(context.Context, database.DB, int) (*model.Product, error) {
		return sampleProduct(), nil
	}
	cch := missCache()
	setKey := ""
	cch.SetFn = func(_ context.Context, key string, _ any, ttl time.Duration) *redis.StatusCmd {
		setKey = key
		require.Equal(t, productCacheTTL, ttl)
		return redis.NewStatusResult("OK", nil)
	}
	ctx, rec = newCtx(e, http.MethodGet, "/", "")
	ctx.SetParamNames("product_id")
	ctx.SetParamValues("1")
	require.NoError(t, GetProductHandler(&database.FakeDB{}, cch, syncPool{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Cyber-Punk Watch v.1")
	require.Equal(t, "product:1", setKey)
}

func TestCreateProductHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)

	// bind error
	e := echo.New()
	e.Binder = errBinder{}
	ctx, rec := newCtx(e, http.MethodPost, "/products", "")
	require.NoError(t, CreateProductHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// validate error
	e = echo.New()
	e.Validator = errValidator{}
	ctx, rec = newCtx(e, http.MethodPost, "/products", `{"name":""}`)
	require.NoError(t, CreateProductHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// 價格超過上限
	e = echo.New()
	e.Validator = okValidator{}
	ctx, rec = newCtx(e, http.MethodPost, "/products", `{"name":"Watch","price":2000000}`)
	require.NoError(t, CreateProductHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Price is too high even for Cyberpunk")

	// store error
	createProduct = func(context.Context, database.DB, *model.Product) (*model.Product, error) {
		return nil, errors.New("insert fail")
	}
	ctx, rec = newCtx(e, http.MethodPost, "/products", `{"name":"Watch","price":99.99,"stock_quantity":1}`)
	require.NoError(t, CreateProductHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// success：回傳產生的 id 與時間戳
	createProduct = func(_ context.Context, _ database.DB, p *model.Product) (*model.Product, error) {
		require.Equal(t, "Watch", p.Name)
		require.Equal(t, 99.99, p.Price)
		require.Equal(t, 1, p.StockQuantity)
		p.ID = 42
		p.CreatedAt = time.Now().UTC()
		return p, nil
	}
	ctx, rec = newCtx(e, http.MethodPost, "/products", `{"name":"Watch","price":99.99,"stock_quantity":1}`)
	require.NoError(t, CreateProductHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":42`)
	require.Contains(t, rec.Body.String(), `"name":"Watch"`)
	require.Contains(t, rec.Body.String(), "created_at")
}

func TestUpdateProductHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	e := echo.New()
	e.Validator = okValidator{}

	// invalid id
	ctx, rec := newCtx(e, http.MethodPut, "/", `{"name":"X","price":1}`)
	ctx.SetParamNames("product_id")
	ctx.SetParamValues("abc")
	require.NoError(t, UpdateProductHandler(&database.FakeDB{}, missCache(), syncPool{})(ctx))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// not found
	getProductByID = func(context.Context, database.DB, int) (*model.Product, error) {
		return nil, fmt.Errorf("GetProductByID: %w", pgx.ErrNoRows)
	}
	ctx, rec = newCtx(e, http.MethodPut, "/", `{"name":"X","price":1}`)
	ctx.SetParamNames("product_id")
	ctx.SetParamValues("99")
	require.NoError(t, UpdateProductHandler(&database.FakeDB{}, missCache(), syncPool{})(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// success：全量覆寫並讓快取失效
	getProductByID = func(context.Context, database.DB, int) (*model.Product, error) {
		return sampleProduct(), nil
	}
	var updated *model.Product
	updateProduct = func(_ context.Context, _ database.DB, p *model.Product) error {
		updated = p
		return nil
	}
	cch := missCache()
	delKeys := []string{}
	cch.DelFn = func(_ context.Context, keys ...string) *redis.IntCmd {
		delKeys = append(delKeys, keys...)
		return redis.NewIntResult(1, nil)
	}
	ctx, rec = newCtx(e, http.MethodPut, "/", `{"name":"New Name","price":10.5,"stock_quantity":7}`)
	ctx.SetParamNames("product_id")
	ctx.SetParamValues("1")
	require.NoError(t, UpdateProductHandler(&database.FakeDB{}, cch, syncPool{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, updated)
	require.Equal(t, "New Name", updated.Name)
	require.Equal(t, 10.5, updated.Price)
	require.Equal(t, 7, updated.StockQuantity)
	require.Nil(t, updated.Description)
	require.Equal(t, []string{"product:1"}, delKeys)
	require.Contains(t, rec.Body.String(), "New Name")
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(restoreGlobals)
	e := echo.New()

	// invalid id
	ctx, rec := newCtx(e, http.MethodDelete, "/", "")
	ctx.SetParamNames("product_id")
	ctx.SetParamValues("abc")
	require.NoError(t, DeleteProductHandler(&database.FakeDB{}, missCache(), syncPool{})(ctx))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// not found
	getProductByID = func(context.Context, database.DB, int) (*model.Product, error) {
		return nil, fmt.Errorf("GetProductByID: %w", pgx.ErrNoRows)
	}
	ctx, rec = newCtx(e, http.MethodDelete, "/", "")
	ctx.SetParamNames("product_id")
	ctx.SetParamValues("99")
	require.NoError(t, DeleteProductHandler(&database.FakeDB{}, missCache(), syncPool{})(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// delete error
	getProductByID = func(context.Context, database.DB, int) (*model.Product, error) {
		return sampleProduct(), nil
	}
	deleteProduct = func(context.Context, database.DB, int) error { return errors.New("delete fail") }
	ctx, rec = newCtx(e, http.MethodDelete, "/", "")
	ctx.SetParamNames("product_id")
	ctx.SetParamValues("1")
	require.NoError(t, DeleteProductHandler(&database.FakeDB{}, missCache(), syncPool{})(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// success：先查後刪，204 並讓快取失效
	deleteProduct = func(context.Context, database.DB, int) error { return nil }
	cch := missCache()
	delCalled := false
	cch.DelFn = func(_ context.Context, keys ...string) *redis.IntCmd {
		delCalled = true
		require.Equal(t, []string{"product:1"}, keys)
		return redis.NewIntResult(1, nil)
	}
	ctx, rec = newCtx(e, http.MethodDelete, "/", "")
	ctx.SetParamNames("product_id")
	ctx.SetParamValues("1")
	require.NoError(t, DeleteProductHandler(&database.FakeDB{}, cch, syncPool{})(ctx))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, delCalled)
}
