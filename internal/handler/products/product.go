// File: internal/handler/products/product.go
package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cyber-shop/internal/api"
	"cyber-shop/internal/cache"
	"cyber-shop/internal/database"
	"cyber-shop/internal/model"
	"cyber-shop/internal/store"
	"cyber-shop/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// 測試替換點
var (
	listProducts   = store.ListProducts
	getProductByID = store.GetProductByID
	createProduct  = store.CreateProduct
	updateProduct  = store.UpdateProduct
	deleteProduct  = store.DeleteProduct
)

// 商品讀取快取的存活時間
const productCacheTTL = 5 * time.Minute

// 單價上限，超過視為輸入錯誤
const maxPrice = 1_000_000

func productCacheKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

func toResponse(p *model.Product) api.ProductResponse {
	return api.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
	}
}

// 快取的寫入與失效走 worker pool，不阻塞請求
// 請求的 context 在回應後即結束，故這裡使用 Background
func invalidateAsync(wp worker.Pool, cch cache.Cache, id int) {
	wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cch.Del(ctx, productCacheKey(id))
	})
}

// 讀取與更新交錯時，舊資料可能在失效之後才寫回快取
// 這類過期內容最長存活 productCacheTTL，到期即汰換
func cacheAsync(wp worker.Pool, cch cache.Cache, resp api.ProductResponse) {
	wp.Submit(func() {
		data, err := json.Marshal(resp)
		if err != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cch.Set(ctx, productCacheKey(resp.ID), data, productCacheTTL)
	})
}

// ListProductsHandler 取得商品列表（開放匿名存取）
// @Summary     List products
// @Tags        products
// @Produce     json
// @Param       skip  query int false "略過筆數" default(0)
// @Param       limit query int false "回傳筆數上限" default(100)
// @Success     200 {array}  api.ProductResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /products [get]
func ListProductsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		skip, limit := 0, 100
		var err error
		if v := c.QueryParam("skip"); v != "" {
			if skip, err = strconv.Atoi(v); err != nil || skip < 0 {
				return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "invalid skip"})
			}
		}
		if v := c.QueryParam("limit"); v != "" {
			if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
				return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "invalid limit"})
			}
		}

		items, err := listProducts(c.Request().Context(), db, skip, limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := make([]api.ProductResponse, 0, len(items))
		for i := range items {
			resp = append(resp, toResponse(&items[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// GetProductHandler 取得單一商品（開放匿名存取，帶讀取快取）
// @Summary     Get a product by ID
// @Tags        products
// @Produce     json
// @Param       product_id path int true "商品 ID"
// @Success     200 {object} api.ProductResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /products/{product_id} [get]
func GetProductHandler(db database.DB, cch cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "invalid product ID"})
		}

		if data, err := cch.Get(c.Request().Context(), productCacheKey(id)).Bytes(); err == nil {
			return c.JSONBlob(http.StatusOK, data)
		}

		product, err := getProductByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Product not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := toResponse(product)
		cacheAsync(wp, cch, resp)
		return c.JSON(http.StatusOK, resp)
	}
}

// CreateProductHandler 建立商品（需通過認證）
// @Summary     Create a new product
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       body body api.CreateProductRequest true "商品資料"
// @Success     201 {object} api.ProductResponse
// @Failure     400 {object} api.ErrorResponse "價格超過上限"
// @Failure     401 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products [post]
func CreateProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateProductRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: err.Error()})
		}
		if req.Price > maxPrice {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Price is too high even for Cyberpunk"})
		}

		product, err := createProduct(c.Request().Context(), db, &model.Product{
			Name:          req.Name,
			Description:   req.Description,
			Price:         req.Price,
			ImageURL:      req.ImageURL,
			StockQuantity: req.StockQuantity,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusCreated, toResponse(product))
	}
}

// UpdateProductHandler 全量更新商品（需通過認證）
// @Summary     Update a product by ID
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       product_id path int true "商品 ID"
// @Param       body body api.CreateProductRequest true "商品資料"
// @Success     200 {object} api.ProductResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products/{product_id} [put]
func UpdateProductHandler(db database.DB, cch cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "invalid product ID"})
		}

		var req api.CreateProductRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: err.Error()})
		}

		product, err := getProductByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Product not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		product.Name = req.Name
		product.Description = req.Description
		product.Price = req.Price
		product.ImageURL = req.ImageURL
		product.StockQuantity = req.StockQuantity

		if err := updateProduct(c.Request().Context(), db, product); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		invalidateAsync(wp, cch, id)
		return c.JSON(http.StatusOK, toResponse(product))
	}
}

// DeleteProductHandler 刪除商品（需通過認證）
// @Summary     Delete a product by ID
// @Tags        products
// @Param       product_id path int true "商品 ID"
// @Success     204 "No Content"
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products/{product_id} [delete]
func DeleteProductHandler(db database.DB, cch cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "invalid product ID"})
		}

		if _, err := getProductByID(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Product not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		if err := deleteProduct(c.Request().Context(), db, id); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		invalidateAsync(wp, cch, id)
		return c.NoContent(http.StatusNoContent)
	}
}
