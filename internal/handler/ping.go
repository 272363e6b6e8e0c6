// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"cyber-shop/internal/api"
	"cyber-shop/internal/cache"
	"cyber-shop/internal/database"

	"github.com/labstack/echo/v4"
)

// RootResponse 服務狀態回應模型
// swagger:model RootResponse
type RootResponse struct {
	Message string `json:"message" example:"Welcome to CyberShop API"`
	Status  string `json:"status" example:"active"`
}

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// RootHandler 服務首頁
// @Summary     Service status
// @Tags        system
// @Produce     json
// @Success     200 {object} RootResponse
// @Router      / [get]
func RootHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, RootResponse{Message: "Welcome to CyberShop API", Status: "active"})
	}
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與快取連線是否正常
// @Tags        system
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		if err := cch.Set(ctx, "ping:healthcheck", "pong", time.Minute).Err(); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
