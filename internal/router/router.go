// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"cyber-shop/internal/cache"
	"cyber-shop/internal/database"
	"cyber-shop/internal/handler"
	"cyber-shop/internal/handler/auth"
	"cyber-shop/internal/handler/products"
	"cyber-shop/internal/middleware"
	"cyber-shop/internal/service"
	"cyber-shop/internal/worker"
)

// Setup 註冊所有路由與中介層
// 讀取類路由開放匿名存取，商品的寫入操作一律掛 RequireAuth
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, ts *service.TokenService, wp worker.Pool) {
	requireAuth := middleware.RequireAuth(ts, db)

	// 系統狀態
	e.GET("/", handler.RootHandler())
	e.GET("/ping", handler.PingHandler(db, cch))

	// 註冊與登入
	e.POST("/auth/register", auth.RegisterHandler(db))
	e.POST("/auth/login", auth.LoginHandler(db, ts))

	// 商品目錄
	apiProducts := e.Group("/products")
	apiProducts.GET("", products.ListProductsHandler(db))
	apiProducts.GET("/:product_id", products.GetProductHandler(db, cch, wp))
	apiProducts.POST("", products.CreateProductHandler(db), requireAuth)
	apiProducts.PUT("/:product_id", products.UpdateProductHandler(db, cch, wp), requireAuth)
	apiProducts.DELETE("/:product_id", products.DeleteProductHandler(db, cch, wp), requireAuth)
}
