package middleware

import (
	"net/http"
	"strings"

	"cyber-shop/internal/database"
	"cyber-shop/internal/model"
	"cyber-shop/internal/service"
	"cyber-shop/internal/store"

	"github.com/labstack/echo/v4"
)

// ContextUserKey 存放通過驗證後解析出的 *model.User
const ContextUserKey = "user"

// 測試替換點
var getUserByEmail = store.GetUserByEmail

// 所有驗證失敗一律回傳相同的 401，不洩漏失敗原因
func unauthorized() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
}

func extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", unauthorized()
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", unauthorized()
	}
	return parts[1], nil
}

// RequireAuth 驗證 Bearer token 並以 sub(email) 撈出使用者放入 context
// token 偽造、過期、使用者已刪除，對呼叫端皆為同一個 401
func RequireAuth(ts *service.TokenService, db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := extractToken(c)
			if err != nil {
				return err
			}
			claims, err := ts.VerifyAccessToken(tokenString)
			if err != nil {
				return unauthorized()
			}
			user, err := getUserByEmail(c.Request().Context(), db, claims.Subject)
			if err != nil {
				return unauthorized()
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser 取出 RequireAuth 放入的使用者，僅限掛在其後的 handler 使用
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}
