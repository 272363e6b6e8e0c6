// File: internal/handler/auth/register.go
package auth

import (
	"errors"
	"net/http"

	"cyber-shop/internal/api"
	"cyber-shop/internal/database"
	"cyber-shop/internal/model"
	"cyber-shop/internal/service"
	"cyber-shop/internal/store"

	"github.com/labstack/echo/v4"
)

// 測試替換點
var (
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	createUser       = store.CreateUser
	getUserByEmail   = store.GetUserByEmail
)

// RegisterHandler 註冊新使用者
// @Summary     Register a new user
// @Description 建立帳號並回傳公開的使用者資訊，不含密碼哈希
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body api.RegisterRequest true "email 與 password"
// @Success     201 {object} api.UserResponse
// @Failure     409 {object} api.ErrorResponse "email 已被註冊"
// @Failure     422 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: err.Error()})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Email:        req.Email,
			PasswordHash: hash,
			IsActive:     true,
		})
		if err != nil {
			if errors.Is(err, store.ErrEmailTaken) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "email already registered"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusCreated, api.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			IsActive: user.IsActive,
		})
	}
}
