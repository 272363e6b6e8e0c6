// File: internal/api/login_request.go
package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `form:"email" validate:"required" example:"a@x.com"`
	Password string `form:"password" validate:"required" example:"secret123"`
}
