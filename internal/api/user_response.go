// File: internal/api/user_response.go
package api

// UserResponse 對外的使用者資訊，不含密碼哈希
// swagger:model api.UserResponse
type UserResponse struct {
	ID       int    `json:"id" example:"1"`
	Email    string `json:"email" example:"a@x.com"`
	IsActive bool   `json:"is_active" example:"true"`
}
