// File: internal/service/token.go
package service

import (
	"errors"
	"fmt"
	"time"

	"cyber-shop/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType 回應中的 token 類型識別字
const TokenType = "bearer"

// CustomClaims 定義 JWT 負載內容，sub 為使用者 email
type CustomClaims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// 測試替換點
var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// TokenService 簽發與驗證存取令牌
// secret 與 ttl 於啟動時注入，執行期間不再變動
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// IssueAccessToken 依據使用者資訊產生 HS256 JWT
func (s *TokenService) IssueAccessToken(user model.User) (string, error) {
	now := timeNow()
	claims := CustomClaims{
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyAccessToken 驗證並解析 JWT 令牌
// 簽章、效期或 sub 任一不合法都回傳錯誤，不部分信任未驗證的負載
func (s *TokenService) VerifyAccessToken(tokenString string) (*CustomClaims, error) {
	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	// sub 為必要宣告，缺少時視為無效而非匿名
	if claims.Subject == "" {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
