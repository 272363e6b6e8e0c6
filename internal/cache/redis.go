// File: internal/cache/redis.go
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// 商品快取位在請求路徑上，連線逾時上限 3 秒
const dialTimeout = 3 * time.Second

// redisClient 收斂 NewRedisClient 所需的方法集合，測試以 stub 取代真連線
type redisClient interface {
	Cache
	Ping(ctx context.Context) *redis.StatusCmd
}

// 測試替換點
var redisNewClient = func(opt *redis.Options) redisClient {
	return redis.NewClient(opt)
}

// NewRedisClient 建立商品快取用的 Redis 連線，啟動時以 Ping 驗證可用性
// password 可為空字串；db 為資料庫編號
func NewRedisClient(addr, password string, db int) (Cache, error) {
	client := redisNewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: dialTimeout,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
