// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 啟動時一次載入的環境設定
// JWTSecret 載入後不再變動，於建構 TokenService 時注入
type Config struct {
	Port          string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	TokenTTL      time.Duration
	WorkerCount   int
}

// Load 讀取環境變數，缺少必要設定時回傳錯誤（啟動即失敗，不留到請求期）
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}

	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("無效的 REDIS_DB: %v", err)
	}
	cfg.RedisDB = redisDB

	ttlMin, err := getEnvAsInt("TOKEN_TTL_MINUTES", 30)
	if err != nil || ttlMin <= 0 {
		return nil, fmt.Errorf("無效的 TOKEN_TTL_MINUTES: %q", os.Getenv("TOKEN_TTL_MINUTES"))
	}
	cfg.TokenTTL = time.Duration(ttlMin) * time.Minute

	workers, err := getEnvAsInt("WORKER_COUNT", 1)
	if err != nil || workers <= 0 {
		return nil, fmt.Errorf("無效的 WORKER_COUNT: %q", os.Getenv("WORKER_COUNT"))
	}
	cfg.WorkerCount = workers

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}
