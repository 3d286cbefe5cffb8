// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ストアの種類
const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"
)

// Database はMySQL接続に必要な設定です。
type Database struct {
	User string
	Pass string
	Host string
	Port string
	Name string
}

// Config はアプリケーション全体の設定です。
type Config struct {
	Port        int
	FrontendURL string
	Store       string
	LogLevel    string
	GinMode     string
	DB          Database
}

// LoadEnvFile は .env ファイルがあれば読み込みます。ファイルが無い場合は false を返します。
func LoadEnvFile(filenames ...string) bool {
	return godotenv.Load(filenames...) == nil
}

// Load は環境変数から Config を構築して検証します。
func Load() (*Config, error) {
	cfg := &Config{
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		Store:       strings.ToLower(getEnv("TODO_STORE", StoreMemory)),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		GinMode:     os.Getenv("GIN_MODE"),
		DB: Database{
			User: os.Getenv("DB_USER"),
			Pass: os.Getenv("DB_PASS"),
			Host: getEnv("DB_HOST", "127.0.0.1"),
			Port: getEnv("DB_PORT", "3306"),
			Name: os.Getenv("DB_NAME"),
		},
	}

	port, err := strconv.Atoi(getEnv("PORT", "3000"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	switch cfg.GinMode {
	case "", "debug", "release", "test":
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q", cfg.GinMode)
	}

	switch cfg.Store {
	case StoreMemory:
	case StoreMySQL:
		if cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, fmt.Errorf("DB_USER and DB_NAME are required when TODO_STORE=%s", StoreMySQL)
		}
	default:
		return nil, fmt.Errorf("unknown TODO_STORE %q (want %q or %q)", cfg.Store, StoreMemory, StoreMySQL)
	}

	return cfg, nil
}

// Addr はサーバーのリッスンアドレスを返します。
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
