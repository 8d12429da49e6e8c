// Package config reads service configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	portEnv           = "PORT"
	redisURLEnv       = "REDIS_URL"
	cacheTTLEnv       = "CACHE_TTL_MINUTES"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv   = "TELEGRAM_CHAT_ID"
	corsOriginsEnv    = "CORS_ORIGINS"
	sourcesConfigEnv  = "SOURCES_CONFIG"
	defaultPort       = "8080"
	defaultCacheTTL   = 30 * time.Minute
)

// Config holds everything the server and tools need at startup.
type Config struct {
	Port           string
	RedisURL       string
	CacheTTL       time.Duration
	TelegramToken  string
	TelegramChatID string
	CORSOrigins    []string
	SourcesPath    string
}

// Load reads the environment and applies defaults. Missing optional values
// (Redis, Telegram) leave their features disabled rather than failing.
func Load() Config {
	cfg := Config{
		Port:           envOr(portEnv, defaultPort),
		RedisURL:       os.Getenv(redisURLEnv),
		CacheTTL:       defaultCacheTTL,
		TelegramToken:  os.Getenv(telegramTokenEnv),
		TelegramChatID: os.Getenv(telegramChatEnv),
		SourcesPath:    os.Getenv(sourcesConfigEnv),
	}

	if v := os.Getenv(cacheTTLEnv); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			cfg.CacheTTL = time.Duration(minutes) * time.Minute
		} else {
			log.Printf("config: invalid %s=%q, keeping default %s", cacheTTLEnv, v, defaultCacheTTL)
		}
	}

	if v := os.Getenv(corsOriginsEnv); v != "" {
		for _, origin := range strings.Split(v, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
