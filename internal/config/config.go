package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the gateway configuration.
type Config struct {
	Port           string
	UpstreamURL    string        // Content API base URL; empty disables catalog sync
	DBPath         string        // SQLite catalog cache
	PlayerOrigin   string        // trusted origin of the embedded player
	SyncInterval   time.Duration // catalog mirror interval
	AllowedOrigins []string      // CORS allow-list for the front end
	PageSize       int
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		UpstreamURL:  strings.TrimSuffix(os.Getenv("CONTENT_API_URL"), "/"),
		DBPath:       getEnv("DB_PATH", "./insightium.db"),
		PlayerOrigin: getEnv("PLAYER_ORIGIN", "https://www.youtube.com"),
	}

	intervalStr := getEnv("SYNC_INTERVAL", "5m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL %q: %v", intervalStr, err)
	}
	cfg.SyncInterval = interval

	pageSizeStr := getEnv("PAGE_SIZE", "12")
	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 {
		return nil, fmt.Errorf("invalid PAGE_SIZE %q", pageSizeStr)
	}
	cfg.PageSize = pageSize

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
