package app

import (
	"time"

	"github.com/openmysteries/backend/internal/cache"
	"github.com/openmysteries/backend/internal/platform/envutil"
)

type Config struct {
	Port         string
	CacheVersion string
	LockTTL      time.Duration
	PollInterval time.Duration
	PollAttempts int
}

func LoadConfig() Config {
	return Config{
		Port:         envutil.String("PORT", "8080"),
		CacheVersion: envutil.String("CACHE_VERSION", cache.Version),
		LockTTL:      envutil.Seconds("GENERATION_LOCK_TTL", 60*time.Second),
		PollInterval: envutil.Seconds("GENERATION_POLL_INTERVAL", time.Second),
		PollAttempts: envutil.Int("GENERATION_POLL_ATTEMPTS", 12),
	}
}
