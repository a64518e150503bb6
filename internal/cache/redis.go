package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/openmysteries/backend/internal/article"
	"github.com/openmysteries/backend/internal/pkg/logger"
	"github.com/openmysteries/backend/internal/platform/envutil"
)

type redisStore struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewRedisStore connects to Redis using REDIS_ADDR (required), REDIS_PASSWORD
// and REDIS_DB, and verifies the connection with a ping.
func NewRedisStore(log *logger.Logger) (Store, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(envutil.String("REDIS_ADDR", ""))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    envutil.String("REDIS_PASSWORD", ""),
		DB:          envutil.Int("REDIS_DB", 0),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisStore{
		log: log.With("service", "RedisArticleStore"),
		rdb: rdb,
	}, nil
}

func (s *redisStore) GetDocument(ctx context.Context, key string) (article.Document, bool, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return article.Document{}, false, nil
	}
	if err != nil {
		return article.Document{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var doc article.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		// A corrupt entry behaves like a miss so the pipeline can regenerate.
		s.log.Warn("cached document failed to decode, treating as miss", "key", key, "error", err.Error())
		return article.Document{}, false, nil
	}
	return doc.EnsureDefaults(), true, nil
}

func (s *redisStore) SetDocument(ctx context.Context, key string, doc article.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return ok, nil
}

func (s *redisStore) ReleaseLock(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
