package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisWriter persists each match row as a JSON value under a
// "{prefix}{match_id}:{position}" key, following the donor's
// prefix-plus-TTL cache-key convention.
type RedisWriter struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration
}

// NewRedisWriter parses redisURL, pings the server, and returns a ready
// RedisWriter. ttl of zero means rows never expire.
func NewRedisWriter(redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisWriter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("sink: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("sink: connect to redis: %w", err)
	}

	return &RedisWriter{client: client, logger: logger, prefix: "dedup:match:", ttl: ttl}, nil
}

// Write stores each row as JSON, logging but not failing the whole batch
// on a single row's error — a match export is best-effort diagnostics,
// not the pipeline's system of record.
func (rw *RedisWriter) Write(ctx context.Context, rows []Row) error {
	var firstErr error
	for _, r := range rows {
		key := fmt.Sprintf("%s%s:%s", rw.prefix, r.MatchID, r.Position)
		payload, err := json.Marshal(r)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := rw.client.Set(ctx, key, payload, rw.ttl).Err(); err != nil {
			rw.logger.Warn("sink: redis write failed", zap.String("key", key), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close closes the underlying Redis client connection.
func (rw *RedisWriter) Close() error {
	return rw.client.Close()
}
