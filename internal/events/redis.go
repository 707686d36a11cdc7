package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisSink struct {
	client *redis.Client
	key    string
}

func newRedisSink(cfg *Config) *redisSink {
	return &redisSink{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}),
		key: cfg.Redis.Key,
	}
}

// deliver pushes the JSON-encoded event onto the head of the configured list.
func (s *redisSink) deliver(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	if err := s.client.LPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("redis lpush %s: %w", s.key, err)
	}
	return nil
}

func (s *redisSink) check(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (s *redisSink) close() error {
	return s.client.Close()
}
