package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RedisPickStore keeps each sale's picking session in a hash that expires
// after ttl without activity.
type RedisPickStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPickStore(client *redis.Client, ttl time.Duration) *RedisPickStore {
	return &RedisPickStore{client: client, ttl: ttl}
}

func key(merchantID, saleID string) string {
	return fmt.Sprintf("picking:%s:%s", merchantID, saleID)
}

func (s *RedisPickStore) Get(ctx context.Context, merchantID, saleID string) (map[string]decimal.Decimal, error) {
	raw, err := s.client.HGetAll(ctx, key(merchantID, saleID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "read picking session")
	}
	out := make(map[string]decimal.Decimal, len(raw))
	for line, v := range raw {
		qty, err := decimal.NewFromString(v)
		if err != nil {
			continue
		}
		out[line] = qty
	}
	return out, nil
}

func (s *RedisPickStore) Set(ctx context.Context, merchantID, saleID, lineKey string, qty decimal.Decimal) error {
	k := key(merchantID, saleID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, lineKey, qty.String())
		if s.ttl > 0 {
			pipe.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	return errors.Wrap(err, "write picking session")
}

func (s *RedisPickStore) Clear(ctx context.Context, merchantID, saleID string) error {
	return errors.Wrap(s.client.Del(ctx, key(merchantID, saleID)).Err(), "clear picking session")
}
