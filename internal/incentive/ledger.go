package incentive

import (
	"context"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// Ledger accumulates earned loyalty points. One process-wide running total,
// safe for concurrent writers.
type Ledger interface {
	Credit(ctx context.Context, points int) (total int64, err error)
	Total(ctx context.Context) (int64, error)
}

// MemoryLedger is the default single-process ledger.
type MemoryLedger struct {
	total atomic.Int64
}

func NewMemoryLedger() *MemoryLedger { return &MemoryLedger{} }

func (l *MemoryLedger) Credit(_ context.Context, points int) (int64, error) {
	return l.total.Add(int64(points)), nil
}

func (l *MemoryLedger) Total(_ context.Context) (int64, error) {
	return l.total.Load(), nil
}

// RedisLedger keeps the running total in Redis so it survives restarts and
// is visible to other display processes.
type RedisLedger struct {
	client *redis.Client
	key    string
}

func NewRedisLedger(addr, password, key string) *RedisLedger {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &RedisLedger{client: c, key: key}
}

func (l *RedisLedger) Credit(ctx context.Context, points int) (int64, error) {
	return l.client.IncrBy(ctx, l.key, int64(points)).Result()
}

func (l *RedisLedger) Total(ctx context.Context) (int64, error) {
	v, err := l.client.Get(ctx, l.key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

func (l *RedisLedger) Close() error { return l.client.Close() }
