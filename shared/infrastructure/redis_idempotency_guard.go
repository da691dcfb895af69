package infrastructure

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/draftea/order-saga/shared/saga"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var (
	_ saga.IdempotencyGuard = (*RedisIdempotencyGuard)(nil)
	_ saga.IdempotencyGuard = (*MemoryIdempotencyGuard)(nil)
)

const defaultClaimTTL = 24 * time.Hour

// RedisIdempotencyGuard claims (orderID, transactionID) pairs with SETNX so
// concurrent instances of a participant process each pair once.
type RedisIdempotencyGuard struct {
	client      redis.UniversalClient
	serviceName string
	ttl         time.Duration
}

func NewRedisIdempotencyGuard(client redis.UniversalClient, serviceName string, ttl time.Duration) *RedisIdempotencyGuard {
	if ttl <= 0 {
		ttl = defaultClaimTTL
	}
	return &RedisIdempotencyGuard{
		client:      client,
		serviceName: serviceName,
		ttl:         ttl,
	}
}

func (g *RedisIdempotencyGuard) Claim(ctx context.Context, orderID, transactionID string) (bool, error) {
	claimed, err := g.client.SetNX(ctx, g.GenerateKey(orderID, transactionID), time.Now().UTC().Format(time.RFC3339Nano), g.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to claim transaction in redis")
	}
	return claimed, nil
}

// GenerateKey returns service:idempotency:orderID:transactionID
func (g *RedisIdempotencyGuard) GenerateKey(orderID, transactionID string) string {
	return fmt.Sprintf("%s:idempotency:%s:%s", g.serviceName, orderID, transactionID)
}

// NewRedisClient connects to addr and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "failed to connect to redis")
	}

	return client, nil
}

// MemoryIdempotencyGuard is the single-process claim used in local mode and tests
type MemoryIdempotencyGuard struct {
	mu     sync.Mutex
	claims map[string]struct{}
}

func NewMemoryIdempotencyGuard() *MemoryIdempotencyGuard {
	return &MemoryIdempotencyGuard{claims: make(map[string]struct{})}
}

func (g *MemoryIdempotencyGuard) Claim(_ context.Context, orderID, transactionID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := orderID + ":" + transactionID
	if _, ok := g.claims[key]; ok {
		return false, nil
	}
	g.claims[key] = struct{}{}
	return true, nil
}
