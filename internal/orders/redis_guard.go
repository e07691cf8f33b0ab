package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const inflightKeyPrefix = "inflight:order:"

var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// RedisGuard shares the in-flight set between console replicas. The TTL
// bounds how long a crashed holder can block an order.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
	owner  string
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{
		client: client,
		ttl:    ttl,
		owner:  uuid.NewString(),
	}
}

func (g *RedisGuard) TryAcquire(ctx context.Context, orderID string) (bool, error) {
	return g.client.SetNX(ctx, inflightKeyPrefix+orderID, g.owner, g.ttl).Result()
}

// Release only deletes keys this guard set, so a lock that expired and was
// taken by another replica stays intact.
func (g *RedisGuard) Release(ctx context.Context, orderID string) error {
	return releaseScript.Run(ctx, g.client, []string{inflightKeyPrefix + orderID}, g.owner).Err()
}
