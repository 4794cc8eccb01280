package codes

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "authcode:"

// compare-and-delete; a mismatch must not consume the code
var verifyScript = goredis.NewScript(`
	local stored = redis.call('GET', KEYS[1])
	if stored == false then
		return 0
	end
	if stored == ARGV[1] then
		redis.call('DEL', KEYS[1])
		return 1
	end
	return 0
`)

// RedisStore keeps codes in Redis with a TTL, giving the atomic
// delete-on-verify semantics a process-local map cannot provide across
// instances.
type RedisStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewRedisStore(client *goredis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Set(ctx context.Context, identity, code string) error {
	return s.client.Set(ctx, keyPrefix+identity, code, s.ttl).Err()
}

func (s *RedisStore) Verify(ctx context.Context, identity, code string) (bool, error) {
	res, err := verifyScript.Run(ctx, s.client, []string{keyPrefix + identity}, code).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}
