package cache

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"loanguard-backend/internal/domain/kv"
)

func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// RedisStore adapts a redis client to the advisory kv.Store contract. Redis
// errors are logged and reported as misses; callers recompute from the
// database.
type RedisStore struct{ rdb *redis.Client }

var _ kv.Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func (s *RedisStore) GetInt64(ctx context.Context, key string) (int64, bool) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: GET %s: %v", key, err)
		}
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("cache: non-numeric value at %s: %q", key, v)
		return 0, false
	}
	return n, true
}

func (s *RedisStore) SetInt64(ctx context.Context, key string, val int64, ttl time.Duration) {
	if err := s.rdb.Set(ctx, key, strconv.FormatInt(val, 10), ttl).Err(); err != nil {
		log.Printf("cache: SET %s: %v", key, err)
	}
}

func (s *RedisStore) GetBytes(ctx context.Context, key string) ([]byte, bool) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: GET %s: %v", key, err)
		}
		return nil, false
	}
	return b, true
}

func (s *RedisStore) SetBytes(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if err := s.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		log.Printf("cache: SET %s: %v", key, err)
	}
}

func (s *RedisStore) Delete(ctx context.Context, key string) {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		log.Printf("cache: DEL %s: %v", key, err)
	}
}
