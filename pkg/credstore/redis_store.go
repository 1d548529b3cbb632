package credstore

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for the Redis-backed store, used by
// kiosk fleets where several dashboard processes share one session.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	Key            string        `env:"CREDSTORE_REDIS_KEY" envDefault:"transitkit:credentials"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

var (
	// ErrInvalidRedisURL indicates the connection URL could not be parsed.
	ErrInvalidRedisURL = errors.New("credstore.invalid_redis_url")

	// ErrRedisNotReady indicates all connection attempts failed.
	ErrRedisNotReady = errors.New("credstore.redis_not_ready")
)

// ConnectRedis establishes a Redis connection, retrying per the config.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidRedisURL, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// RedisStore persists credentials in a Redis hash under a single key. The
// hash is written with one HSET per save, so concurrent writers still
// resolve to a complete last-written cell.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a store over an existing client.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "transitkit:credentials"
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (Credentials, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return Credentials{}, err
	}

	token, ok := fields["accessToken"]
	if !ok || token == "" {
		return Credentials{}, ErrNotFound
	}

	creds := Credentials{AccessToken: token}
	if raw, ok := fields["userId"]; ok && raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			creds.UserID = &id
		}
	}
	return creds, nil
}

func (s *RedisStore) Save(ctx context.Context, creds Credentials) error {
	fields := map[string]any{"accessToken": creds.AccessToken}
	if creds.UserID != nil {
		fields["userId"] = *creds.UserID
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key)
	pipe.HSet(ctx, s.key, fields)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrPersistFailed, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
