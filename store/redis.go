package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

const datasetKeyPrefix = "health-metrics:dataset:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient - connect to redis and check the connection
func NewRedisClient(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}

// NewRedisStore - return a session store kept in redis. Sessions expire
// through the redis key ttl.
func NewRedisStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisStore{
		client: client,
		ttl:    ttl,
	}
}

func datasetKey(id string) string {
	return datasetKeyPrefix + id
}

func (r *redisStore) Save(ctx context.Context, d *schema.Dataset) (string, error) {
	data, err := EncodeDataset(d)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	if err := r.client.Set(ctx, datasetKey(id), data, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("save dataset %s: %w", id, err)
	}

	return id, nil
}

func (r *redisStore) Get(ctx context.Context, id string) (*schema.Dataset, error) {
	data, err := r.client.Get(ctx, datasetKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDatasetNotFound
		}
		return nil, fmt.Errorf("get dataset %s: %w", id, err)
	}

	return DecodeDataset(data)
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, datasetKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete dataset %s: %w", id, err)
	}
	if n == 0 {
		return ErrDatasetNotFound
	}
	return nil
}

func (r *redisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisStore) Close() {
	log.WithField("prefix", storeLogPrefix).Info("closing redis connections")
	_ = r.client.Close()
}
