package cache

//go:generate mockgen -source=bundle_cache.go -destination=../mocks/bundle_cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"symphony/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// BundleCache is a short-lived read-through cache of assembled dashboard bundles.
//
// Every Invalidate bumps a per-project version. A reader takes Version before
// loading from the store and passes it to Set; Set drops the write when the
// version moved in between, so a bundle read before a refresh is never stored
// after it.
type BundleCache interface {
	Get(ctx context.Context, projectID uuid.UUID) (*models.DashboardBundle, bool, error)
	Version(ctx context.Context, projectID uuid.UUID) (int64, error)
	Set(ctx context.Context, bundle *models.DashboardBundle, version int64) error
	Invalidate(ctx context.Context, projectID uuid.UUID) error
}

const (
	keyPrefix     = "dashboard:"
	versionSuffix = ":version"
)

func Key(projectID uuid.UUID) string {
	return keyPrefix + projectID.String()
}

// VersionKey holds the invalidation counter. It has no expiry.
func VersionKey(projectID uuid.UUID) string {
	return Key(projectID) + versionSuffix
}

type redisBundleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBundleCache(client *redis.Client, ttl time.Duration) BundleCache {
	return &redisBundleCache{client: client, ttl: ttl}
}

func (c *redisBundleCache) Get(ctx context.Context, projectID uuid.UUID) (*models.DashboardBundle, bool, error) {
	val, err := c.client.Get(ctx, Key(projectID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var bundle models.DashboardBundle
	if err := json.Unmarshal(val, &bundle); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal bundle: %w", err)
	}
	return &bundle, true, nil
}

func (c *redisBundleCache) Version(ctx context.Context, projectID uuid.UUID) (int64, error) {
	return readVersion(ctx, c.client, projectID)
}

// Set stores the bundle unless the project was invalidated after version was read.
func (c *redisBundleCache) Set(ctx context.Context, bundle *models.DashboardBundle, version int64) error {
	if c.ttl <= 0 {
		return nil
	}
	jsonData, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}

	versionKey := VersionKey(bundle.ProjectID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, bundle.ProjectID)
		if err != nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, Key(bundle.ProjectID), jsonData, c.ttl)
			return nil
		})
		return err
	}, versionKey)
	if errors.Is(err, redis.TxFailedErr) {
		// invalidated while writing
		return nil
	}
	return err
}

func (c *redisBundleCache) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, VersionKey(projectID))
		pipe.Del(ctx, Key(projectID))
		return nil
	})
	return err
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, cmd stringGetter, projectID uuid.UUID) (int64, error) {
	version, err := cmd.Get(ctx, VersionKey(projectID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

type noopBundleCache struct{}

// NewNoopBundleCache returns a cache that never hits. Used when redis is disabled.
func NewNoopBundleCache() BundleCache {
	return noopBundleCache{}
}

func (noopBundleCache) Get(context.Context, uuid.UUID) (*models.DashboardBundle, bool, error) {
	return nil, false, nil
}

func (noopBundleCache) Version(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func (noopBundleCache) Set(context.Context, *models.DashboardBundle, int64) error { return nil }

func (noopBundleCache) Invalidate(context.Context, uuid.UUID) error { return nil }
