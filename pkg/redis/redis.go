package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func Connect(ctx context.Context, config Config, log *zap.SugaredLogger) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     20,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
		IdleTimeout:  5 * time.Minute,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	version := ""
	if stats, err := GetStats(pingCtx, client); err == nil {
		version = stats["redis_version"]
	}
	log.Infow("redis connected", "addr", addr, "version", version)

	return client, nil
}

var statsKeys = map[string]struct{}{
	"redis_version":              {},
	"connected_clients":          {},
	"used_memory_human":          {},
	"total_commands_processed":   {},
	"keyspace_hits":              {},
	"keyspace_misses":            {},
	"uptime_in_seconds":          {},
	"total_connections_received": {},
}

// GetStats returns a subset of INFO fields.
func GetStats(ctx context.Context, client *redis.Client) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	info, err := client.Info(ctx).Result()
	if err != nil {
		return nil, err
	}
	return ParseInfo(info), nil
}

func ParseInfo(info string) map[string]string {
	stats := make(map[string]string)
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if _, ok := statsKeys[key]; ok {
			stats[key] = value
		}
	}
	return stats
}
