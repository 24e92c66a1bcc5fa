package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisPingTimeout bounds the startup reachability check so a missing
// cache fails fast instead of hanging process boot.
const redisPingTimeout = 5 * time.Second

// ConnectRedis opens the cache connection backing the dashboard counters.
// The DSN follows the redis:// scheme and the connection is verified with
// a bounded ping before it is handed out.
func ConnectRedis(url string) (*redis.Client, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unreachable at %s: %w", options.Addr, err)
	}

	return client, nil
}
