package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hirendodiya515/roller-management-system/internal/status"
)

// Derived-status cache keys
const (
	RollerStatusKeyFmt = "roller:status:%d"
	StatusTTL          = 5 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. The cache degrades gracefully: when
// Redis is unreachable every lookup is a miss.
func Init() error {
	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client = nil
		return fmt.Errorf("redis ping failed: %w", err)
	}
	log.Printf("[Redis] Connected to %s:%s", host, port)
	return nil
}

// GetRollerStatus returns a cached derived status for the roller, if present.
func GetRollerStatus(ctx context.Context, rollerID int) (status.Derived, bool) {
	if client == nil {
		return status.Derived{}, false
	}
	raw, err := client.Get(ctx, fmt.Sprintf(RollerStatusKeyFmt, rollerID)).Bytes()
	if err != nil {
		return status.Derived{}, false
	}
	var d status.Derived
	if err := json.Unmarshal(raw, &d); err != nil {
		return status.Derived{}, false
	}
	return d, true
}

// SetRollerStatus caches a derived status for the roller.
func SetRollerStatus(ctx context.Context, rollerID int, d status.Derived) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := client.Set(ctx, fmt.Sprintf(RollerStatusKeyFmt, rollerID), raw, StatusTTL).Err(); err != nil {
		log.Printf("[Redis] Failed to cache status for roller %d: %v", rollerID, err)
	}
}

// InvalidateRollerStatus drops the cached status after a record changes.
func InvalidateRollerStatus(ctx context.Context, rollerID int) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(RollerStatusKeyFmt, rollerID))
}
