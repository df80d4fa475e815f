// Package dedup keeps short-lived markers in redis: message ids already ingested
// by the sync job and per-account sync locks shared between API instances.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/salesflow/crm/pkg/logger"
)

// releaseScript deletes the lock only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

type RedisDeduper struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisDeduper(rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *RedisDeduper {
	return &RedisDeduper{rdb: rdb, ttl: ttl, logger: log}
}

func messageKey(accountID, messageID string) string {
	return fmt.Sprintf("dedup:msg:%s:%s", accountID, messageID)
}

func lockKey(accountID string) string {
	return "lock:sync:" + accountID
}

// Seen reports whether a message id was recorded as stored for an account.
// Redis errors fail open: the database lookup still decides.
func (d *RedisDeduper) Seen(ctx context.Context, accountID, messageID string) bool {
	n, err := d.rdb.Exists(ctx, messageKey(accountID, messageID)).Result()
	if err != nil {
		d.logger.WithField("error", err.Error()).Warn("Dedup check failed, treating message as new")
		return false
	}
	return n > 0
}

// MarkSeen records a message id once its row is stored.
func (d *RedisDeduper) MarkSeen(ctx context.Context, accountID, messageID string) {
	if err := d.rdb.Set(ctx, messageKey(accountID, messageID), 1, d.ttl).Err(); err != nil {
		d.logger.WithField("error", err.Error()).Warn("Failed to record dedup marker")
	}
}

// AcquireAccountLock takes the cross-instance sync lock for an account.
// The returned release func is a no-op when the lock was not acquired.
func (d *RedisDeduper) AcquireAccountLock(ctx context.Context, accountID string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := d.rdb.SetNX(ctx, lockKey(accountID), token, ttl).Result()
	if err != nil {
		return func() {}, false, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !ok {
		return func() {}, false, nil
	}

	release := func() {
		if err := releaseScript.Run(context.Background(), d.rdb, []string{lockKey(accountID)}, token).Err(); err != nil {
			d.logger.WithFields(map[string]interface{}{
				"account_id": accountID,
				"error":      err.Error(),
			}).Warn("Failed to release sync lock")
		}
	}
	return release, true, nil
}

// NoopDeduper is used when redis is not configured.
type NoopDeduper struct{}

func (NoopDeduper) Seen(context.Context, string, string) bool {
	return false
}

func (NoopDeduper) MarkSeen(context.Context, string, string) {}

func (NoopDeduper) AcquireAccountLock(context.Context, string, time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}
