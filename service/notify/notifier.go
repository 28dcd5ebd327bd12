// Package notify delivers workflow notifications to users.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"procure.GO/model/entity"
)

type Notifier interface {
	Notify(ctx context.Context, n entity.Notification) error
}

// DefaultFeedKey prefixes the per-user Redis lists.
const DefaultFeedKey = "procure:notifications"

// DefaultFeedLength is how many notifications a user feed keeps.
const DefaultFeedLength = 100

// New returns a Redis-backed notifier, or a log notifier when client is nil.
func New(client *redis.Client, feedKey string) Notifier {
	if client == nil {
		return NewLogNotifier(nil)
	}
	return NewRedisNotifier(client, feedKey, DefaultFeedLength)
}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(l *log.Logger) *LogNotifier {
	if l == nil {
		l = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) Notify(_ context.Context, msg entity.Notification) error {
	n.logger.Printf("notify %s [%s] %s: %s (%s %s)", msg.UserID, msg.Type, msg.Title, msg.Message, msg.RelatedEntityType, msg.RelatedEntityID)
	return nil
}

// RedisNotifier keeps a capped list of JSON notifications per user, newest first.
type RedisNotifier struct {
	client *redis.Client
	key    string
	max    int64
}

func NewRedisNotifier(client *redis.Client, feedKey string, max int64) *RedisNotifier {
	if feedKey == "" {
		feedKey = DefaultFeedKey
	}
	if max <= 0 {
		max = DefaultFeedLength
	}
	return &RedisNotifier{client: client, key: feedKey, max: max}
}

func (n *RedisNotifier) feed(userID string) string {
	return n.key + ":" + userID
}

func (n *RedisNotifier) Notify(ctx context.Context, msg entity.Notification) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	key := n.feed(msg.UserID)
	pipe := n.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, n.max-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push notification to %s: %w", key, err)
	}
	return nil
}

// Recent returns up to limit notifications for userID, newest first.
func (n *RedisNotifier) Recent(ctx context.Context, userID string, limit int64) ([]entity.Notification, error) {
	if limit <= 0 || limit > n.max {
		limit = n.max
	}
	raw, err := n.client.LRange(ctx, n.feed(userID), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read notifications: %w", err)
	}
	out := make([]entity.Notification, 0, len(raw))
	for _, r := range raw {
		var msg entity.Notification
		if err := json.Unmarshal([]byte(r), &msg); err != nil {
			log.Printf("notify: skipping malformed entry in %s: %v", n.feed(userID), err)
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

// Clear drops the feed of userID.
func (n *RedisNotifier) Clear(ctx context.Context, userID string) error {
	return n.client.Del(ctx, n.feed(userID)).Err()
}
