// Package chatsync publishes user identity updates to the chat subsystem.
//
// The chat layer keeps its own copy of display names and avatars. Whenever an
// account is created or its profile changes, the current identity is written
// to Redis and announced on a pub/sub channel so chat consumers can refresh.
// Sync failures are reported to the caller but must never fail the request
// that triggered them.
package chatsync

import (
	"context"
	"encoding/json"
	"fmt"

	"babel/internal/cache"

	"github.com/redis/go-redis/v9"
)

// Channel is the pub/sub channel identity updates are announced on.
const Channel = "chat:identity"

// Identity is the subset of a user profile the chat subsystem mirrors.
type Identity struct {
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Syncer pushes identity updates to the chat subsystem.
type Syncer interface {
	Upsert(ctx context.Context, id Identity) error
}

// RedisSyncer stores identities as Redis hashes and announces changes on the
// identity channel.
type RedisSyncer struct {
	client *redis.Client
}

// NewRedisSyncer creates a syncer backed by the given Redis client.
func NewRedisSyncer(client *redis.Client) *RedisSyncer {
	return &RedisSyncer{client: client}
}

func (s *RedisSyncer) Upsert(ctx context.Context, id Identity) error {
	key := cache.ChatIdentityKey(id.UserID)
	if err := s.client.HSet(ctx, key,
		"user_id", id.UserID,
		"name", id.Name,
		"avatar_url", id.AvatarURL,
	).Err(); err != nil {
		return fmt.Errorf("chat identity hset: %w", err)
	}

	payload, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("chat identity marshal: %w", err)
	}
	if err := s.client.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("chat identity publish: %w", err)
	}
	return nil
}

// NoopSyncer is used when Redis is unavailable.
type NoopSyncer struct{}

func (NoopSyncer) Upsert(context.Context, Identity) error { return nil }
