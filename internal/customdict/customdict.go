package customdict

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces the Redis keys of the custom dictionary.
const DefaultPrefix = "custom_dict"

// CustomDict wraps a Redis client to persist the user's added and removed
// words across restarts. Each set lives under its own key.
type CustomDict struct {
	client     redis.UniversalClient
	addedKey   string
	removedKey string
}

// Snapshot is the persisted state: every word ever added and every word
// currently removed.
type Snapshot struct {
	Added   []string
	Removed []string
}

// New creates a new CustomDict with the provided Redis client and the
// default key prefix.
func New(client redis.UniversalClient) *CustomDict {
	return NewWithPrefix(client, DefaultPrefix)
}

// NewWithPrefix is New with keys "<prefix>:added" and "<prefix>:removed".
func NewWithPrefix(client redis.UniversalClient, prefix string) *CustomDict {
	return &CustomDict{
		client:     client,
		addedKey:   prefix + ":added",
		removedKey: prefix + ":removed",
	}
}

// Add records word as accepted and lifts any earlier removal.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	_, err := cd.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, cd.addedKey, word)
		pipe.SRem(ctx, cd.removedKey, word)
		return nil
	})
	if err != nil {
		return fmt.Errorf("customdict add %q: %w", word, err)
	}
	return nil
}

// Remove records word as rejected. It stays in the added set.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	if err := cd.client.SAdd(ctx, cd.removedKey, word).Err(); err != nil {
		return fmt.Errorf("customdict remove %q: %w", word, err)
	}
	return nil
}

// All returns both word sets.
func (cd *CustomDict) All(ctx context.Context) (Snapshot, error) {
	var added, removed *redis.StringSliceCmd
	_, err := cd.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		added = pipe.SMembers(ctx, cd.addedKey)
		removed = pipe.SMembers(ctx, cd.removedKey)
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("customdict load: %w", err)
	}
	return Snapshot{Added: added.Val(), Removed: removed.Val()}, nil
}

// Clear deletes both sets.
func (cd *CustomDict) Clear(ctx context.Context) error {
	if err := cd.client.Del(ctx, cd.addedKey, cd.removedKey).Err(); err != nil {
		return fmt.Errorf("customdict clear: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (cd *CustomDict) Ping(ctx context.Context) error {
	return cd.client.Ping(ctx).Err()
}
