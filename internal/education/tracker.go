package education

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/vitavoice/platform/internal/shared/types"
)

// ReadTracker remembers which topics each user has read.
type ReadTracker interface {
	MarkRead(ctx context.Context, userID types.ID, topicID string) error
	ReadTopics(ctx context.Context, userID types.ID) ([]string, error)
}

// MemoryTracker keeps read topics in process memory.
type MemoryTracker struct {
	mu   sync.Mutex
	read map[types.ID]map[string]bool
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{read: make(map[types.ID]map[string]bool)}
}

func (m *MemoryTracker) MarkRead(_ context.Context, userID types.ID, topicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.read[userID] == nil {
		m.read[userID] = make(map[string]bool)
	}
	m.read[userID][topicID] = true
	return nil
}

func (m *MemoryTracker) ReadTopics(_ context.Context, userID types.ID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.read[userID]))
	for id := range m.read[userID] {
		out = append(out, id)
	}
	slices.Sort(out)
	return out, nil
}

// RedisTracker keeps one Redis set of topic IDs per user.
type RedisTracker struct {
	client *redis.Client
	prefix string
}

func NewRedisTracker(client *redis.Client) *RedisTracker {
	return &RedisTracker{client: client, prefix: "vitavoice:education:read:"}
}

func (r *RedisTracker) key(userID types.ID) string {
	return r.prefix + userID.String()
}

func (r *RedisTracker) MarkRead(ctx context.Context, userID types.ID, topicID string) error {
	if err := r.client.SAdd(ctx, r.key(userID), topicID).Err(); err != nil {
		return fmt.Errorf("failed to mark topic read: %w", err)
	}
	return nil
}

func (r *RedisTracker) ReadTopics(ctx context.Context, userID types.ID) ([]string, error) {
	ids, err := r.client.SMembers(ctx, r.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load read topics: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}
