package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vitavoice/platform/internal/shared/types"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	conv := &Conversation{ID: types.NewID(), Stage: StageInitial, History: []Turn{{Role: RoleModel, Text: "hi"}}}

	if err := store.Save(ctx, conv); err != nil {
		t.Fatalf("Expected save, got %v", err)
	}

	conv.Stage = StageComplete
	got, err := store.Get(ctx, conv.ID)
	if err != nil {
		t.Fatalf("Expected conversation, got %v", err)
	}
	if got.Stage != StageInitial {
		t.Errorf("Expected stored copy to be unaffected, got %s", got.Stage)
	}
	if got.Answers == nil {
		t.Error("Expected answers map to be initialised")
	}

	got.History = append(got.History, Turn{Role: RoleUser, Text: "fever"})
	again, _ := store.Get(ctx, conv.ID)
	if len(again.History) != 1 {
		t.Errorf("Expected 1 stored turn, got %d", len(again.History))
	}

	if err := store.Delete(ctx, conv.ID); err != nil {
		t.Fatalf("Expected delete, got %v", err)
	}
	if _, err := store.Get(ctx, conv.ID); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
	if err := store.Delete(ctx, conv.ID); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Hour)
	store.now = func() time.Time { return now }

	conv := &Conversation{ID: types.NewID()}
	store.Save(ctx, conv)

	now = now.Add(59 * time.Minute)
	if _, err := store.Get(ctx, conv.ID); err != nil {
		t.Errorf("Expected live session, got %v", err)
	}

	// Saving slides the expiry forward.
	store.Save(ctx, conv)
	now = now.Add(59 * time.Minute)
	if _, err := store.Get(ctx, conv.ID); err != nil {
		t.Errorf("Expected refreshed session, got %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, conv.ID); err != ErrSessionNotFound {
		t.Errorf("Expected expired session, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Expected expired session removed, got %d", store.Len())
	}
}

func TestMemoryStoreSweepsAbandonedSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Hour)
	store.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		store.Save(ctx, &Conversation{ID: types.NewID()})
	}
	if store.Len() != 3 {
		t.Fatalf("Expected 3 sessions, got %d", store.Len())
	}

	now = now.Add(2 * time.Hour)
	fresh := &Conversation{ID: types.NewID()}
	store.Save(ctx, fresh)
	if store.Len() != 1 {
		t.Errorf("Expected abandoned sessions swept, got %d", store.Len())
	}
	if _, err := store.Get(ctx, fresh.ID); err != nil {
		t.Errorf("Expected fresh session kept, got %v", err)
	}

	// Sessions expiring before the next sweep wait for it.
	store.Save(ctx, &Conversation{ID: types.NewID()})
	now = now.Add(30 * time.Minute)
	store.Save(ctx, &Conversation{ID: types.NewID()})
	if store.Len() != 3 {
		t.Errorf("Expected no sweep within the interval, got %d", store.Len())
	}
}

func TestRedisStoreKey(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()
	store := NewRedisStoreFromClient(client, time.Hour)

	id := types.NewDeterministicID("conversation", "abc")
	if got := store.key(id); got != "vitavoice:conversation:"+id.String() {
		t.Errorf("Expected prefixed key, got %q", got)
	}
}

func TestNewRedisStoreInvalidURL(t *testing.T) {
	if _, err := NewRedisStore(context.Background(), "not a url", time.Hour); err == nil {
		t.Error("Expected error for invalid URL")
	}
}
