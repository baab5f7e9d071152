package flexibility

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type memStore struct {
	mu     sync.Mutex
	values map[string]float64
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]float64)}
}

func (m *memStore) Get(ctx context.Context, eventID, userID string) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[eventID+"/"+userID]
	return v, ok, nil
}

func (m *memStore) Set(ctx context.Context, eventID, userID string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[eventID+"/"+userID] = value
	return nil
}

func (m *memStore) SetIfAbsent(ctx context.Context, eventID, userID string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := eventID + "/" + userID
	if _, ok := m.values[key]; !ok {
		m.values[key] = value
	}
	return nil
}

func TestUpdateBounds(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	for _, bad := range []float64{-1, 50.1, 51, -0.01} {
		err := svc.Update(ctx, "ev1", "alice", bad)
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("value %v: expected ErrOutOfRange, got %v", bad, err)
		}
	}
	for _, ok := range []float64{0, 50, 5, 12.5} {
		if err := svc.Update(ctx, "ev1", "alice", ok); err != nil {
			t.Fatalf("value %v: unexpected error: %v", ok, err)
		}
	}
}

func TestGetDefault(t *testing.T) {
	svc := NewService(newMemStore())

	v, err := svc.Get(context.Background(), "ev1", "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != Default {
		t.Fatalf("expected default %v for unset flexibility, got %v", Default, v)
	}
}

func TestUpdateThenGet(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	if err := svc.Update(ctx, "ev1", "alice", 17.5); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	v, err := svc.Get(ctx, "ev1", "alice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if v != 17.5 {
		t.Fatalf("expected 17.5, got %v", v)
	}
}

func TestSeedDoesNotOverwrite(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	if err := svc.Update(ctx, "ev1", "alice", 30); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := svc.Seed(ctx, "ev1", "alice"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	v, err := svc.Get(ctx, "ev1", "alice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if v != 30 {
		t.Fatalf("seed must not overwrite an explicit value, got %v", v)
	}
}

func TestSeedSetsDefault(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	if err := svc.Seed(ctx, "ev1", "bob"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	v, ok, err := store.Get(ctx, "ev1", "bob")
	if err != nil || !ok {
		t.Fatalf("expected stored default, got ok=%v err=%v", ok, err)
	}
	if v != Default {
		t.Fatalf("expected default %v, got %v", Default, v)
	}
}
