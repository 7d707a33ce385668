package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is the in-process Store used by unit tests. Documents are held
// as flat bson maps so filter matching and $set merges behave like the Mongo
// implementation; insertion order is preserved.
type MemoryStore[T any] struct {
	mu   sync.RWMutex
	docs []bson.M
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{}
}

func (m *MemoryStore[T]) Insert(ctx context.Context, doc T) (primitive.ObjectID, error) {
	raw, err := toRaw(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := raw["_id"].(primitive.ObjectID)
	if !ok || id.IsZero() {
		id = primitive.NewObjectID()
		raw["_id"] = id
	}
	m.mu.Lock()
	m.docs = append(m.docs, raw)
	m.mu.Unlock()
	return id, nil
}

func (m *MemoryStore[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, raw := range m.docs {
		if raw["_id"] == id {
			return fromRaw[T](raw)
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore[T]) Find(ctx context.Context, filter bson.M) ([]*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*T{}
	for _, raw := range m.docs {
		if !matches(raw, filter) {
			continue
		}
		d, err := fromRaw[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *MemoryStore[T]) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, raw := range m.docs {
		if raw["_id"] != id {
			continue
		}
		for k, v := range fields {
			raw[k] = v
		}
		return 1, nil
	}
	return 0, nil
}

func (m *MemoryStore[T]) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, raw := range m.docs {
		if raw["_id"] == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// toRaw flattens a typed document into the map shape the collection stores.
func toRaw(doc interface{}) (bson.M, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	var raw bson.M
	if err := bson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return raw, nil
}

func fromRaw[T any](raw bson.M) (*T, error) {
	data, err := bson.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	var out T
	if err := bson.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}

func matches(raw bson.M, filter bson.M) bool {
	for k, want := range filter {
		got, ok := raw[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
