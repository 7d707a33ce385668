package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound reports a valid id with no matching document. It is a result,
// not a store failure.
var ErrNotFound = errors.New("document not found")

// Store is a generic document collection. Filters are flat field-equality
// maps; an empty filter matches the whole collection. Update applies $set
// merge semantics and, like Delete, reports matching zero documents through
// the returned count rather than an error.
type Store[T any] interface {
	Insert(ctx context.Context, doc T) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Find(ctx context.Context, filter bson.M) ([]*T, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}
