package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore implements Store over a single MongoDB collection.
type MongoStore[T any] struct {
	col *mongo.Collection
}

func NewMongoStore[T any](col *mongo.Collection) *MongoStore[T] {
	return &MongoStore[T]{col: col}
}

func (s *MongoStore[T]) Insert(ctx context.Context, doc T) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert: unexpected id type %T", res.InsertedID)
	}
	return id, nil
}

func (s *MongoStore[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var out T
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find one: %w", err)
	}
	return &out, nil
}

func (s *MongoStore[T]) Find(ctx context.Context, filter bson.M) ([]*T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)
	out := []*T{}
	for cur.Next(ctx) {
		var d T
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		out = append(out, &d)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return out, nil
}

func (s *MongoStore[T]) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, fmt.Errorf("update: %w", err)
	}
	return res.MatchedCount, nil
}

func (s *MongoStore[T]) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete: %w", err)
	}
	return res.DeletedCount, nil
}
