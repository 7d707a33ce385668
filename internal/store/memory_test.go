package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodshare/foodshare/internal/models"
)

func TestMemoryStore_InsertAndFindByID(t *testing.T) {
	s := NewMemoryStore[models.Listing]()
	ctx := context.Background()

	id, err := s.Insert(ctx, models.Listing{DonorEmail: "d@x.com", Status: "available"})
	require.NoError(t, err)
	require.False(t, id.IsZero())

	got, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "d@x.com", got.DonorEmail)
	require.Equal(t, id, got.ID)

	_, err = s.FindByID(ctx, primitive.NewObjectID())
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_FindFilters(t *testing.T) {
	s := NewMemoryStore[models.Listing]()
	ctx := context.Background()

	_, err := s.Insert(ctx, models.Listing{DonorEmail: "a@x.com", Status: "available"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, models.Listing{DonorEmail: "b@x.com", Status: "picked"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, models.Listing{DonorEmail: "a@x.com", Status: "picked"})
	require.NoError(t, err)

	all, err := s.Find(ctx, bson.M{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// insertion order is preserved
	require.Equal(t, "a@x.com", all[0].DonorEmail)
	require.Equal(t, "b@x.com", all[1].DonorEmail)

	avail, err := s.Find(ctx, bson.M{"status": "available"})
	require.NoError(t, err)
	require.Len(t, avail, 1)

	byDonor, err := s.Find(ctx, bson.M{"donorEmail": "a@x.com"})
	require.NoError(t, err)
	require.Len(t, byDonor, 2)

	both, err := s.Find(ctx, bson.M{"donorEmail": "a@x.com", "status": "picked"})
	require.NoError(t, err)
	require.Len(t, both, 1)
}

func TestMemoryStore_UpdateMergesFields(t *testing.T) {
	s := NewMemoryStore[models.Listing]()
	ctx := context.Background()

	id, err := s.Insert(ctx, models.Listing{
		DonorEmail: "d@x.com",
		Status:     "available",
		Extra:      map[string]interface{}{"title": "Bread"},
	})
	require.NoError(t, err)

	n, err := s.Update(ctx, id, bson.M{"status": "picked"})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "picked", got.Status)
	// untouched fields survive the merge
	require.Equal(t, "d@x.com", got.DonorEmail)
	require.Equal(t, "Bread", got.Extra["title"])

	// zero-matched update is not an error
	n, err = s.Update(ctx, primitive.NewObjectID(), bson.M{"status": "gone"})
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore[models.Request]()
	ctx := context.Background()

	id, err := s.Insert(ctx, models.Request{UserEmail: "a@x.com"})
	require.NoError(t, err)

	n, err := s.Delete(ctx, id)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = s.Delete(ctx, id)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	_, err = s.FindByID(ctx, id)
	require.True(t, errors.Is(err, ErrNotFound))
}
